// Package qualname resolves the named program element at an editor caret
// and renders its qualified name for the clipboard. It is built on
// tree-sitter and binds C#, Java and Go source files.
//
// # Pipeline
//
// Every invocation runs three steps over one file:
//
//  1. Snapshot: a [Provider] parses the file and binds each declaration to
//     a [Symbol], producing a read-only [Snapshot] and a caret position.
//
//  2. Resolve: [ResolveAt] walks outward from the token under the caret and
//     returns the innermost element that is declared or referenced there.
//
//  3. Format: [FormatQualifiedName] renders the element's containment chain,
//     with or without enclosing namespaces, and a [Sink] receives it.
//
// # Usage
//
//	svc := &qualname.Service{
//		Provider: &qualname.FileProvider{Fs: afero.NewOsFs(), Path: "Program.cs", Position: qualname.AtLine(10, 4)},
//		Sink:     qualname.ClipboardSink{},
//	}
//	name, err := svc.Copy(ctx, true)
//
// # Languages
//
// C# namespaces (block and file-scoped), Java packages and Go packages all
// act as namespaces. Go methods are qualified by their receiver type.
// Built-in types print by keyword (int, string). Overloaded calls are
// narrowed by argument count; when that is not enough the first candidate
// is reported.
package qualname
