package syntax

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/csharp"

	"github.com/jward/qualname/internal/symbol"
)

func csharpLanguage() *Language {
	return &Language{
		Name:       "csharp",
		Extensions: []string{".cs", ".csx"},
		grammar:    csharp.GetLanguage(),
		trivia:     set("comment"),
		bodies: set(
			"block",
			"arrow_expression_clause",
			"lambda_expression",
			"anonymous_method_expression",
			"anonymous_object_creation_expression",
		),
		paramNames:      set("identifier"),
		implicitMembers: true,
		declare:         declareCSharp,
		locals:          localsCSharp,
		reference:       referenceCSharp,
		builtin:         builtinCSharp,
	}
}

var csharpTypeKinds = map[string]symbol.Kind{
	"class_declaration":         symbol.KindClass,
	"struct_declaration":        symbol.KindStruct,
	"interface_declaration":     symbol.KindInterface,
	"enum_declaration":          symbol.KindEnum,
	"record_declaration":        symbol.KindRecord,
	"record_struct_declaration": symbol.KindRecord,
	"delegate_declaration":      symbol.KindDelegate,
}

func declareCSharp(b *binder, n *sitter.Node, scope *symbol.Symbol) (*symbol.Symbol, bool) {
	switch n.Type() {
	case "namespace_declaration", "file_scoped_namespace_declaration":
		name := b.nameNode(n, "qualified_name", "identifier")
		if name == nil {
			return nil, false
		}
		b.markName(name)
		b.markName(lastSimpleName(name))
		return b.namespace(n, b.compactText(name), scope), n.Type() == "file_scoped_namespace_declaration"

	case "method_declaration":
		sym := b.declareNamed(n, symbol.KindMethod, scope, csharpTypeParams(n), "identifier")
		b.setArity(sym, csharpParams(n), "parameter", "parameter_array")
		return sym, false

	case "constructor_declaration":
		sym := b.declareNamed(n, symbol.KindConstructor, scope, nil, "identifier")
		b.setArity(sym, csharpParams(n), "parameter", "parameter_array")
		return sym, false

	case "destructor_declaration":
		name := b.nameNode(n, "identifier")
		if name == nil {
			return nil, false
		}
		return b.declare(n, name, "~"+b.text(name), symbol.KindDestructor, scope, nil), false

	case "property_declaration":
		return b.declareNamed(n, symbol.KindProperty, scope, nil, "identifier"), false

	case "indexer_declaration":
		return b.declare(n, nil, "this[]", symbol.KindIndexer, scope, nil), false

	case "event_declaration":
		return b.declareNamed(n, symbol.KindEvent, scope, nil, "identifier"), false

	case "enum_member_declaration":
		return b.declareNamed(n, symbol.KindEnumMember, scope, nil, "identifier"), false

	case "field_declaration", "event_field_declaration":
		kind := symbol.KindField
		if n.Type() == "event_field_declaration" {
			kind = symbol.KindEvent
		}
		declarators := childrenOfType(firstChildOfType(n, "variable_declaration"), "variable_declarator")
		var last *symbol.Symbol
		for _, d := range declarators {
			name := b.nameNode(d, "identifier")
			last = b.declare(d, name, b.text(name), kind, scope, nil)
		}
		// A single-variable declaration stands for its variable.
		if len(declarators) == 1 && last != nil {
			b.decls[keyOf(n)] = last
		}
		return nil, false
	}

	if kind, ok := csharpTypeKinds[n.Type()]; ok {
		sym := b.declareNamed(n, kind, scope, csharpTypeParams(n), "identifier")
		if sym == nil {
			return nil, false
		}
		if kind == symbol.KindDelegate {
			b.setArity(sym, csharpParams(n), "parameter", "parameter_array")
		}
		if _, seen := b.bases[sym]; !seen {
			if list := firstChildOfType(n, "base_list"); list != nil {
				if base := firstNamed(list, b.lang.trivia); base != nil {
					b.bases[sym] = base
				}
			}
		}
		return sym, false
	}
	return nil, false
}

// csharpTypeParams returns the type parameter list of a declaration. Type
// declarations carry it as an unnamed child, methods as a field.
func csharpTypeParams(n *sitter.Node) *sitter.Node {
	if list := n.ChildByFieldName("type_parameters"); list != nil {
		return list
	}
	return firstChildOfType(n, "type_parameter_list")
}

func csharpParams(n *sitter.Node) *sitter.Node {
	if list := n.ChildByFieldName("parameters"); list != nil {
		return list
	}
	return firstChildOfType(n, "parameter_list")
}

// lastSimpleName returns the rightmost identifier of a dotted name.
func lastSimpleName(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() != "identifier" {
		next := n.ChildByFieldName("name")
		if next == nil {
			return nil
		}
		n = next
	}
	return n
}

func localsCSharp(b *binder, n *sitter.Node, scope *symbol.Symbol, inBody bool) {
	switch n.Type() {
	case "parameter":
		b.shadow(scope, b.nameNode(n, "identifier"))
	case "variable_declarator", "catch_declaration", "local_function_statement":
		if inBody {
			b.shadow(scope, b.nameNode(n, "identifier"))
		}
	case "foreach_statement":
		if left := n.ChildByFieldName("left"); left != nil && left.Type() == "identifier" {
			b.shadow(scope, left)
		}
	}
}

func referenceCSharp(b *binder, n *sitter.Node) (reference, bool) {
	// this and base may be bare keyword tokens.
	switch n.Type() {
	case "this_expression", "this":
		return reference{kind: refSelf, args: -1}, true
	case "base_expression", "base":
		return reference{kind: refBase, args: -1}, true
	}
	if !n.IsNamed() {
		return reference{}, false
	}
	switch n.Type() {
	case "identifier":
		return reference{kind: refName, name: b.text(n), args: -1}, true
	case "generic_name":
		id := b.nameNode(n, "identifier")
		return reference{kind: refInner, callee: id, target: id, args: -1}, true
	case "predefined_type":
		return reference{kind: refBuiltin, name: b.text(n), args: -1}, true
	case "qualified_name":
		name := n.ChildByFieldName("name")
		return reference{kind: refMember, qualifier: n.ChildByFieldName("qualifier"), name: b.simpleName(name), target: name, args: -1}, true
	case "member_access_expression":
		name := n.ChildByFieldName("name")
		if name == nil && n.NamedChildCount() > 0 {
			name = n.NamedChild(int(n.NamedChildCount()) - 1)
		}
		qualifier := n.ChildByFieldName("expression")
		if qualifier == nil && n.ChildCount() > 0 {
			qualifier = n.Child(0)
		}
		return reference{kind: refMember, qualifier: qualifier, name: b.simpleName(name), target: name, args: -1}, true
	case "invocation_expression":
		fn := n.ChildByFieldName("function")
		return reference{kind: refCall, callee: fn, target: fn, args: csharpArguments(n.ChildByFieldName("arguments"))}, true
	case "object_creation_expression":
		args := 0
		if list := n.ChildByFieldName("arguments"); list != nil {
			args = csharpArguments(list)
		}
		return reference{kind: refNew, callee: n.ChildByFieldName("type"), args: args}, true
	}
	return reference{}, false
}

// simpleName returns the identifier text of a simple or generic name.
func (b *binder) simpleName(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Type() == "generic_name" {
		return b.text(b.nameNode(n, "identifier"))
	}
	return b.text(n)
}

// csharpArguments counts the arguments of an argument list, or -1 when
// there is none.
func csharpArguments(list *sitter.Node) int {
	if list == nil {
		return -1
	}
	return len(childrenOfType(list, "argument"))
}

// setArity records the parameter count of a callable symbol.
func (b *binder) setArity(sym *symbol.Symbol, params *sitter.Node, types ...string) {
	if sym == nil || params == nil {
		return
	}
	b.arity[sym] = len(childrenOfType(params, types...))
}

var (
	csharpBuiltins     map[string]*symbol.Symbol
	csharpBuiltinsOnce sync.Once
)

// builtinCSharp maps keyword types to their System types, displayed by
// keyword.
func builtinCSharp(name string) *symbol.Symbol {
	csharpBuiltinsOnce.Do(func() {
		system := &symbol.Symbol{Name: "System", Kind: symbol.KindNamespace, Container: symbol.NewGlobal()}
		types := []struct {
			alias, name string
			kind        symbol.Kind
		}{
			{"bool", "Boolean", symbol.KindStruct},
			{"byte", "Byte", symbol.KindStruct},
			{"sbyte", "SByte", symbol.KindStruct},
			{"char", "Char", symbol.KindStruct},
			{"decimal", "Decimal", symbol.KindStruct},
			{"double", "Double", symbol.KindStruct},
			{"float", "Single", symbol.KindStruct},
			{"int", "Int32", symbol.KindStruct},
			{"uint", "UInt32", symbol.KindStruct},
			{"nint", "IntPtr", symbol.KindStruct},
			{"nuint", "UIntPtr", symbol.KindStruct},
			{"long", "Int64", symbol.KindStruct},
			{"ulong", "UInt64", symbol.KindStruct},
			{"short", "Int16", symbol.KindStruct},
			{"ushort", "UInt16", symbol.KindStruct},
			{"object", "Object", symbol.KindClass},
			{"string", "String", symbol.KindClass},
			{"void", "Void", symbol.KindStruct},
		}
		csharpBuiltins = make(map[string]*symbol.Symbol, len(types))
		for _, t := range types {
			csharpBuiltins[t.alias] = &symbol.Symbol{Name: t.name, Kind: t.kind, Alias: t.alias, Container: system}
		}
	})
	return csharpBuiltins[name]
}
