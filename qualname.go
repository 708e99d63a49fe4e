package qualname

import (
	"github.com/jward/qualname/internal/format"
	"github.com/jward/qualname/internal/locate"
	"github.com/jward/qualname/internal/symbol"
)

type (
	// Symbol is a resolved named element.
	Symbol = symbol.Symbol
	// Node is one node of a snapshot's syntax tree.
	Node = locate.Node
	// Snapshot is an immutable semantic view of one source file.
	Snapshot = locate.Snapshot
	// Resolution is the outcome of resolving a reference.
	Resolution = locate.Resolution
)

// NoSymbolMessage is reported when nothing named sits at the caret.
const NoSymbolMessage = "No symbol found at caret position"

// ResolveAt returns the most specific element declared or referenced at
// the character offset position, or nil.
func ResolveAt(snap Snapshot, position int) *Symbol {
	return locate.Locate(snap, position)
}

// FormatQualifiedName renders s's qualified name. With includeNamespace
// false, enclosing namespaces are dropped. A nil symbol renders as "".
func FormatQualifiedName(s *Symbol, includeNamespace bool) string {
	if s == nil {
		return ""
	}
	return format.Format(s, includeNamespace)
}
