// Package locate finds the named element nearest a caret position by
// walking a syntax tree outward from the token under the caret.
//
// The walk is written against the Node and Snapshot interfaces so any
// analysis backend that can answer "what does this node declare" and "what
// does this node refer to" can drive it.
package locate

import "github.com/jward/qualname/internal/symbol"

// Node is one node of a snapshot's syntax tree.
type Node interface {
	// Parent returns the enclosing node, or nil at the root.
	Parent() Node
	// DeclaredSymbol returns the element this node declares, or nil.
	DeclaredSymbol() *symbol.Symbol
	// ReferencedSymbol resolves the element this node names.
	ReferencedSymbol() Resolution
}

// Resolution is the outcome of resolving a reference. Symbol is set when
// the reference binds to exactly one element; otherwise Candidates holds
// the elements it could bind to (overloads), possibly none.
type Resolution struct {
	Symbol     *symbol.Symbol
	Candidates []*symbol.Symbol
}

// Snapshot is an immutable semantic view of one source file.
type Snapshot interface {
	// TokenAt returns the token owning the character offset, or nil when
	// the offset is out of bounds or falls in whitespace or a comment.
	TokenAt(offset int) Node
}

// Locate returns the most specific element declared or referenced at
// offset, or nil when there is nothing to report.
func Locate(snap Snapshot, offset int) *symbol.Symbol {
	if snap == nil {
		return nil
	}
	tok := snap.TokenAt(offset)
	if tok == nil {
		return nil
	}

	parent := tok.Parent()
	for n := parent; n != nil; n = n.Parent() {
		if sym := n.DeclaredSymbol(); sym != nil {
			return sym
		}
		if sym := n.ReferencedSymbol().Symbol; sym != nil {
			return sym
		}
	}

	if parent == nil {
		return nil
	}
	// Nothing enclosing resolved. Settle for the first overload candidate
	// of the token's own reference rather than reporting nothing.
	res := parent.ReferencedSymbol()
	if res.Symbol != nil {
		return res.Symbol
	}
	if len(res.Candidates) > 0 {
		return res.Candidates[0]
	}
	return nil
}
