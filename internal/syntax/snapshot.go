package syntax

import (
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/qualname/internal/locate"
	"github.com/jward/qualname/internal/symbol"
)

// Snapshot is a parsed and bound source file. It is read-only once Parse
// returns, but the underlying tree caches node wrappers, so a Snapshot must
// not be shared between goroutines.
type Snapshot struct {
	*binder
	tree *sitter.Tree
	root *sitter.Node

	// runeStarts[i] is the byte offset of character i; the final entry is
	// len(src).
	runeStarts []uint32
}

var _ locate.Snapshot = (*Snapshot)(nil)

func newSnapshot(lang *Language, tree *sitter.Tree, src []byte) *Snapshot {
	starts := make([]uint32, 0, len(src)+1)
	for i := 0; i < len(src); {
		starts = append(starts, uint32(i))
		_, size := utf8.DecodeRune(src[i:])
		i += size
	}
	starts = append(starts, uint32(len(src)))

	return &Snapshot{
		binder:     newBinder(lang, src),
		tree:       tree,
		root:       tree.RootNode(),
		runeStarts: starts,
	}
}

// Language returns the canonical name of the snapshot's language.
func (s *Snapshot) Language() string {
	return s.lang.Name
}

// Len returns the number of characters in the source. A nil snapshot is
// empty.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.runeStarts) - 1
}

// Close releases the tree-sitter tree.
func (s *Snapshot) Close() {
	if s == nil {
		return
	}
	s.tree.Close()
}

// Global returns the unnamed root namespace of this file's symbols.
func (s *Snapshot) Global() *symbol.Symbol {
	return s.global
}

func (s *Snapshot) bind() {
	s.walk(s.root, s.global, false)
	for _, fn := range s.deferred {
		fn()
	}
	s.deferred = nil
}

// OffsetAt converts a 0-based line and character column to a character
// offset. The column may point just past the last character of the line.
func (s *Snapshot) OffsetAt(line, col int) (int, bool) {
	if line < 0 || col < 0 {
		return 0, false
	}
	n := s.Len()
	offset := 0
	for cur := 0; cur < line; offset++ {
		if offset >= n {
			return 0, false
		}
		if s.src[s.runeStarts[offset]] == '\n' {
			cur++
		}
	}
	for i := 0; i < col; i++ {
		if offset >= n || s.src[s.runeStarts[offset]] == '\n' {
			return 0, false
		}
		offset++
	}
	return offset, true
}

// TokenAt returns the token owning the character offset. A token starting
// at offset wins; otherwise a token ending exactly at offset is used, so a
// caret just after a word still selects it. Whitespace and comments own no
// token.
func (s *Snapshot) TokenAt(offset int) locate.Node {
	if s == nil || offset < 0 || offset > s.Len() {
		return nil
	}
	at := s.runeStarts[offset]
	if leaf := s.leafAt(at); leaf != nil {
		return s.token(leaf)
	}
	if offset == 0 {
		return nil
	}
	if leaf := s.leafAt(s.runeStarts[offset-1]); leaf != nil && leaf.EndByte() == at {
		return s.token(leaf)
	}
	return nil
}

// leafAt descends to the leaf covering the byte offset. It returns nil
// when the offset sits between tokens or inside trivia.
func (s *Snapshot) leafAt(off uint32) *sitter.Node {
	n := s.root
	if n == nil || off < n.StartByte() || off >= n.EndByte() {
		return nil
	}
	for {
		var next *sitter.Node
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c != nil && c.StartByte() <= off && off < c.EndByte() {
				next = c
				break
			}
		}
		if next == nil {
			break
		}
		if s.lang.trivia[next.Type()] {
			return nil
		}
		n = next
	}
	if n.ChildCount() > 0 {
		return nil
	}
	return n
}

func (s *Snapshot) token(leaf *sitter.Node) locate.Node {
	// Named leaves (identifiers, keywords like predefined types) are syntax
	// nodes in their own right; anonymous leaves belong to their parent.
	if leaf.IsNamed() {
		return token{parent: s.node(leaf)}
	}
	if p := leaf.Parent(); p != nil {
		return token{parent: s.node(p)}
	}
	return token{}
}

func (s *Snapshot) node(n *sitter.Node) locate.Node {
	return node{snap: s, n: n}
}

// token is the leaf under the caret. It declares and references nothing;
// the walk starts at its parent.
type token struct {
	parent locate.Node
}

func (t token) Parent() locate.Node                 { return t.parent }
func (t token) DeclaredSymbol() *symbol.Symbol      { return nil }
func (t token) ReferencedSymbol() locate.Resolution { return locate.Resolution{} }

// node adapts a tree-sitter node to locate.Node.
type node struct {
	snap *Snapshot
	n    *sitter.Node
}

func (x node) Parent() locate.Node {
	p := x.n.Parent()
	if p == nil {
		return nil
	}
	return x.snap.node(p)
}

func (x node) DeclaredSymbol() *symbol.Symbol {
	return x.snap.decls[keyOf(x.n)]
}

func (x node) ReferencedSymbol() locate.Resolution {
	return x.snap.resolve(x.n)
}
