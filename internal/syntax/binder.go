package syntax

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/qualname/internal/locate"
	"github.com/jward/qualname/internal/symbol"
)

// nodeKey identifies a node independently of the wrapper pointer the
// tree hands out.
type nodeKey struct {
	start, end uint32
	typ        string
}

func keyOf(n *sitter.Node) nodeKey {
	return nodeKey{start: n.StartByte(), end: n.EndByte(), typ: n.Type()}
}

func sameNode(a, b *sitter.Node) bool {
	return a != nil && b != nil && keyOf(a) == keyOf(b)
}

// binder is the semantic index of one file: which node declares which
// symbol, the scope each node sits in, and the members of every symbol.
type binder struct {
	lang   *Language
	src    []byte
	global *symbol.Symbol

	decls   map[nodeKey]*symbol.Symbol
	names   map[nodeKey]bool
	scopes  map[nodeKey]*symbol.Symbol
	members map[*symbol.Symbol][]*symbol.Symbol
	arity   map[*symbol.Symbol]int
	// shadows holds parameter and local names per member; a lookup that
	// meets one stops without a result.
	shadows map[*symbol.Symbol]map[string]bool
	// bases holds the first base type node of a type, resolved on demand.
	bases map[*symbol.Symbol]*sitter.Node

	deferred []func()
}

func newBinder(lang *Language, src []byte) *binder {
	return &binder{
		lang:    lang,
		src:     src,
		global:  symbol.NewGlobal(),
		decls:   make(map[nodeKey]*symbol.Symbol),
		names:   make(map[nodeKey]bool),
		scopes:  make(map[nodeKey]*symbol.Symbol),
		members: make(map[*symbol.Symbol][]*symbol.Symbol),
		arity:   make(map[*symbol.Symbol]int),
		shadows: make(map[*symbol.Symbol]map[string]bool),
		bases:   make(map[*symbol.Symbol]*sitter.Node),
	}
}

// walk records the scope of n, binds any declaration it makes and
// descends. It returns a scope that following siblings must adopt
// (file-scoped namespaces, package clauses), or nil.
func (b *binder) walk(n *sitter.Node, scope *symbol.Symbol, inBody bool) *symbol.Symbol {
	b.scopes[keyOf(n)] = scope

	inner := scope
	var carried *symbol.Symbol
	if !inBody {
		if sym, carry := b.lang.declare(b, n, scope); sym != nil {
			inner = sym
			if carry {
				carried = sym
			}
		}
	}
	b.lang.locals(b, n, inner, inBody)

	childBody := inBody || b.lang.bodies[n.Type()]
	cur := inner
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if next := b.walk(c, cur, childBody); next != nil {
			cur = next
		}
	}
	return carried
}

func (b *binder) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(b.src)
}

// compactText returns the node text with whitespace removed, for dotted
// names that may span lines.
func (b *binder) compactText(n *sitter.Node) string {
	return strings.Join(strings.Fields(b.text(n)), "")
}

// markName records n as the name of a declaration so it is never
// resolved as a reference.
func (b *binder) markName(n *sitter.Node) {
	if n != nil {
		b.names[keyOf(n)] = true
	}
}

// shadow marks name as a parameter or local of scope and marks its node.
func (b *binder) shadow(scope *symbol.Symbol, n *sitter.Node) {
	if n == nil {
		return
	}
	b.markName(n)
	name := b.text(n)
	if name == "" {
		return
	}
	if b.shadows[scope] == nil {
		b.shadows[scope] = make(map[string]bool)
	}
	b.shadows[scope][name] = true
}

// nameNode returns n's "name" field, falling back to its first named
// child of one of the given types.
func (b *binder) nameNode(n *sitter.Node, types ...string) *sitter.Node {
	if name := n.ChildByFieldName("name"); name != nil {
		return name
	}
	return firstChildOfType(n, types...)
}

func firstChildOfType(n *sitter.Node, types ...string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// firstNamed returns the first named child of n that is not trivia.
func firstNamed(n *sitter.Node, trivia map[string]bool) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && !trivia[c.Type()] {
			return c
		}
	}
	return nil
}

func childrenOfType(n *sitter.Node, types ...string) []*sitter.Node {
	if n == nil {
		return nil
	}
	var out []*sitter.Node
	for i := 0; i < int(n.NamedChildCount()); i++ {
		c := n.NamedChild(i)
		if c == nil {
			continue
		}
		for _, t := range types {
			if c.Type() == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// countNamed counts named children of n that are not trivia, or returns
// -1 when n is nil.
func (b *binder) countNamed(n *sitter.Node) int {
	if n == nil {
		return -1
	}
	count := 0
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && !b.lang.trivia[c.Type()] {
			count++
		}
	}
	return count
}

// typeParams returns the type parameter names declared by list, marking
// each name node.
func (b *binder) typeParams(list *sitter.Node) []string {
	if list == nil {
		return nil
	}
	var params []string
	for i := 0; i < int(list.NamedChildCount()); i++ {
		p := list.NamedChild(i)
		if p == nil || b.lang.trivia[p.Type()] {
			continue
		}
		if b.lang.paramNames[p.Type()] {
			b.markName(p)
			params = append(params, b.text(p))
			continue
		}
		for j := 0; j < int(p.NamedChildCount()); j++ {
			c := p.NamedChild(j)
			if c != nil && b.lang.paramNames[c.Type()] {
				b.markName(c)
				params = append(params, b.text(c))
			}
		}
	}
	return params
}

// declare binds n as the declaration of name inside scope. Types merge
// with an earlier declaration of the same kind, name and arity (partial
// types).
func (b *binder) declare(n, nameNode *sitter.Node, name string, kind symbol.Kind, scope *symbol.Symbol, params []string) *symbol.Symbol {
	if name == "" {
		return nil
	}
	var sym *symbol.Symbol
	if kind.IsType() {
		for _, m := range b.members[scope] {
			if m.Kind == kind && m.Name == name && len(m.TypeParams) == len(params) {
				sym = m
				break
			}
		}
	}
	if sym == nil {
		sym = &symbol.Symbol{Name: name, Kind: kind, TypeParams: params, Container: scope}
		b.members[scope] = append(b.members[scope], sym)
	}
	b.decls[keyOf(n)] = sym
	b.markName(nameNode)
	return sym
}

// declareNamed binds n using its name field (or first child of one of
// the given types) as the name.
func (b *binder) declareNamed(n *sitter.Node, kind symbol.Kind, scope *symbol.Symbol, params *sitter.Node, nameTypes ...string) *symbol.Symbol {
	name := b.nameNode(n, nameTypes...)
	return b.declare(n, name, b.text(name), kind, scope, b.typeParams(params))
}

// namespace binds n as the declaration of a dotted namespace path,
// creating or reusing one namespace symbol per segment.
func (b *binder) namespace(n *sitter.Node, path string, scope *symbol.Symbol) *symbol.Symbol {
	path = strings.TrimPrefix(path, "global::")
	if path == "" {
		return nil
	}
	cur := scope
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		var next *symbol.Symbol
		for _, m := range b.members[cur] {
			if m.Kind.IsNamespace() && m.Name == part {
				next = m
				break
			}
		}
		if next == nil {
			next = &symbol.Symbol{Name: part, Kind: symbol.KindNamespace, Container: cur}
			b.members[cur] = append(b.members[cur], next)
		}
		cur = next
	}
	b.decls[keyOf(n)] = cur
	return cur
}

// rehome moves sym from its current container to container.
func (b *binder) rehome(sym, container *symbol.Symbol) {
	old := b.members[sym.Container]
	for i, m := range old {
		if m == sym {
			b.members[sym.Container] = append(old[:i:i], old[i+1:]...)
			break
		}
	}
	sym.Container = container
	b.members[container] = append(b.members[container], sym)
}

func (b *binder) later(fn func()) {
	b.deferred = append(b.deferred, fn)
}

func (b *binder) membersNamed(s *symbol.Symbol, name string) []*symbol.Symbol {
	var out []*symbol.Symbol
	for _, m := range b.members[s] {
		if m.Name == name {
			out = append(out, m)
		}
	}
	return out
}

func (b *binder) scopeOf(n *sitter.Node) *symbol.Symbol {
	if s, ok := b.scopes[keyOf(n)]; ok {
		return s
	}
	return b.global
}

type refKind int

const (
	refName    refKind = iota // simple name, looked up lexically
	refMember                 // qualifier.name
	refCall                   // invocation, filtered by argument count
	refNew                    // object creation, resolves to a constructor
	refInner                  // same symbol as callee (generic wrappers)
	refBuiltin                // keyword type
	refSelf                   // this
	refBase                   // base: the first base type, else the enclosing type
)

// reference describes how a node names a symbol.
type reference struct {
	kind      refKind
	name      string
	qualifier *sitter.Node
	callee    *sitter.Node
	// target is the child whose resolution defers to this node: the name
	// in a member access, the function in a call.
	target *sitter.Node
	// args is the argument count of a call, or -1 when unknown.
	args int
}

// resolve resolves n as a reference. A node that is the name part of an
// enclosing member access or call resolves through that parent, so the
// qualifier and argument count take part.
func (b *binder) resolve(n *sitter.Node) locate.Resolution {
	if b.names[keyOf(n)] {
		return locate.Resolution{}
	}
	if p := n.Parent(); p != nil {
		if pr, ok := b.lang.reference(b, p); ok && sameNode(pr.target, n) {
			return b.resolve(p)
		}
	}
	return b.resolveSelf(n)
}

func (b *binder) resolveSelf(n *sitter.Node) locate.Resolution {
	if n == nil || b.names[keyOf(n)] {
		return locate.Resolution{}
	}
	r, ok := b.lang.reference(b, n)
	if !ok {
		return locate.Resolution{}
	}

	switch r.kind {
	case refName:
		return b.lookup(b.scopeOf(n), r.name)
	case refMember:
		return b.memberOf(r.qualifier, r.name)
	case refInner:
		return b.resolveSelf(r.callee)
	case refBuiltin:
		if sym := b.lang.builtin(r.name); sym != nil {
			return locate.Resolution{Symbol: sym}
		}
	case refSelf:
		if t := b.scopeOf(n).EnclosingType(); t != nil {
			return locate.Resolution{Symbol: t}
		}
	case refBase:
		t := b.scopeOf(n).EnclosingType()
		if t == nil {
			return locate.Resolution{}
		}
		if base := b.bases[t]; base != nil {
			if res := b.resolveSelf(base); res.Symbol != nil && res.Symbol.Kind.IsType() && res.Symbol != t {
				return res
			}
		}
		return locate.Resolution{Symbol: t}
	case refCall:
		var res locate.Resolution
		switch {
		case r.callee != nil:
			res = b.resolveSelf(r.callee)
		case r.qualifier != nil:
			res = b.memberOf(r.qualifier, r.name)
		default:
			res = b.lookup(b.scopeOf(n), r.name)
		}
		return b.byArity(res, r.args)
	case refNew:
		res := b.resolveSelf(r.callee)
		if res.Symbol == nil || !res.Symbol.Kind.IsType() {
			return res
		}
		var ctors []*symbol.Symbol
		for _, m := range b.members[res.Symbol] {
			if m.Kind == symbol.KindConstructor {
				ctors = append(ctors, m)
			}
		}
		if len(ctors) == 0 {
			return res
		}
		return b.byArity(resolution(ctors), r.args)
	}
	return locate.Resolution{}
}

// lookup searches scope and its containers for name. Members of types are
// skipped for languages without implicit receivers. A parameter or local
// of the same name hides everything outside it.
func (b *binder) lookup(scope *symbol.Symbol, name string) locate.Resolution {
	if name == "" {
		return locate.Resolution{}
	}
	for s := scope; s != nil; s = s.Container {
		if b.shadows[s][name] {
			return locate.Resolution{}
		}
		if s.Kind.IsType() && !b.lang.implicitMembers {
			continue
		}
		if found := b.membersNamed(s, name); len(found) > 0 {
			return resolution(found)
		}
	}
	if sym := b.lang.builtin(name); sym != nil {
		return locate.Resolution{Symbol: sym}
	}
	return locate.Resolution{}
}

// memberOf resolves qualifier and looks name up among its members.
func (b *binder) memberOf(qualifier *sitter.Node, name string) locate.Resolution {
	q := b.resolveSelf(qualifier).Symbol
	if q == nil {
		return locate.Resolution{}
	}
	return resolution(b.membersNamed(q, name))
}

// byArity narrows overload candidates to those taking args arguments.
func (b *binder) byArity(res locate.Resolution, args int) locate.Resolution {
	if res.Symbol != nil || args < 0 || len(res.Candidates) == 0 {
		return res
	}
	var matched []*symbol.Symbol
	for _, c := range res.Candidates {
		if n, ok := b.arity[c]; ok && n == args {
			matched = append(matched, c)
		}
	}
	if len(matched) == 1 {
		return locate.Resolution{Symbol: matched[0]}
	}
	return res
}

func resolution(found []*symbol.Symbol) locate.Resolution {
	switch len(found) {
	case 0:
		return locate.Resolution{}
	case 1:
		return locate.Resolution{Symbol: found[0]}
	}
	return locate.Resolution{Candidates: found}
}
