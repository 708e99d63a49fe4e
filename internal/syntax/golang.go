package syntax

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/jward/qualname/internal/symbol"
)

func goLanguage() *Language {
	return &Language{
		Name:       "go",
		Extensions: []string{".go"},
		grammar:    golang.GetLanguage(),
		trivia:     set("comment"),
		bodies:     set("block", "func_literal"),
		paramNames: set("identifier"),
		// Go has no implicit receiver: a bare name never means a field or
		// method.
		implicitMembers: false,
		declare:         declareGo,
		locals:          localsGo,
		reference:       referenceGo,
		builtin:         builtinGo,
	}
}

func declareGo(b *binder, n *sitter.Node, scope *symbol.Symbol) (*symbol.Symbol, bool) {
	switch n.Type() {
	case "package_clause":
		name := firstChildOfType(n, "package_identifier", "identifier")
		if name == nil {
			return nil, false
		}
		b.markName(name)
		return b.namespace(n, b.text(name), scope), true

	case "type_spec", "type_alias":
		kind := symbol.KindType
		switch t := n.ChildByFieldName("type"); {
		case t == nil:
		case t.Type() == "struct_type":
			kind = symbol.KindStruct
		case t.Type() == "interface_type":
			kind = symbol.KindInterface
		}
		return b.declareNamed(n, kind, scope, n.ChildByFieldName("type_parameters"), "type_identifier"), false

	case "function_declaration":
		sym := b.declareNamed(n, symbol.KindFunction, scope, n.ChildByFieldName("type_parameters"), "identifier")
		b.setGoArity(sym, n.ChildByFieldName("parameters"))
		return sym, false

	case "method_declaration":
		sym := b.declareNamed(n, symbol.KindMethod, scope, nil, "field_identifier")
		if sym == nil {
			return nil, false
		}
		b.setGoArity(sym, n.ChildByFieldName("parameters"))
		if recv := receiverTypeName(b, n.ChildByFieldName("receiver")); recv != "" {
			pkg := scope
			b.later(func() {
				for _, t := range b.membersNamed(pkg, recv) {
					if t.Kind.IsType() {
						b.rehome(sym, t)
						return
					}
				}
			})
		}
		return sym, false

	case "method_elem", "method_spec":
		sym := b.declareNamed(n, symbol.KindMethod, scope, nil, "field_identifier")
		b.setGoArity(sym, n.ChildByFieldName("parameters"))
		return sym, false

	case "field_declaration":
		if !scope.Kind.IsType() {
			return nil, false
		}
		names := childrenOfType(n, "field_identifier")
		var last *symbol.Symbol
		for _, name := range names {
			last = b.declare(name, name, b.text(name), symbol.KindField, scope, nil)
		}
		if len(names) == 1 && last != nil {
			b.decls[keyOf(n)] = last
		}
		return nil, false

	case "var_spec", "const_spec":
		if !scope.Kind.IsNamespace() {
			return nil, false
		}
		kind := symbol.KindVariable
		if n.Type() == "const_spec" {
			kind = symbol.KindConstant
		}
		names := childrenOfType(n, "identifier")
		var last *symbol.Symbol
		for _, name := range names {
			last = b.declare(name, name, b.text(name), kind, scope, nil)
		}
		if len(names) == 1 && last != nil {
			b.decls[keyOf(n)] = last
		}
		return nil, false
	}
	return nil, false
}

// receiverTypeName returns the base type name of a method receiver list,
// unwrapping pointers and type arguments.
func receiverTypeName(b *binder, recv *sitter.Node) string {
	if recv == nil {
		return ""
	}
	var find func(n *sitter.Node) *sitter.Node
	find = func(n *sitter.Node) *sitter.Node {
		if n.Type() == "type_identifier" {
			return n
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if c := n.NamedChild(i); c != nil {
				if found := find(c); found != nil {
					return found
				}
			}
		}
		return nil
	}
	return b.text(find(recv))
}

// setGoArity counts parameters, where "a, b int" declares two.
func (b *binder) setGoArity(sym *symbol.Symbol, params *sitter.Node) {
	if sym == nil || params == nil {
		return
	}
	count := 0
	for _, p := range childrenOfType(params, "parameter_declaration", "variadic_parameter_declaration") {
		if names := childrenOfType(p, "identifier"); len(names) > 1 {
			count += len(names)
		} else {
			count++
		}
	}
	b.arity[sym] = count
}

func localsGo(b *binder, n *sitter.Node, scope *symbol.Symbol, inBody bool) {
	switch n.Type() {
	case "parameter_declaration", "variadic_parameter_declaration":
		for _, name := range childrenOfType(n, "identifier") {
			b.shadow(scope, name)
		}
	case "short_var_declaration", "range_clause":
		if left := n.ChildByFieldName("left"); left != nil {
			for _, name := range childrenOfType(left, "identifier") {
				b.shadow(scope, name)
			}
		}
	case "var_spec", "const_spec":
		if inBody {
			for _, name := range childrenOfType(n, "identifier") {
				b.shadow(scope, name)
			}
		}
	}
}

func referenceGo(b *binder, n *sitter.Node) (reference, bool) {
	if !n.IsNamed() {
		return reference{}, false
	}
	switch n.Type() {
	case "identifier", "type_identifier", "field_identifier", "package_identifier":
		return reference{kind: refName, name: b.text(n), args: -1}, true
	case "generic_type":
		inner := n.ChildByFieldName("type")
		return reference{kind: refInner, callee: inner, target: inner, args: -1}, true
	case "selector_expression":
		name := n.ChildByFieldName("field")
		return reference{kind: refMember, qualifier: n.ChildByFieldName("operand"), name: b.text(name), target: name, args: -1}, true
	case "qualified_type":
		name := n.ChildByFieldName("name")
		return reference{kind: refMember, qualifier: n.ChildByFieldName("package"), name: b.text(name), target: name, args: -1}, true
	case "call_expression":
		fn := n.ChildByFieldName("function")
		return reference{kind: refCall, callee: fn, target: fn, args: b.countNamed(n.ChildByFieldName("arguments"))}, true
	}
	return reference{}, false
}

var (
	goBuiltins     map[string]*symbol.Symbol
	goBuiltinsOnce sync.Once
)

// builtinGo returns the predeclared type spelled name.
func builtinGo(name string) *symbol.Symbol {
	goBuiltinsOnce.Do(func() {
		universe := symbol.NewGlobal()
		goBuiltins = make(map[string]*symbol.Symbol)
		for _, t := range []string{
			"any", "bool", "byte", "comparable", "complex64", "complex128", "error",
			"float32", "float64", "int", "int8", "int16", "int32", "int64", "rune",
			"string", "uint", "uint8", "uint16", "uint32", "uint64", "uintptr",
		} {
			kind := symbol.KindType
			if t == "any" || t == "comparable" || t == "error" {
				kind = symbol.KindInterface
			}
			goBuiltins[t] = &symbol.Symbol{Name: t, Kind: kind, Alias: t, Container: universe}
		}
	})
	return goBuiltins[name]
}
