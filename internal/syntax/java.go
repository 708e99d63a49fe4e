package syntax

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/jward/qualname/internal/symbol"
)

func javaLanguage() *Language {
	return &Language{
		Name:       "java",
		Extensions: []string{".java"},
		grammar:    java.GetLanguage(),
		trivia:     set("line_comment", "block_comment", "comment"),
		bodies: set(
			"block",
			"constructor_body",
			"lambda_expression",
			"object_creation_expression",
		),
		paramNames:      set("type_identifier", "identifier"),
		implicitMembers: true,
		declare:         declareJava,
		locals:          localsJava,
		reference:       referenceJava,
		builtin:         builtinJava,
	}
}

var javaTypeKinds = map[string]symbol.Kind{
	"class_declaration":           symbol.KindClass,
	"interface_declaration":       symbol.KindInterface,
	"annotation_type_declaration": symbol.KindInterface,
	"enum_declaration":            symbol.KindEnum,
	"record_declaration":          symbol.KindRecord,
}

var javaParamTypes = []string{"formal_parameter", "spread_parameter"}

func declareJava(b *binder, n *sitter.Node, scope *symbol.Symbol) (*symbol.Symbol, bool) {
	switch n.Type() {
	case "package_declaration":
		name := firstChildOfType(n, "scoped_identifier", "identifier")
		if name == nil {
			return nil, false
		}
		b.markName(name)
		b.markName(name.ChildByFieldName("name"))
		return b.namespace(n, b.compactText(name), scope), true

	case "method_declaration", "annotation_type_element_declaration":
		sym := b.declareNamed(n, symbol.KindMethod, scope, n.ChildByFieldName("type_parameters"), "identifier")
		b.setArity(sym, n.ChildByFieldName("parameters"), javaParamTypes...)
		return sym, false

	case "constructor_declaration", "compact_constructor_declaration":
		sym := b.declareNamed(n, symbol.KindConstructor, scope, n.ChildByFieldName("type_parameters"), "identifier")
		b.setArity(sym, n.ChildByFieldName("parameters"), javaParamTypes...)
		return sym, false

	case "field_declaration", "constant_declaration":
		declarators := childrenOfType(n, "variable_declarator")
		var last *symbol.Symbol
		for _, d := range declarators {
			name := b.nameNode(d, "identifier")
			last = b.declare(d, name, b.text(name), symbol.KindField, scope, nil)
		}
		if len(declarators) == 1 && last != nil {
			b.decls[keyOf(n)] = last
		}
		return nil, false

	case "enum_constant":
		return b.declareNamed(n, symbol.KindEnumMember, scope, nil, "identifier"), false
	}

	if kind, ok := javaTypeKinds[n.Type()]; ok {
		return b.declareNamed(n, kind, scope, n.ChildByFieldName("type_parameters"), "identifier"), false
	}
	return nil, false
}

func localsJava(b *binder, n *sitter.Node, scope *symbol.Symbol, inBody bool) {
	switch n.Type() {
	case "formal_parameter", "catch_formal_parameter":
		b.shadow(scope, b.nameNode(n, "identifier"))
	case "spread_parameter":
		if d := firstChildOfType(n, "variable_declarator"); d != nil {
			b.shadow(scope, b.nameNode(d, "identifier"))
		}
	case "enhanced_for_statement":
		b.shadow(scope, n.ChildByFieldName("name"))
	case "variable_declarator":
		if inBody {
			b.shadow(scope, b.nameNode(n, "identifier"))
		}
	}
}

func referenceJava(b *binder, n *sitter.Node) (reference, bool) {
	if !n.IsNamed() {
		return reference{}, false
	}
	switch n.Type() {
	case "identifier", "type_identifier":
		return reference{kind: refName, name: b.text(n), args: -1}, true
	case "generic_type":
		inner := firstChildOfType(n, "type_identifier", "scoped_type_identifier")
		return reference{kind: refInner, callee: inner, target: inner, args: -1}, true
	case "integral_type", "floating_point_type", "boolean_type", "void_type":
		return reference{kind: refBuiltin, name: b.text(n), args: -1}, true
	case "this":
		return reference{kind: refSelf, args: -1}, true
	case "scoped_identifier":
		name := n.ChildByFieldName("name")
		return reference{kind: refMember, qualifier: n.ChildByFieldName("scope"), name: b.text(name), target: name, args: -1}, true
	case "scoped_type_identifier":
		count := int(n.NamedChildCount())
		if count < 2 {
			return reference{}, false
		}
		name := n.NamedChild(count - 1)
		return reference{kind: refMember, qualifier: n.NamedChild(0), name: b.text(name), target: name, args: -1}, true
	case "field_access":
		name := n.ChildByFieldName("field")
		return reference{kind: refMember, qualifier: n.ChildByFieldName("object"), name: b.text(name), target: name, args: -1}, true
	case "method_invocation":
		name := n.ChildByFieldName("name")
		return reference{
			kind:      refCall,
			name:      b.text(name),
			qualifier: n.ChildByFieldName("object"),
			target:    name,
			args:      b.countNamed(n.ChildByFieldName("arguments")),
		}, true
	case "object_creation_expression":
		return reference{kind: refNew, callee: n.ChildByFieldName("type"), args: b.countNamed(n.ChildByFieldName("arguments"))}, true
	}
	return reference{}, false
}

var (
	javaBuiltins     map[string]*symbol.Symbol
	javaBuiltinsOnce sync.Once
)

// builtinJava returns the primitive type spelled name.
func builtinJava(name string) *symbol.Symbol {
	javaBuiltinsOnce.Do(func() {
		global := symbol.NewGlobal()
		javaBuiltins = make(map[string]*symbol.Symbol)
		for _, p := range []string{"boolean", "byte", "char", "short", "int", "long", "float", "double", "void"} {
			javaBuiltins[p] = &symbol.Symbol{Name: p, Kind: symbol.KindType, Alias: p, Container: global}
		}
	})
	return javaBuiltins[name]
}
