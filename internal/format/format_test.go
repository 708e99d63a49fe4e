package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jward/qualname/internal/symbol"
)

func ns(name string, container *symbol.Symbol) *symbol.Symbol {
	return &symbol.Symbol{Name: name, Kind: symbol.KindNamespace, Container: container}
}

func sym(name string, kind symbol.Kind, container *symbol.Symbol, params ...string) *symbol.Symbol {
	return &symbol.Symbol{Name: name, Kind: kind, TypeParams: params, Container: container}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	global := symbol.NewGlobal()
	myNS := ns("MyNamespace", global)
	subNS := ns("SubNamespace", myNS)
	myClass := sym("MyClass", symbol.KindClass, myNS)
	outer := sym("OuterClass", symbol.KindClass, myNS)
	inner := sym("InnerClass", symbol.KindClass, outer)
	generic := sym("MyGenericClass", symbol.KindClass, myNS, "T")
	pair := sym("Pair", symbol.KindStruct, myNS, "TKey", "TValue")
	topLevel := sym("Program", symbol.KindClass, global)
	system := ns("System", symbol.NewGlobal())
	int32Sym := &symbol.Symbol{Name: "Int32", Kind: symbol.KindStruct, Alias: "int", Container: system}

	tests := []struct {
		name      string
		sym       *symbol.Symbol
		withNS    string
		withoutNS string
	}{
		{"class in namespace", myClass, "MyNamespace.MyClass", "MyClass"},
		{"method", sym("MyMethod", symbol.KindMethod, myClass), "MyNamespace.MyClass.MyMethod", "MyClass.MyMethod"},
		{"property", sym("MyProperty", symbol.KindProperty, myClass), "MyNamespace.MyClass.MyProperty", "MyClass.MyProperty"},
		{"nested class", inner, "MyNamespace.OuterClass.InnerClass", "OuterClass.InnerClass"},
		{"generic class", generic, "MyNamespace.MyGenericClass<T>", "MyGenericClass<T>"},
		{"generic method", sym("MyGenericMethod", symbol.KindMethod, myClass, "T"), "MyNamespace.MyClass.MyGenericMethod<T>", "MyClass.MyGenericMethod<T>"},
		{"member of generic type", sym("Value", symbol.KindField, generic), "MyNamespace.MyGenericClass<T>.Value", "MyGenericClass<T>.Value"},
		{"two type params", pair, "MyNamespace.Pair<TKey, TValue>", "Pair<TKey, TValue>"},
		{"multi-segment namespace", sym("MyClass", symbol.KindClass, subNS), "MyNamespace.SubNamespace.MyClass", "MyClass"},
		{"namespace itself", subNS, "MyNamespace.SubNamespace", "SubNamespace"},
		{"type in global namespace", topLevel, "Program", "Program"},
		{"package function", sym("main", symbol.KindFunction, ns("main", symbol.NewGlobal())), "main.main", "main"},
		{"built-in alias", int32Sym, "int", "int"},
		{"member of built-in", sym("Parse", symbol.KindMethod, int32Sym), "int.Parse", "int.Parse"},
		{"global namespace", global, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.withNS, Format(tt.sym, true))
			assert.Equal(t, tt.withoutNS, Format(tt.sym, false))
		})
	}
}

func TestFormat_WithoutNamespaceIsSuffixOfWithNamespace(t *testing.T) {
	t.Parallel()

	global := symbol.NewGlobal()
	a := ns("A", global)
	b := ns("B", a)
	outer := sym("Outer", symbol.KindClass, b, "T")
	inner := sym("Inner", symbol.KindInterface, outer)
	member := sym("Do", symbol.KindMethod, inner, "U", "V")

	for _, s := range []*symbol.Symbol{outer, inner, member} {
		full := WithNamespace.Format(s)
		short := WithoutNamespace.Format(s)
		assert.Equal(t, "A.B."+short, full)
		assert.True(t, strings.HasSuffix(full, short))
	}
}

func TestFormat_Idempotent(t *testing.T) {
	t.Parallel()

	global := symbol.NewGlobal()
	s := sym("Run", symbol.KindMethod, sym("Job", symbol.KindClass, ns("Work", global), "T"), "R")

	first := Format(s, true)
	assert.Equal(t, first, Format(s, true))
	assert.Equal(t, "Work.Job<T>.Run<R>", first)
	assert.Equal(t, Format(s, false), Format(s, false))
}

func TestFormat_GenericBracketsOnlyWithTypeParams(t *testing.T) {
	t.Parallel()

	global := symbol.NewGlobal()
	plain := sym("List", symbol.KindClass, global)
	empty := sym("List", symbol.KindClass, global)
	empty.TypeParams = []string{}

	assert.NotContains(t, Format(plain, true), "<")
	assert.NotContains(t, Format(empty, true), "<")
	assert.Equal(t, "List<T>", Format(sym("List", symbol.KindClass, global, "T"), true))
}
