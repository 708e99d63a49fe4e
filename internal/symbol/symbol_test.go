package symbol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChain_EndsAtGlobal(t *testing.T) {
	t.Parallel()

	global := NewGlobal()
	ns := &Symbol{Name: "MyNamespace", Kind: KindNamespace, Container: global}
	class := &Symbol{Name: "MyClass", Kind: KindClass, Container: ns}
	method := &Symbol{Name: "Run", Kind: KindMethod, Container: class}

	chain := method.Chain()
	require.Len(t, chain, 4)
	assert.Same(t, method, chain[0])
	assert.Same(t, class, chain[1])
	assert.Same(t, ns, chain[2])
	assert.Same(t, global, chain[3])
	assert.True(t, chain[3].IsGlobal())
	assert.Same(t, global, method.Global())
}

func TestIsGlobal(t *testing.T) {
	t.Parallel()

	assert.True(t, NewGlobal().IsGlobal())
	assert.False(t, (&Symbol{Name: "System", Kind: KindNamespace}).IsGlobal())
	assert.False(t, (&Symbol{Kind: KindNamespace, Container: NewGlobal()}).IsGlobal())
}

func TestEnclosingType(t *testing.T) {
	t.Parallel()

	global := NewGlobal()
	outer := &Symbol{Name: "Outer", Kind: KindClass, Container: global}
	inner := &Symbol{Name: "Inner", Kind: KindStruct, Container: outer}
	field := &Symbol{Name: "count", Kind: KindField, Container: inner}

	assert.Same(t, inner, field.EnclosingType())
	assert.Same(t, outer, outer.EnclosingType())
	assert.Nil(t, global.EnclosingType())
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind     Kind
		isType   bool
		callable bool
	}{
		{KindClass, true, false},
		{KindType, true, false},
		{KindDelegate, true, true},
		{KindMethod, false, true},
		{KindConstructor, false, true},
		{KindField, false, false},
		{KindNamespace, false, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.isType, tt.kind.IsType())
			assert.Equal(t, tt.callable, tt.kind.IsCallable())
		})
	}
	assert.True(t, KindNamespace.IsNamespace())
}
