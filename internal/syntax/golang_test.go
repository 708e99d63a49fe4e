package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/qualname/internal/locate"
	"github.com/jward/qualname/internal/symbol"
)

const goSource = `package main

import "fmt"

// Server holds connection settings.
type Server struct {
	Host string
	Port int
}

type List[T any] struct {
	items []T
}

func (l *List[T]) Push(v T) {
	l.items = append(l.items, v)
}

func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

const defaultPort = 8080

func helper(a, b int) int {
	return a + b
}

func main() {
	s := &Server{Host: "localhost", Port: defaultPort}
	fmt.Println(s.Address(), helper(1, 2))
}
`

func TestGo_QualifiedNames(t *testing.T) {
	t.Parallel()
	snap := parseSource(t, "go", goSource)

	tests := []struct {
		name      string
		needle    string
		withNS    string
		withoutNS string
	}{
		{"struct type", "Server struct", "main.Server", "Server"},
		{"struct field", "Host string", "main.Server.Host", "Server.Host"},
		{"generic type", "List[T any]", "main.List<T>", "List<T>"},
		{"method on generic type", "Push", "main.List<T>.Push", "List<T>.Push"},
		{"method", "Address() string", "main.Server.Address", "Server.Address"},
		{"function", "helper(a, b int)", "main.helper", "helper"},
		{"function call", "helper(1, 2)", "main.helper", "helper"},
		{"package constant", "defaultPort}", "main.defaultPort", "defaultPort"},
		{"type reference", "Server{", "main.Server", "Server"},
		{"call through local receiver", "Address(),", "main.main", "main"},
		{"builtin type", "string\n\tPort", "string", "string"},
		{"package clause", "main\n\nimport", "main", "main"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withNS, withoutNS, ok := qualifiedAt(t, snap, goSource, tt.needle)
			require.True(t, ok, "no symbol at %q", tt.needle)
			assert.Equal(t, tt.withNS, withNS)
			assert.Equal(t, tt.withoutNS, withoutNS)
		})
	}
}

func TestGo_MethodsRehomedOntoReceiver(t *testing.T) {
	t.Parallel()
	snap := parseSource(t, "go", goSource)

	server := symbolAt(t, snap, goSource, "Server struct")
	address := symbolAt(t, snap, goSource, "Address() string")
	require.NotNil(t, server)
	require.NotNil(t, address)
	assert.Same(t, server, address.Container)
	assert.Equal(t, symbol.KindMethod, address.Kind)
}

func TestGo_NoSymbol(t *testing.T) {
	t.Parallel()
	snap := parseSource(t, "go", goSource)

	assert.Nil(t, locate.Locate(snap, offsetOf(t, goSource, "holds connection", 0)), "comment")
	assert.Nil(t, locate.Locate(snap, offsetOf(t, goSource, `"fmt"`, 1)), "import path")
}
