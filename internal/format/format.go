// Package format renders qualified names for resolved symbols.
package format

import (
	"strings"

	"github.com/jward/qualname/internal/symbol"
)

// Policy controls which containers appear in a qualified name.
type Policy struct {
	// Namespaces keeps enclosing namespaces. Without it the name starts
	// at the outermost type.
	Namespaces bool
}

var (
	// WithNamespace renders MyNamespace.OuterClass.InnerClass.
	WithNamespace = Policy{Namespaces: true}
	// WithoutNamespace renders OuterClass.InnerClass.
	WithoutNamespace = Policy{Namespaces: false}
)

// Format renders s under WithNamespace or WithoutNamespace.
func Format(s *symbol.Symbol, includeNamespace bool) string {
	if includeNamespace {
		return WithNamespace.Format(s)
	}
	return WithoutNamespace.Format(s)
}

// Format renders the dot-joined chain from the outermost kept container
// down to s. The global namespace never prints, and method parameters are
// never shown.
func (p Policy) Format(s *symbol.Symbol) string {
	var segments []string
	for cur := s; cur != nil; cur = cur.Container {
		if cur.Alias != "" {
			segments = append(segments, cur.Alias)
			break
		}
		if cur.IsGlobal() {
			break
		}
		if cur != s && cur.Kind.IsNamespace() && !p.Namespaces {
			continue
		}
		segments = append(segments, segment(cur))
	}

	var sb strings.Builder
	for i := len(segments) - 1; i >= 0; i-- {
		sb.WriteString(segments[i])
		if i > 0 {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

// segment renders one chain element: Name or Name<T, U>.
func segment(s *symbol.Symbol) string {
	if !s.IsGeneric() {
		return s.Name
	}
	return s.Name + "<" + strings.Join(s.TypeParams, ", ") + ">"
}
