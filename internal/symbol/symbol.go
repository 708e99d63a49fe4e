// Package symbol defines the named program elements a caret query resolves to.
package symbol

// Kind classifies a Symbol.
type Kind string

const (
	KindNamespace   Kind = "namespace"
	KindClass       Kind = "class"
	KindStruct      Kind = "struct"
	KindInterface   Kind = "interface"
	KindEnum        Kind = "enum"
	KindRecord      Kind = "record"
	KindDelegate    Kind = "delegate"
	KindType        Kind = "type"
	KindMethod      Kind = "method"
	KindFunction    Kind = "function"
	KindConstructor Kind = "constructor"
	KindDestructor  Kind = "destructor"
	KindProperty    Kind = "property"
	KindIndexer     Kind = "indexer"
	KindEvent       Kind = "event"
	KindField       Kind = "field"
	KindEnumMember  Kind = "enum_member"
	KindVariable    Kind = "variable"
	KindConstant    Kind = "constant"
)

// IsType reports whether symbols of this kind can contain members.
func (k Kind) IsType() bool {
	switch k {
	case KindClass, KindStruct, KindInterface, KindEnum, KindRecord, KindDelegate, KindType:
		return true
	}
	return false
}

// IsNamespace reports whether k is KindNamespace.
func (k Kind) IsNamespace() bool {
	return k == KindNamespace
}

// IsCallable reports whether symbols of this kind take arguments.
func (k Kind) IsCallable() bool {
	switch k {
	case KindMethod, KindFunction, KindConstructor, KindDelegate:
		return true
	}
	return false
}

// Symbol is a resolved named element. Container links to the immediately
// enclosing element; the chain ends at a global namespace (see NewGlobal).
//
// Alias is set on built-in types that a language spells with a keyword
// (System.Int32 is "int"). Formatting prints the alias in place of the
// symbol and everything that contains it.
type Symbol struct {
	Name       string
	Kind       Kind
	TypeParams []string
	Alias      string
	Container  *Symbol
}

// NewGlobal returns a fresh global namespace: the unnamed root of a
// containment chain.
func NewGlobal() *Symbol {
	return &Symbol{Kind: KindNamespace}
}

// IsGlobal reports whether s is a global namespace.
func (s *Symbol) IsGlobal() bool {
	return s.Container == nil && s.Kind == KindNamespace && s.Name == ""
}

// IsGeneric reports whether s declares type parameters.
func (s *Symbol) IsGeneric() bool {
	return len(s.TypeParams) > 0
}

// Chain returns s followed by each of its containers, ending at the root.
func (s *Symbol) Chain() []*Symbol {
	var chain []*Symbol
	for cur := s; cur != nil; cur = cur.Container {
		chain = append(chain, cur)
	}
	return chain
}

// Global returns the root of s's containment chain.
func (s *Symbol) Global() *Symbol {
	cur := s
	for cur.Container != nil {
		cur = cur.Container
	}
	return cur
}

// EnclosingType returns the innermost type in s's chain, starting at s
// itself, or nil when s is not inside a type.
func (s *Symbol) EnclosingType() *Symbol {
	for cur := s; cur != nil; cur = cur.Container {
		if cur.Kind.IsType() {
			return cur
		}
	}
	return nil
}

func (s *Symbol) String() string {
	return string(s.Kind) + " " + s.Name
}
