package syntax

import (
	"path/filepath"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/qualname/internal/symbol"
)

// Language describes how one grammar's trees bind into symbols.
type Language struct {
	Name       string
	Extensions []string
	grammar    *sitter.Language

	// trivia are leaf types that own no token (comments).
	trivia map[string]bool
	// bodies are node types below which nothing is declared.
	bodies map[string]bool
	// paramNames are the node types naming a type parameter.
	paramNames map[string]bool
	// implicitMembers lets unqualified names see members of enclosing types.
	implicitMembers bool

	declare   func(b *binder, n *sitter.Node, scope *symbol.Symbol) (inner *symbol.Symbol, carry bool)
	locals    func(b *binder, n *sitter.Node, scope *symbol.Symbol, inBody bool)
	reference func(b *binder, n *sitter.Node) (reference, bool)
	builtin   func(name string) *symbol.Symbol
}

// extToLanguage maps file extensions to canonical language names.
var extToLanguage = map[string]string{
	".cs":   "csharp",
	".csx":  "csharp",
	".java": "java",
	".go":   "go",
}

// languages maps language names to their binding rules.
// Lazily initialized on first call via sync.Once.
var (
	languages     map[string]*Language
	languagesOnce sync.Once
)

func initLanguages() {
	languagesOnce.Do(func() {
		languages = map[string]*Language{
			"csharp": csharpLanguage(),
			"java":   javaLanguage(),
			"go":     goLanguage(),
		}
	})
}

// LanguageForFile returns the canonical language name for a file path based
// on its extension. overrides maps extra extensions (with leading dot) to
// language names and wins over the built-in table. Returns ("", false) if
// the extension is not recognized.
func LanguageForFile(path string, overrides map[string]string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := overrides[ext]; ok {
		_, supported := LanguageByName(lang)
		return lang, supported
	}
	lang, ok := extToLanguage[ext]
	return lang, ok
}

// LanguageByName returns the binding rules for a canonical language name.
func LanguageByName(name string) (*Language, bool) {
	initLanguages()
	l, ok := languages[name]
	return l, ok
}

// Languages returns every supported language sorted by name.
func Languages() []*Language {
	initLanguages()
	out := make([]*Language, 0, len(languages))
	for _, l := range languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
