package main

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/jward/qualname/internal/syntax"
)

func newLanguagesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and their file extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.outputResult(cmd.OutOrStdout(), CLIResult{
				Command: "languages",
				Results: languageTable(a.settings.Extensions),
			})
		},
	}
}

// languageTable lists every language with its built-in extensions plus any
// configured overrides that map to it.
func languageTable(overrides map[string]string) []CLILanguage {
	var out []CLILanguage
	for _, l := range syntax.Languages() {
		exts := append([]string(nil), l.Extensions...)
		for ext, name := range overrides {
			if name == l.Name && !contains(exts, ext) {
				exts = append(exts, ext)
			}
		}
		sort.Strings(exts)
		out = append(out, CLILanguage{Name: l.Name, Extensions: exts})
	}
	return out
}

func contains(items []string, s string) bool {
	for _, it := range items {
		if it == s {
			return true
		}
	}
	return false
}
