// Package syntax builds caret-query snapshots from source files using
// tree-sitter. A Snapshot binds every declaration in one file to a symbol
// and resolves references lexically within that file.
package syntax

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"gitlab.com/tozd/go/errors"
)

// Parse parses src as the named language and binds its declarations.
func Parse(ctx context.Context, language string, src []byte) (*Snapshot, error) {
	lang, found := LanguageByName(language)
	if !found {
		return nil, errors.Errorf("parse: unsupported language %q", language)
	}

	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(lang.grammar)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, errors.Errorf("parse: tree-sitter parse failed: %w", err)
	}

	snap := newSnapshot(lang, tree, src)
	snap.bind()
	return snap, nil
}
