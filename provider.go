package qualname

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/jward/qualname/internal/syntax"
)

// Provider supplies the snapshot and caret position for one invocation.
// A nil snapshot with a nil error means there is no usable context (for
// example an unsupported file type).
type Provider interface {
	Snapshot(ctx context.Context) (Snapshot, int, error)
}

// Position is a caret given as a character offset, or as a 0-based line
// and character column when ByLine is set.
type Position struct {
	Offset int
	Line   int
	Column int
	ByLine bool
}

// AtOffset returns a Position at a character offset.
func AtOffset(offset int) Position {
	return Position{Offset: offset}
}

// AtLine returns a Position at a 0-based line and column.
func AtLine(line, column int) Position {
	return Position{Line: line, Column: column, ByLine: true}
}

// FileProvider parses one file read through Fs. The language is chosen by
// extension; Extensions adds or overrides entries (".jav": "java").
type FileProvider struct {
	Fs         afero.Fs
	Path       string
	Position   Position
	Extensions map[string]string
}

// Snapshot reads and parses the file. The caller closes the returned
// snapshot with Close when it implements it.
func (p *FileProvider) Snapshot(ctx context.Context) (Snapshot, int, error) {
	logger := zerolog.Ctx(ctx).With().Str("file", p.Path).Logger()

	lang, ok := syntax.LanguageForFile(p.Path, p.Extensions)
	if !ok {
		logger.Debug().Msg("no language for file")
		return nil, 0, nil
	}

	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	src, err := afero.ReadFile(fs, p.Path)
	if err != nil {
		return nil, 0, errors.Errorf("reading %s: %w", p.Path, err)
	}

	snap, err := syntax.Parse(ctx, lang, src)
	if err != nil {
		return nil, 0, errors.Errorf("parsing %s: %w", p.Path, err)
	}

	offset := p.Position.Offset
	if p.Position.ByLine {
		o, ok := snap.OffsetAt(p.Position.Line, p.Position.Column)
		if !ok {
			logger.Debug().Int("line", p.Position.Line).Int("column", p.Position.Column).Msg("position outside file")
			o = -1
		}
		offset = o
	}
	logger.Debug().Str("language", lang).Int("offset", offset).Int("length", snap.Len()).Msg("parsed snapshot")
	return snap, offset, nil
}
