package mcpserver

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"

	"github.com/jward/qualname"
	"github.com/jward/qualname/internal/config"
)

// Handler turns tool calls into caret queries against files on Fs.
type Handler struct {
	fs  afero.Fs
	cfg config.Config
}

// NewHandler returns a Handler reading through fs with cfg's extension
// overrides and namespace default.
func NewHandler(fs afero.Fs, cfg config.Config) *Handler {
	return &Handler{fs: fs, cfg: cfg}
}

// Handle runs one qualified_name call. Bad arguments and failed queries
// come back as tool errors; a caret on nothing is a normal text result.
func (h *Handler) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	file, err := req.RequireString("file")
	if err != nil {
		return mcp.NewToolResultError("file is required"), nil
	}
	path, err := filepath.Abs(file)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid file: %v", err)), nil
	}

	pos, err := position(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	includeNamespace := req.GetBool("include_namespace", h.cfg.IncludeNamespace)

	sink := &qualname.MemorySink{}
	svc := &qualname.Service{
		Provider: &qualname.FileProvider{Fs: h.fs, Path: path, Position: pos, Extensions: h.cfg.Extensions},
		Sink:     sink,
	}
	name, err := svc.Copy(ctx, includeNamespace)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if name == "" {
		zerolog.Ctx(ctx).Debug().Str("file", path).Msg("no symbol at caret")
		return mcp.NewToolResultText(qualname.NoSymbolMessage), nil
	}
	return mcp.NewToolResultText(name), nil
}

func position(req mcp.CallToolRequest) (qualname.Position, error) {
	offset := req.GetInt("offset", -1)
	line := req.GetInt("line", -1)
	column := req.GetInt("column", -1)

	switch {
	case offset >= 0:
		return qualname.AtOffset(offset), nil
	case line >= 0 && column >= 0:
		return qualname.AtLine(line, column), nil
	}
	return qualname.Position{}, errors.New("either offset or line and column are required")
}
