package main

import (
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/jward/qualname"
)

func newAtCmd(a *app) *cobra.Command {
	var (
		noNamespace bool
		copyName    bool
	)
	cmd := &cobra.Command{
		Use:   "at <file> <offset> | at <file> <line> <col>",
		Short: "Print the qualified name at a caret position",
		Long: "Resolves the element declared or referenced at a caret and prints its qualified name. " +
			"The caret is a 0-based character offset, or a 0-based line and character column. " +
			"Flags go before <file>; everything after it is positional, so negative numbers reach validation.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			file, err := resolveFilePath(args[0])
			if err != nil {
				return a.outputError(out, errOut, "at", err)
			}
			pos, err := parsePosition(args[1:])
			if err != nil {
				return a.outputError(out, errOut, "at", err)
			}

			includeNamespace := a.settings.IncludeNamespace
			if cmd.Flags().Changed("no-namespace") {
				includeNamespace = !noNamespace
			}
			if !cmd.Flags().Changed("copy") {
				copyName = a.settings.Clipboard
			}

			var sink qualname.Sink = &qualname.MemorySink{}
			if copyName {
				sink = qualname.ClipboardSink{Messages: errOut}
			}
			svc := &qualname.Service{
				Provider: &qualname.FileProvider{Fs: a.fs, Path: file, Position: pos, Extensions: a.settings.Extensions},
				Sink:     sink,
			}

			name, err := svc.Copy(cmd.Context(), includeNamespace)
			if err != nil && name == "" {
				return a.outputError(out, errOut, "at", err)
			}

			result := CLIQualifiedName{File: file, Found: name != "", Name: name, Copied: copyName && err == nil && name != ""}
			if pos.ByLine {
				result.Line, result.Column = &pos.Line, &pos.Column
			} else {
				result.Offset = &pos.Offset
			}
			envelope := CLIResult{Command: "at", Results: result}
			if err != nil {
				// The name resolved but could not be copied; the sink has
				// already reported why.
				envelope.Error = err.Error()
				a.errorHandled = true
			}
			if outErr := a.outputResult(out, envelope); outErr != nil {
				return outErr
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&noNamespace, "no-namespace", false, "drop enclosing namespaces and packages")
	cmd.Flags().BoolVar(&copyName, "copy", false, "copy the name to the system clipboard")
	cmd.Flags().SetInterspersed(false)
	return cmd
}

// parsePosition reads "<offset>" or "<line> <col>".
func parsePosition(args []string) (qualname.Position, error) {
	switch len(args) {
	case 1:
		offset, err := parseIntArg(args[0], "offset")
		if err != nil {
			return qualname.Position{}, err
		}
		return qualname.AtOffset(offset), nil
	case 2:
		line, err := parseIntArg(args[0], "line")
		if err != nil {
			return qualname.Position{}, err
		}
		col, err := parseIntArg(args[1], "col")
		if err != nil {
			return qualname.Position{}, err
		}
		return qualname.AtLine(line, col), nil
	}
	return qualname.Position{}, errors.New("requires <offset> or <line> <col>")
}

func resolveFilePath(file string) (string, error) {
	if filepath.IsAbs(file) {
		return file, nil
	}
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", errors.Errorf("resolving file path %q: %w", file, err)
	}
	return abs, nil
}

// parseIntArg parses a positional argument as an integer with a clear error.
func parseIntArg(value, name string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q: must be a non-negative integer", name, value)
	}
	if n < 0 {
		return 0, errors.Errorf("invalid %s %q: must be non-negative", name, value)
	}
	return n, nil
}
