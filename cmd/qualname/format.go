package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gitlab.com/tozd/go/errors"

	"github.com/jward/qualname"
)

var validFormats = []string{"json", "text"}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return errors.Errorf("invalid format %q: must be %s", format, strings.Join(validFormats, " or "))
}

// outputResult writes result to w in the selected format.
func (a *app) outputResult(w io.Writer, result CLIResult) error {
	if a.settings.Format == "text" {
		return outputResultText(w, result)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// outputError writes an error in the selected format and returns it so RunE
// can propagate it to Cobra. In JSON mode the error is written to out as a
// CLIResult envelope. In text mode it goes to errOut.
func (a *app) outputError(out, errOut io.Writer, command string, err error) error {
	a.errorHandled = true
	if a.settings.Format != "json" {
		fmt.Fprintf(errOut, "Error: %s\n", err)
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(CLIResult{Command: command, Error: err.Error()})
	return err
}

func outputResultText(w io.Writer, result CLIResult) error {
	switch v := result.Results.(type) {
	case CLIQualifiedName:
		if v.Found {
			fmt.Fprintln(w, v.Name)
		} else {
			fmt.Fprintln(w, qualname.NoSymbolMessage)
		}
	case []CLILanguage:
		formatLanguagesText(w, v)
	case nil:
	default:
		return errors.Errorf("unsupported result type for text format: %T", v)
	}
	return nil
}

// formatLanguagesText formats CLILanguage results as aligned columns.
func formatLanguagesText(w io.Writer, langs []CLILanguage) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tEXTENSIONS")
	for _, l := range langs {
		fmt.Fprintf(tw, "%s\t%s\n", l.Name, strings.Join(l.Extensions, " "))
	}
	tw.Flush()
}
