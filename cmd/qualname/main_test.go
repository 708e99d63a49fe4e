package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const appSource = `package com.acme;

class App {
    void run() {}
}
`

// execute runs the CLI against an in-memory filesystem holding
// /src/App.java and returns stdout, stderr and the command error.
func execute(t *testing.T, files map[string]string, args ...string) (string, string, error) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/src/App.java", []byte(appSource), 0o644))
	for path, content := range files {
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd(&app{fs: fs})
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestAt_Text(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, nil, "at", "/src/App.java", "3", "10")
	require.NoError(t, err)
	assert.Equal(t, "com.acme.App.run\n", out)
}

func TestAt_NoNamespace(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, nil, "at", "--no-namespace", "/src/App.java", "2", "6")
	require.NoError(t, err)
	assert.Equal(t, "App\n", out)
}

func TestAt_JSON(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, nil, "at", "--format", "json", "/src/App.java", "25")
	require.NoError(t, err)

	var result struct {
		Command string           `json:"command"`
		Results CLIQualifiedName `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "at", result.Command)
	assert.True(t, result.Results.Found)
	assert.Equal(t, "com.acme.App", result.Results.Name)
	require.NotNil(t, result.Results.Offset)
	assert.Equal(t, 25, *result.Results.Offset)
	assert.False(t, result.Results.Copied)
}

func TestAt_NoSymbol(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, nil, "at", "/src/App.java", "1", "0")
	require.NoError(t, err)
	assert.Equal(t, "No symbol found at caret position\n", out)
}

func TestAt_ConfigFile(t *testing.T) {
	t.Parallel()
	files := map[string]string{
		"/cfg/qualname.yaml": "include_namespace: false\nformat: json\n",
	}
	out, _, err := execute(t, files, "--config", "/cfg/qualname.yaml", "at", "/src/App.java", "3", "10")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "App.run"`)

	// Flags win over the file.
	out, _, err = execute(t, files, "--config", "/cfg/qualname.yaml", "--format", "text", "at", "/src/App.java", "3", "10")
	require.NoError(t, err)
	assert.Equal(t, "App.run\n", out)
}

func TestAt_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad offset", []string{"at", "/src/App.java", "abc"}, `invalid offset "abc"`},
		{"negative column", []string{"at", "/src/App.java", "1", "-2"}, `invalid col "-2": must be non-negative`},
		{"negative offset", []string{"at", "/src/App.java", "-5"}, `invalid offset "-5": must be non-negative`},
		{"flag after file is positional", []string{"at", "/src/App.java", "0", "--copy"}, `invalid col "--copy"`},
		{"missing file", []string{"at", "/src/Gone.java", "0"}, "reading /src/Gone.java"},
		{"bad format", []string{"--format", "xml", "at", "/src/App.java", "0"}, `invalid format "xml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, nil, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestAt_ErrorEnvelope(t *testing.T) {
	t.Parallel()
	out, _, err := execute(t, nil, "--format", "json", "at", "/src/Gone.java", "0")
	require.Error(t, err)

	var result CLIResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "at", result.Command)
	assert.Contains(t, result.Error, "reading /src/Gone.java")
}

func TestLanguages(t *testing.T) {
	t.Parallel()
	files := map[string]string{"/cfg/q.yaml": "extensions:\n  jav: java\n"}
	out, _, err := execute(t, files, "--config", "/cfg/q.yaml", "languages")
	require.NoError(t, err)
	assert.Contains(t, out, "LANGUAGE")
	assert.Contains(t, out, ".cs .csx")
	assert.Contains(t, out, ".jav .java")
}

func TestParsePosition(t *testing.T) {
	t.Parallel()

	pos, err := parsePosition([]string{"42"})
	require.NoError(t, err)
	assert.False(t, pos.ByLine)
	assert.Equal(t, 42, pos.Offset)

	pos, err = parsePosition([]string{"3", "7"})
	require.NoError(t, err)
	assert.True(t, pos.ByLine)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 7, pos.Column)

	_, err = parsePosition(nil)
	assert.Error(t, err)
}

func TestParseIntArg(t *testing.T) {
	t.Parallel()
	n, err := parseIntArg("12", "line")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	_, err = parseIntArg("x", "line")
	assert.ErrorContains(t, err, "must be a non-negative integer")
	_, err = parseIntArg("-1", "line")
	assert.ErrorContains(t, err, "must be non-negative")
}
