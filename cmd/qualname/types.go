package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIQualifiedName is the result of the at command.
type CLIQualifiedName struct {
	File   string `json:"file"`
	Offset *int   `json:"offset,omitempty"`
	Line   *int   `json:"line,omitempty"`
	Column *int   `json:"column,omitempty"`
	Found  bool   `json:"found"`
	Name   string `json:"name,omitempty"`
	Copied bool   `json:"copied"`
}

// CLILanguage is one supported language.
type CLILanguage struct {
	Name       string   `json:"name"`
	Extensions []string `json:"extensions"`
}
