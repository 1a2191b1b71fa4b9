// Package script drives Pipeline B end to end: read the input file, map
// its extension to a source language, hand the bytes to a host-provided
// parser, and lower the resulting AST into a data pack. The actual
// parser is out of scope (spec §1 Non-goals) and is supplied by the
// caller as a Parser value, following the teacher's pattern of reading
// then handing content to parser.Parse (cmd/devcmd/main.go).
package script

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/forgewright/smelter/pkgs/datapack"
	"github.com/forgewright/smelter/pkgs/lower"
	"github.com/forgewright/smelter/pkgs/scriptast"
)

// sourceLanguages maps a recognised file extension to the language tag
// passed through to Parser. Extensions outside this set produce
// UnknownSourceTypeError.
var sourceLanguages = map[string]string{
	".js":  "javascript",
	".mjs": "javascript",
	".ts":  "typescript",
}

// Diagnostic is a non-fatal message the host parser reported against the
// source. Diagnostics are printed but never abort compilation (spec
// §7's documented leniency).
type Diagnostic struct {
	Message string
	Line    int
	Column  int
}

// Parser parses source text already known to be in the given language
// and returns the resulting program plus any diagnostics.
type Parser func(source []byte, language string) (*scriptast.Program, []Diagnostic, error)

// Compile reads path, parses it, and lowers it into a data pack.
func Compile(path string, parse Parser, logger *slog.Logger) (*datapack.DataPack, error) {
	language, err := languageFor(path)
	if err != nil {
		return nil, err
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, &SourceReadError{Path: path, Err: err}
	}

	program, diagnostics, err := parse(source, language)
	if err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	for _, d := range diagnostics {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s\n", path, d.Line, d.Column, d.Message)
	}

	lowerer := lower.New(lower.Config{Logger: logger})
	return lowerer.Lower(program), nil
}

func languageFor(path string) (string, error) {
	ext := filepath.Ext(path)
	language, ok := sourceLanguages[ext]
	if !ok {
		return "", &UnknownSourceTypeError{Path: path, Ext: ext}
	}
	return language, nil
}
