// Package compiler wires the lexer, parser, and codegen stages into the
// single entry point the CLI driver and any embedder call: tokenize, parse,
// generate, in that fixed order, stopping at the first stage that errors.
package compiler

import (
	"io"

	"github.com/minicc-lang/minicc/codegen"
	"github.com/minicc-lang/minicc/lexer"
	"github.com/minicc-lang/minicc/parser"
)

// Options controls ambient, non-semantic behavior of one compile: tracing.
// They never change the emitted QBE text for a program that doesn't error.
type Options struct {
	// Trace, when set, enables lexer trace output on lexer.TraceOutput.
	Trace bool
}

// Compile tokenizes, parses, and generates QBE text for src, writing the
// result to out. The file name is used only for locating errors. Compile
// returns the first *errs.Error any stage produces; no partial output is
// guaranteed to be meaningful once an error is returned.
func Compile(src []byte, fileName string, out io.Writer, opts Options) error {
	lexer.Debug = opts.Trace
	tokens, err := lexer.Tokenize(src, fileName)
	if err != nil {
		return err
	}
	arena, root, err := parser.Parse(tokens)
	if err != nil {
		return err
	}
	return codegen.Generate(arena, fileName, root, out)
}
