package debug

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/minicc-lang/minicc/lexer"
	"github.com/minicc-lang/minicc/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive token/AST dumper: each line read is tokenized, and
// in AST mode parsed as a standalone translation unit (so a full function
// declaration or definition is expected, matching the grammar's top-level
// production), then printed as a token stream or an AST S-expression. It
// never runs codegen; the AST-mode toggle is the only state kept across
// lines.
type Repl struct {
	Prompt  string
	DumpAST bool // dump the parsed AST instead of the token stream
}

// NewRepl returns a Repl with the given prompt, dumping tokens by default.
func NewRepl(prompt string) *Repl {
	return &Repl{Prompt: prompt}
}

func (r *Repl) printBanner(w io.Writer) {
	line := strings.Repeat("-", 48)
	blueColor.Fprintf(w, "%s\n", line)
	greenColor.Fprintln(w, "minicc interactive token/AST dumper")
	blueColor.Fprintf(w, "%s\n", line)
	cyanColor.Fprintln(w, "Type a C-subset statement or declaration and press enter")
	cyanColor.Fprintln(w, "Type '.ast' to toggle AST mode, '.exit' to quit")
	blueColor.Fprintf(w, "%s\n", line)
}

// Start runs the read-eval-print loop against stdin/stdout-style streams
// until '.exit' or EOF.
func (r *Repl) Start(w io.Writer) error {
	r.printBanner(w)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			w.Write([]byte("\n"))
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == ".exit" {
			return nil
		}
		if line == ".ast" {
			r.DumpAST = !r.DumpAST
			yellowColor.Fprintf(w, "ast mode: %v\n", r.DumpAST)
			continue
		}
		rl.SaveHistory(line)
		r.evalLine(w, line)
	}
}

func (r *Repl) evalLine(w io.Writer, line string) {
	tokens, err := lexer.Tokenize([]byte(line), "<repl>")
	if err != nil {
		redColor.Fprintf(w, "%s\n", err)
		return
	}
	if !r.DumpAST {
		DumpTokens(w, tokens)
		return
	}
	arena, root, err := parser.Parse(tokens)
	if err != nil {
		redColor.Fprintf(w, "%s\n", err)
		return
	}
	DumpAST(w, arena, root)
}
