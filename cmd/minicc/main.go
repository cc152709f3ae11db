// Command minicc compiles a preprocessed C-subset translation unit to QBE
// intermediate text.
package main

import (
	"fmt"
	"os"

	"github.com/minicc-lang/minicc/compiler"
	"github.com/minicc-lang/minicc/debug"
	"github.com/minicc-lang/minicc/lexer"
	"github.com/minicc-lang/minicc/parser"
	"github.com/spf13/cobra"
)

var (
	outputPath  string
	traceFlag   bool
	dumpTokens  bool
	dumpASTFlag bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "minicc <input.c>",
		Short: "Compile a C-subset translation unit to QBE intermediate text",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompile,
	}
	root.Flags().StringVarP(&outputPath, "output", "o", "", "QBE output path (default stdout)")
	root.Flags().BoolVar(&traceFlag, "trace", false, "trace lexer activity to stderr")
	root.Flags().BoolVar(&dumpTokens, "dump-tokens", false, "print the token stream instead of compiling")
	root.Flags().BoolVar(&dumpASTFlag, "dump-ast", false, "print the parsed AST instead of compiling")
	root.AddCommand(newReplCmd())
	return root
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if dumpTokens || dumpASTFlag {
		return runDump(path, src)
	}

	if outputPath != "" && outputPath != "-" {
		f, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer f.Close()
		return compileTo(src, path, f)
	}
	return compileTo(src, path, os.Stdout)
}

func compileTo(src []byte, path string, out *os.File) error {
	if traceFlag {
		lexer.TraceOutput = os.Stderr
	}
	err := compiler.Compile(src, path, out, compiler.Options{Trace: traceFlag})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return err
}

func runDump(path string, src []byte) error {
	tokens, err := lexer.Tokenize(src, path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if dumpTokens {
		debug.DumpTokens(os.Stdout, tokens)
	}
	if dumpASTFlag {
		arena, root, err := parser.Parse(tokens)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return err
		}
		debug.DumpAST(os.Stdout, arena, root)
	}
	return nil
}

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively tokenize/parse translation units and dump the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			return debug.NewRepl("minicc> ").Start(os.Stdout)
		},
	}
}
