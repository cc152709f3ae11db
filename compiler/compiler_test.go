package compiler

import (
	"bytes"
	"testing"

	"github.com/minicc-lang/minicc/lexer"
	"github.com/stretchr/testify/require"
)

func TestCompileFactorial(t *testing.T) {
	var buf bytes.Buffer
	err := Compile([]byte(`
		int fact(int n) {
			if (n < 2) return 1;
			return n * fact(n - 1);
		}
	`), "fact.c", &buf, Options{})
	require.NoError(t, err)
	require.Contains(t, buf.String(), "export function w $fact")
}

func TestCompileStopsAtFirstLexError(t *testing.T) {
	var buf bytes.Buffer
	err := Compile([]byte(`int main(void) { return "unterminated; }`), "bad.c", &buf, Options{})
	require.Error(t, err)
}

func TestCompileStopsAtFirstParseError(t *testing.T) {
	var buf bytes.Buffer
	err := Compile([]byte(`int main(void) { return 0 }`), "bad.c", &buf, Options{})
	require.Error(t, err)
}

func TestCompileStopsAtFirstSymbolError(t *testing.T) {
	var buf bytes.Buffer
	err := Compile([]byte(`
		int main(void) {
			return missing_fn();
		}
	`), "bad.c", &buf, Options{})
	require.Error(t, err)
}

func TestCompileTraceOption(t *testing.T) {
	var out, trace bytes.Buffer
	defer func() {
		lexer.Debug = false
		lexer.TraceOutput = nil
	}()
	lexer.TraceOutput = &trace

	err := Compile([]byte(`int main(void) { return 0; }`), "trace.c", &out, Options{Trace: true})
	require.NoError(t, err)
	require.NotEmpty(t, trace.String())
}
