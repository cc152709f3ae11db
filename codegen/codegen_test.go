package codegen

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minicc-lang/minicc/lexer"
	"github.com/minicc-lang/minicc/parser"
	"github.com/stretchr/testify/require"
)

func generate(t *testing.T, src string) (string, error) {
	t.Helper()
	tokens, err := lexer.Tokenize([]byte(src), "test.c")
	require.NoError(t, err)
	arena, root, err := parser.Parse(tokens)
	require.NoError(t, err)
	var buf bytes.Buffer
	err = Generate(arena, "test.c", root, &buf)
	return buf.String(), err
}

func TestGenerateRecursiveFactorial(t *testing.T) {
	out, err := generate(t, `
		int fact(int n) {
			if (n < 2) return 1;
			return n * fact(n - 1);
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "export function w $fact(w %param_0) {")
	require.Contains(t, out, "call $fact(")
	require.Contains(t, out, "ret")
}

func TestGenerateForwardDeclThenDefinition(t *testing.T) {
	out, err := generate(t, `
		int helper(int x);
		int helper(int x) {
			return x + 1;
		}
	`)
	require.NoError(t, err)
	require.Equal(t, 1, strings.Count(out, "export function"))
}

func TestGenerateForwardDeclSignatureMismatchConflicts(t *testing.T) {
	_, err := generate(t, `
		int helper(int x);
		int helper(long x) {
			return x + 1;
		}
	`)
	require.Error(t, err)
}

func TestGenerateRedeclarationInSameScopeRejected(t *testing.T) {
	_, err := generate(t, `
		int main(void) {
			int x;
			int x;
			return 0;
		}
	`)
	require.Error(t, err)
}

func TestGeneratePointerArithmeticAndLoad(t *testing.T) {
	out, err := generate(t, `
		int at(int *p, int i) {
			return *(p + i);
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "mul")
	require.Contains(t, out, "loadw")
}

func TestGenerateCallArityMismatchRejected(t *testing.T) {
	_, err := generate(t, `
		int add(int a, int b) {
			return a + b;
		}
		int main(void) {
			return add(1);
		}
	`)
	require.Error(t, err)
}

func TestGenerateWhileWithPostIncrement(t *testing.T) {
	out, err := generate(t, `
		int sum(int n) {
			int total;
			int i;
			total = 0;
			i = 0;
			while (i < n) {
				total = total + i;
				i++;
			}
			return total;
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "jnz")
	require.Contains(t, out, "add")
}

func TestGenerateUndeclaredIdentifierRejected(t *testing.T) {
	_, err := generate(t, `
		int main(void) {
			return missing;
		}
	`)
	require.Error(t, err)
}

func TestGenerateEveryBlockHasExactlyOneTerminator(t *testing.T) {
	out, err := generate(t, `
		int classify(int n) {
			if (n < 0) {
				return 0;
			} else {
				return 1;
			}
		}
	`)
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	terminators := 0
	blockTerminators := -1 // -1 outside a block: before the first label, after "}"
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if strings.HasPrefix(l, "@") || l == "}" {
			if blockTerminators >= 0 {
				require.Equal(t, 1, blockTerminators, "block closed by %q", l)
			}
			blockTerminators = 0
			if l == "}" {
				blockTerminators = -1
			}
			continue
		}
		if strings.HasPrefix(l, "jmp") || strings.HasPrefix(l, "jnz") || strings.HasPrefix(l, "ret") {
			terminators++
			if blockTerminators >= 0 {
				blockTerminators++
			}
		}
	}
	require.Greater(t, terminators, 0)
}

func TestGenerateVoidFunctionReturnsBareRet(t *testing.T) {
	out, err := generate(t, `
		void noop(void) {
			return;
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "export function $noop()")
	require.Contains(t, out, "\nret\n")
}

func TestGenerateStringLiteralEmitsDataBlob(t *testing.T) {
	out, err := generate(t, `
		int puts(char *s);
		int main(void) {
			return puts("hi");
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "data $_data_0 = {")
}

func TestGenerateUnsignedComparisonUsesUnsignedOpcode(t *testing.T) {
	out, err := generate(t, `
		int cmp(unsigned int a, unsigned int b) {
			if (a < b) return 1;
			return 0;
		}
	`)
	require.NoError(t, err)
	require.Contains(t, out, "cult")
}
