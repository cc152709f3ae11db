package sv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTrimLeft(t *testing.T) {
	v := FromBytes([]byte("   abc"))
	trimmed := v.TrimLeft(func(b byte) bool { return b == ' ' })
	require.Equal(t, "abc", trimmed.String())
}

func TestConsume(t *testing.T) {
	v := FromBytes([]byte("int x"))
	taken, rest := v.Consume(3)
	require.Equal(t, "int", taken.String())
	require.Equal(t, " x", rest.String())
}

func TestEq(t *testing.T) {
	require.True(t, Eq(FromBytes([]byte("abc")), FromBytes([]byte("abc"))))
	require.False(t, Eq(FromBytes([]byte("abc")), FromBytes([]byte("abd"))))
	require.False(t, Eq(FromBytes([]byte("abc")), FromBytes([]byte("ab"))))
}

func TestHasPrefix(t *testing.T) {
	v := FromBytes([]byte("== rest"))
	require.True(t, v.HasPrefix("=="))
	require.False(t, v.HasPrefix("!="))
}
