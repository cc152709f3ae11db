// Package sv provides a non-owning view over a source byte buffer, the
// primitive the lexer scans with instead of copying substrings out of the
// input as it goes.
package sv

import "unicode/utf8"

// View is a non-owning slice over a source buffer. Trimming and consuming a
// View never allocates; the underlying bytes always belong to the caller
// that constructed the original View.
type View struct {
	data []byte
}

// FromBytes wraps src in a View starting at its first byte.
func FromBytes(src []byte) View {
	return View{data: src}
}

// Len reports the number of remaining bytes.
func (v View) Len() int {
	return len(v.data)
}

// Empty reports whether the view has no remaining bytes.
func (v View) Empty() bool {
	return len(v.data) == 0
}

// At returns the byte at position i without bounds checking beyond Go's own;
// callers must guard with Len.
func (v View) At(i int) byte {
	return v.data[i]
}

// Bytes returns the remaining bytes. The caller must not mutate them.
func (v View) Bytes() []byte {
	return v.data
}

// String copies the remaining bytes into a new string.
func (v View) String() string {
	return string(v.data)
}

// TrimLeft drops leading bytes for which isSpace reports true, mirroring
// sv_trim_left's isspace-driven skip.
func (v View) TrimLeft(isSpace func(byte) bool) View {
	i := 0
	for i < len(v.data) && isSpace(v.data[i]) {
		i++
	}
	return View{data: v.data[i:]}
}

// Take returns a new View over the first n bytes without consuming them from
// the receiver.
func (v View) Take(n int) View {
	return View{data: v.data[:n]}
}

// Consume splits off the first n bytes as a View and returns the remainder
// as a second View — the Go analogue of sv_consume, which mutated its
// receiver in place; here both halves are returned since Views are values.
func (v View) Consume(n int) (taken View, rest View) {
	return View{data: v.data[:n]}, View{data: v.data[n:]}
}

// Eq reports whether two views hold byte-identical content.
func Eq(a, b View) bool {
	if len(a.data) != len(b.data) {
		return false
	}
	for i := range a.data {
		if a.data[i] != b.data[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether v begins with the literal prefix.
func (v View) HasPrefix(prefix string) bool {
	if len(prefix) > len(v.data) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if v.data[i] != prefix[i] {
			return false
		}
	}
	return true
}

// DecodeRune reports the rune and byte width starting at the view's current
// position; it is used only for diagnostic messages about unrecognized
// bytes, since the lexer's grammar itself is ASCII.
func (v View) DecodeRune() (rune, int) {
	if v.Empty() {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRune(v.data)
}
