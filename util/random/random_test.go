package random

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func TestSeq(t *testing.T) {
	s := Seq(32)
	assert.Len(t, s, 32)
	for _, r := range s {
		assert.True(t, r < unicode.MaxASCII && (unicode.IsDigit(r) || unicode.IsLetter(r)), "unexpected rune %q", r)
	}
	assert.NotEqual(t, s, Seq(32))
}
