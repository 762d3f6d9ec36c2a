package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripANSI(t *testing.T) {
	assert.Equal(t, "bold", StripANSI("\x1b[1mbold\x1b[0m"))
	assert.Equal(t, "plain", StripANSI("plain"))
}

func TestLineHelpers(t *testing.T) {
	out := "first line\n\nsecond match\n  \nthird"

	assert.True(t, ContainsLine(out, "match"))
	assert.False(t, ContainsLine(out, "missing"))
	assert.Equal(t, "second match", FindLine(out, "second"))
	assert.Empty(t, FindLine(out, "missing"))
	assert.Equal(t, 3, CountLines(out))
}
