package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	valid := StatusStyle(StatusValid)
	assert.Equal(t, ColorGreen, valid.GetForeground())

	invalid := StatusStyle(StatusInvalid)
	assert.Equal(t, ColorBoldRed, invalid.GetForeground())
	assert.True(t, invalid.GetBold())

	unknown := StatusStyle("something-else")
	assert.False(t, unknown.GetBold())
}

func TestFormatCheckmark(t *testing.T) {
	s := FormatCheckmark("descriptor is valid")

	assert.Contains(t, s, "✔")
	assert.Contains(t, s, "descriptor is valid")
}

func TestTableRendersHeadersAndRows(t *testing.T) {
	tbl := NewTable("FIELD", "VALUE").
		Row("id", "basicexample").
		Row("version", "1.2.3")

	rendered := tbl.String()
	assert.Contains(t, rendered, "FIELD")
	assert.Contains(t, rendered, "basicexample")
	assert.Contains(t, rendered, "1.2.3")
}
