package render

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text unchanged", "Abbey Road", "Abbey Road"},
		{"control chars removed", "Abbey\x07 Road\x1b", "Abbey Road"},
		{"nbsp becomes space", "Abbey\u00a0Road", "Abbey Road"},
		{"tab kept", "a\tb", "a\tb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", Truncate("hello", 10))
	assert.Equal(t, "hel…", Truncate("hello world", 4))
	assert.Empty(t, Truncate("hello", 0))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", Pad("ab", 5))
	assert.Equal(t, "abcdef", Pad("abcdef", 3))
}

func TestRow(t *testing.T) {
	row := Row("left", "right", 20)
	assert.Equal(t, 20, lipgloss.Width(row))
	assert.Equal(t, "left"+"           "+"right", row)

	narrow := Row("a long left side", "right", 12)
	assert.Equal(t, 12, lipgloss.Width(narrow))
}
