package sped

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriter_DelimiterBounding(t *testing.T) {
	w := NewWriter()
	w.Write("0000", "LECD", "9.0")
	w.Write("0001", "0")

	lines := strings.Split(strings.TrimRight(w.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "|0000|LECD|9.0|", lines[0])
	assert.Equal(t, "|0001|0|", lines[1])
}

func TestWriter_BlockCloseCountsOpenerAndCloser(t *testing.T) {
	w := NewWriter()
	w.Write("0000", "x")
	w.Write("0001", "0")
	w.WriteBlockClose("0990")

	lines := strings.Split(strings.TrimRight(w.String(), "\n"), "\n")
	// 0000 + 0001 + 0990 itself
	assert.Equal(t, "|0990|3|", lines[2])
}

func TestWriter_TrailerSelfDescribes(t *testing.T) {
	w := NewWriter()
	w.Write("0000", "x")
	w.Write("0001", "0")
	w.WriteBlockClose("0990")
	w.Write("9001", "0")
	w.WriteTrailer()

	content := w.String()
	result := Validate(content)
	assert.True(t, result.IsValid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)

	// 9999 carries the grand total including itself
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	last := lines[len(lines)-1]
	assert.True(t, strings.HasPrefix(last, "|9999|"))
}

func TestWriter_CountersNeverRecomputed(t *testing.T) {
	w := NewWriter()
	for i := 0; i < 50; i++ {
		w.Write("I155", "1.1.01", "0,00", "0,00", "0,00", "D")
	}
	assert.Equal(t, 50, w.TotalLines())
}
