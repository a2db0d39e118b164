package layout

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func runeWidth(s string) float64 { return float64(utf8.RuneCountInString(s)) }

func TestWrapBreaksAtWhitespace(t *testing.T) {
	lines := Wrap("hello world again", 11, runeWidth)
	assert.Equal(t, []string{"hello world", "again"}, lines)
}

func TestWrapKeepsLongWordWhole(t *testing.T) {
	lines := Wrap("a supercalifragilistic b", 5, runeWidth)
	assert.Equal(t, []string{"a", "supercalifragilistic", "b"}, lines)
}

func TestWrapHonorsNewlines(t *testing.T) {
	lines := Wrap("foo\r\n\nbar", 100, runeWidth)
	assert.Equal(t, []string{"foo", "", "bar"}, lines)
}

func TestWrapUnlimitedWidth(t *testing.T) {
	lines := Wrap("  many   spaced    words ", 0, runeWidth)
	assert.Equal(t, []string{"many spaced words"}, lines)
}

func TestWrapEmpty(t *testing.T) {
	assert.Equal(t, []string{""}, Wrap("", 10, runeWidth))
}

func TestWrapPreservesEveryWord(t *testing.T) {
	text := "Which transport protocol provides reliable, connection-oriented delivery between two hosts?"
	for width := 1.0; width <= 40; width++ {
		lines := Wrap(text, width, runeWidth)
		assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")), "width=%g", width)
		for _, line := range lines {
			if runeWidth(line) > width {
				assert.NotContains(t, line, " ", "只有单个超长单词允许溢出: %q", line)
			}
		}
	}
}

// 已折好的行以相同宽度再次折行，不应产生新的断行。
func TestWrapIdempotent(t *testing.T) {
	texts := []string{
		"Which OSI layer is responsible for routing?",
		"Routing happens at the OSI Network layer (Layer 3).",
		"x yy zzz wwww vvvvv uuuuuu ttttttt",
		"pneumonoultramicroscopicsilicovolcanoconiosis is long",
		"first paragraph\nsecond paragraph with more words",
	}
	for _, text := range texts {
		for width := 3.0; width <= 30; width += 3 {
			once := Wrap(text, width, runeWidth)
			var twice []string
			for _, line := range once {
				twice = append(twice, Wrap(line, width, runeWidth)...)
			}
			assert.Equal(t, once, twice, "text=%q width=%g", text, width)
		}
	}
}
