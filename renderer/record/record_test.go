package record

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/quizpress/layout"
)

func TestFixedRecorder(t *testing.T) {
	r := NewFixed(2)
	assert.Equal(t, 10.0, r.MeasureTextWidth("héllo"))

	require.NoError(t, r.SetFont(layout.Font{Size: 5, Bold: true}))
	require.NoError(t, r.DrawText(1, 2, "first"))
	require.NoError(t, r.StartNewPage())
	require.NoError(t, r.DrawText(3, 4, "second"))

	pages := r.Pages()
	require.Len(t, pages, 2)
	assert.Equal(t, Text{X: 1, Y: 2, Content: "first", Font: layout.Font{Size: 5, Bold: true}}, pages[0].Texts[0])
	assert.Equal(t, 2, pages[1].Number)
	assert.Equal(t, []string{"first", "second"}, r.AllLines())
	assert.Equal(t, "first\nsecond", r.String())
	assert.Nil(t, r.Lines(3))
}

type stubSurface struct {
	draws, pages int
	font         layout.Font
	fail         error
}

func (s *stubSurface) DrawText(x, y float64, text string) error {
	if s.fail != nil {
		return s.fail
	}
	s.draws++
	return nil
}

func (s *stubSurface) MeasureTextWidth(text string) float64 { return 42 }

func (s *stubSurface) StartNewPage() error {
	s.pages++
	return s.fail
}

func (s *stubSurface) SetFont(font layout.Font) error {
	s.font = font
	return nil
}

func TestWrappingRecorderForwards(t *testing.T) {
	inner := &stubSurface{}
	r := New(inner)

	assert.Equal(t, 42.0, r.MeasureTextWidth("x"))
	require.NoError(t, r.SetFont(layout.Font{Size: 3}))
	require.NoError(t, r.DrawText(0, 0, "a"))
	require.NoError(t, r.StartNewPage())

	assert.Equal(t, 1, inner.draws)
	assert.Equal(t, 1, inner.pages)
	assert.Equal(t, 3.0, inner.font.Size)
	assert.Len(t, r.Pages(), 2)
}

func TestWrappingRecorderKeepsInnerErrors(t *testing.T) {
	boom := errors.New("boom")
	r := New(&stubSurface{fail: boom})

	assert.ErrorIs(t, r.DrawText(0, 0, "a"), boom)
	assert.ErrorIs(t, r.StartNewPage(), boom)
	assert.Empty(t, r.AllLines())
	assert.Len(t, r.Pages(), 1)
}

func TestWriteDebugJSON(t *testing.T) {
	r := NewFixed(1)
	require.NoError(t, r.DrawText(20, 20, "1. Question"))

	path := filepath.Join(t.TempDir(), "layout.json")
	require.NoError(t, r.WriteDebugJSON(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		Pages []Page `json:"pages"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Pages, 1)
	assert.Equal(t, "1. Question", decoded.Pages[0].Texts[0].Content)
}
