package picker

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loaded(t *testing.T, files ...string) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	for _, name := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("{}"), 0o644))
	}
	m := New(dir, []string{".json", ".quiz"})
	msg := m.Init()()
	next, _ := m.Update(msg)
	return next.(Model), dir
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestSelectAllowedFile(t *testing.T) {
	m, dir := loaded(t, "a.quiz", "b.txt")

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	path, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "a.quiz"), path)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestSelectDisabledFileWarns(t *testing.T) {
	m, _ := loaded(t, "a.quiz", "b.txt")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, m.Warning(), "b.txt")
	assert.Contains(t, m.View(), "b.txt 不是测验文件")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Empty(t, m.Warning())
}

func TestQuitCancels(t *testing.T) {
	m, _ := loaded(t, "a.json")
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.True(t, m.cancelled)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}
