// Package picker 提供终端内的测验文件选择器，替代桌面程序的打开文件对话框。
package picker

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled 表示用户未选择文件即退出。
var ErrCancelled = errors.New("已取消选择")

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Model 包装 bubbles/filepicker，选中允许的文件后退出。
type Model struct {
	fp        filepicker.Model
	selected  string
	cancelled bool
	warning   string
}

// New 创建从 dir 开始浏览、只允许选择 allowed 扩展名的选择器。
func New(dir string, allowed []string) Model {
	fp := filepicker.New()
	fp.CurrentDirectory = dir
	fp.AllowedTypes = allowed
	fp.ShowPermissions = false
	return Model{fp: fp}
}

func (m Model) Init() tea.Cmd { return m.fp.Init() }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "q":
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.fp, cmd = m.fp.Update(msg)
	if ok, path := m.fp.DidSelectFile(msg); ok {
		m.selected = path
		return m, tea.Quit
	}
	if ok, path := m.fp.DidSelectDisabledFile(msg); ok {
		m.warning = fmt.Sprintf("%s 不是测验文件（%s）", filepath.Base(path), strings.Join(m.fp.AllowedTypes, " "))
		return m, cmd
	}
	if _, ok := msg.(tea.KeyMsg); ok {
		m.warning = ""
	}
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("选择测验文件"))
	b.WriteString("  ")
	b.WriteString(hintStyle.Render(m.fp.CurrentDirectory))
	b.WriteString("\n\n")
	b.WriteString(m.fp.View())
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(warnStyle.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render("enter 选择 · h/l 进出目录 · q 退出"))
	return b.String()
}

// Selected 返回已选中的文件路径。
func (m Model) Selected() (string, bool) { return m.selected, m.selected != "" }

// Warning 返回最近一次提示。
func (m Model) Warning() string { return m.warning }

// Run 运行选择器直到选中文件或退出。in/out 为 nil 时使用终端。
func Run(dir string, allowed []string, in io.Reader, out io.Writer) (string, error) {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	final, err := tea.NewProgram(New(dir, allowed), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("运行文件选择器失败: %w", err)
	}
	m, ok := final.(Model)
	if !ok || m.cancelled {
		return "", ErrCancelled
	}
	path, ok := m.Selected()
	if !ok {
		return "", ErrCancelled
	}
	return path, nil
}
