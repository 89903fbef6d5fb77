package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"sift/internal/errs"
	"sift/internal/walker"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// maxCountedFiles bounds the welcome-screen file count on huge trees.
const maxCountedFiles = 10_000

type welcomeModel struct {
	spinner spinner.Model
	absRoot string
	files   int
	capped  bool
	err     error
	ready   bool // true once the check has completed
}

// checkRootMsg is sent after the search root has been inspected.
type checkRootMsg struct {
	absRoot string
	files   int
	capped  bool
	err     error
}

func newWelcomeModel() welcomeModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle
	return welcomeModel{spinner: sp}
}

func checkRoot(root string) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return checkRootMsg{err: errs.NotADirectory(root)}
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			abs = root
		}

		msg := checkRootMsg{absRoot: abs}
		walker.Walk(root, nil, func(walker.Candidate) error {
			msg.files++
			if msg.files >= maxCountedFiles {
				msg.capped = true
				return walker.ErrStop
			}
			return nil
		})
		return msg
	}
}

func (m welcomeModel) Update(msg tea.Msg) (welcomeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkRootMsg:
		m.ready = true
		m.absRoot = msg.absRoot
		m.files = msg.files
		m.capped = msg.capped
		m.err = msg.err
		return m, nil
	case spinner.TickMsg:
		if m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m welcomeModel) View(width, height int) string {
	title := titleStyle.Render("sift")
	subtitle := subtitleStyle.Render("grep, glob and read over a local directory tree")

	var body string
	switch {
	case !m.ready:
		body = m.spinner.View() + " Scanning search root..."
	case m.err != nil:
		body = errorStyle.Render(m.err.Error()) + "\n\n" + helpStyle.Render("Press q to quit.")
	default:
		count := fmt.Sprintf("%d files", m.files)
		if m.capped {
			count = fmt.Sprintf("%d+ files", m.files)
		}
		body = successStyle.Render("Root: ") + m.absRoot + "\n" +
			dimStyle.Render(count+" (excluding .git, node_modules, .venv, venv)") + "\n\n" +
			helpStyle.Render("Press Enter to start searching, q to quit.")
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, subtitle, "", body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
