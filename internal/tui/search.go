package tui

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"sift/internal/store"
	"sift/internal/tools"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const helpText = `Type a regular expression and press Enter to grep the root.
Commands:
  /include <glob>   only search files matching glob (empty clears)
  /glob <pattern>   find files by name, e.g. **/*.{go,md}
  /read <file> [n]  show a file from line n (0-based)
  /history          show recent calls (needs --history)
  /clear            clear the screen
  /exit             quit`

type blockKind int

const (
	blockQuery blockKind = iota
	blockGrep
	blockPlain
	blockMarkdown
	blockError
	blockSystem
)

type block struct {
	kind    blockKind
	content string
}

// resultMsg is sent when a grep, glob, read or history call completes.
type resultMsg struct {
	kind   blockKind
	body   string
	status string
	err    error
}

type searchModel struct {
	viewport    viewport.Model
	input       textinput.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer
	cfg         Config
	include     string
	blocks      []block
	status      string
	busy        bool
	width       int
	height      int
	initialized bool
}

func newSearchModel(cfg Config) searchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = selectedStyle

	ti := textinput.New()
	ti.Placeholder = "Regular expression, or /help"
	ti.CharLimit = 2000
	ti.Focus()

	return searchModel{
		spinner: sp,
		input:   ti,
		cfg:     cfg,
		status:  "idle",
	}
}

func (m *searchModel) initViewport(width, height int) {
	m.width = width
	m.height = height

	// Layout: viewport + status bar (1 line) + input (1 line) + gap (1 line).
	vpHeight := height - 3
	if vpHeight < 5 {
		vpHeight = 5
	}
	m.viewport = viewport.New(width, vpHeight)
	m.viewport.SetContent(dimStyle.Render("Searching " + m.cfg.Root + ". Type a pattern and press Enter.\n\n" + helpText))

	m.input.Width = width - 4

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err == nil {
		m.renderer = r
	}

	m.initialized = true
}

func runGrep(svc *tools.Service, p tools.SearchParams) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.Search(p)
		if err != nil {
			return resultMsg{err: err}
		}
		status := fmt.Sprintf("%d matches", resp.Count)
		if resp.Truncated {
			status += " (truncated)"
		}
		return resultMsg{kind: blockGrep, body: resp.Output, status: status}
	}
}

func runGlob(svc *tools.Service, p tools.GlobParams) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.Glob(p)
		if err != nil {
			return resultMsg{err: err}
		}
		status := fmt.Sprintf("%d files", resp.Count)
		if resp.Truncated {
			status += " (truncated)"
		}
		return resultMsg{kind: blockPlain, body: resp.Output, status: status}
	}
}

func runRead(svc *tools.Service, p tools.ReadParams) tea.Cmd {
	return func() tea.Msg {
		resp, err := svc.Read(p)
		if err != nil {
			return resultMsg{err: err}
		}
		status := fmt.Sprintf("lines %d-%d of %d", resp.Offset+1, resp.Offset+resp.LinesReturned, resp.TotalLines)
		if resp.LinesReturned == 0 {
			status = fmt.Sprintf("no lines past %d (file has %d)", resp.Offset, resp.TotalLines)
		}
		return resultMsg{kind: blockMarkdown, body: codeFence(resp.Path, resp.Content), status: status}
	}
}

func listHistory(h store.History) tea.Cmd {
	return func() tea.Msg {
		if h == nil {
			return resultMsg{err: fmt.Errorf("history is disabled; start sift with --history <file>")}
		}
		entries, err := h.Recent(10)
		if err != nil {
			return resultMsg{err: fmt.Errorf("read history: %w", err)}
		}
		if len(entries) == 0 {
			return resultMsg{kind: blockSystem, body: "No history recorded yet.", status: "history"}
		}
		var sb strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sb, "%s  %-4s  %s  (%d)\n", e.CreatedAt.Local().Format("01-02 15:04"), e.Kind, e.Pattern, e.Count)
		}
		return resultMsg{kind: blockPlain, body: strings.TrimRight(sb.String(), "\n"), status: "history"}
	}
}

// codeFence wraps content in a markdown code block tagged with the file's
// extension so glamour can highlight it.
func codeFence(path, content string) string {
	lang := strings.TrimPrefix(filepath.Ext(path), ".")
	return fmt.Sprintf("**%s**\n\n```%s\n%s\n```", path, lang, strings.TrimRight(content, "\n"))
}

// command turns one line of input into the call it names.
func (m *searchModel) command(line string) tea.Cmd {
	if !strings.HasPrefix(line, "/") {
		return runGrep(m.cfg.Service, tools.SearchParams{
			Pattern: line,
			Path:    m.cfg.Root,
			Include: m.include,
			Limit:   m.cfg.GrepLimit,
		})
	}

	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch name {
	case "/glob":
		return runGlob(m.cfg.Service, tools.GlobParams{Pattern: arg, Path: m.cfg.Root, Limit: m.cfg.GlobLimit})
	case "/read":
		fields := strings.Fields(arg)
		p := tools.ReadParams{Limit: m.cfg.ReadLimit}
		if len(fields) > 0 {
			p.Path = fields[0]
			if !filepath.IsAbs(p.Path) {
				p.Path = filepath.Join(m.cfg.Root, p.Path)
			}
		}
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil {
				return func() tea.Msg { return resultMsg{err: fmt.Errorf("offset must be a number: %q", fields[1])} }
			}
			p.Offset = n
		}
		return runRead(m.cfg.Service, p)
	case "/history":
		return listHistory(m.cfg.Service.History)
	}
	return func() tea.Msg {
		return resultMsg{err: fmt.Errorf("unknown command %s, try /help", name)}
	}
}

func (m searchModel) Update(msg tea.Msg) (searchModel, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.initViewport(msg.Width, msg.Height)
		m.refresh()
		return m, nil

	case resultMsg:
		m.busy = false
		if msg.err != nil {
			m.blocks = append(m.blocks, block{kind: blockError, content: msg.err.Error()})
			m.status = "error"
		} else {
			m.blocks = append(m.blocks, block{kind: msg.kind, content: msg.body})
			m.status = msg.status
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			m.refresh()
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		if msg.Type == tea.KeyEnter {
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.Reset()

			switch {
			case line == "/exit" || line == "/quit":
				return m, tea.Quit
			case line == "/clear":
				m.blocks = nil
				m.status = "idle"
				m.viewport.SetContent(dimStyle.Render("Cleared."))
				return m, nil
			case line == "/help":
				m.blocks = append(m.blocks, block{kind: blockSystem, content: helpText})
				m.refresh()
				return m, nil
			case line == "/include" || strings.HasPrefix(line, "/include "):
				m.include = strings.TrimSpace(strings.TrimPrefix(line, "/include"))
				note := "Include filter cleared."
				if m.include != "" {
					note = "Only searching files matching " + m.include
				}
				m.blocks = append(m.blocks, block{kind: blockSystem, content: note})
				m.refresh()
				return m, nil
			}

			m.blocks = append(m.blocks, block{kind: blockQuery, content: line})
			m.busy = true
			m.status = "searching..."
			m.refresh()
			return m, tea.Batch(m.spinner.Tick, m.command(line))
		}
	}

	if !m.busy {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *searchModel) refresh() {
	m.viewport.SetContent(m.render())
	m.viewport.GotoBottom()
}

func (m searchModel) renderMarkdown(content string) string {
	if m.renderer == nil {
		return content
	}
	rendered, err := m.renderer.Render(content)
	if err != nil {
		return content
	}
	return strings.TrimRight(rendered, "\n")
}

// renderGrep highlights file headers in a grep report.
func renderGrep(output string) string {
	lines := strings.Split(output, "\n")
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = successStyle.Render(l)
		case strings.HasPrefix(l, "  Line "):
			num, text, _ := strings.Cut(strings.TrimPrefix(l, "  "), ": ")
			lines[i] = "  " + dimStyle.Render(num+":") + " " + text
		case strings.HasPrefix(l, "(Results are truncated"):
			lines[i] = warnStyle.Render(l)
		case strings.HasSuffix(l, ":"):
			lines[i] = fileStyle.Render(l)
		}
	}
	return strings.Join(lines, "\n")
}

func (m searchModel) render() string {
	var sb strings.Builder
	for _, b := range m.blocks {
		switch b.kind {
		case blockQuery:
			sb.WriteString(queryStyle.Render("> ") + b.content + "\n\n")
		case blockGrep:
			sb.WriteString(renderGrep(b.content) + "\n\n")
		case blockPlain:
			sb.WriteString(b.content + "\n\n")
		case blockMarkdown:
			sb.WriteString(m.renderMarkdown(b.content) + "\n\n")
		case blockError:
			sb.WriteString(errorStyle.Render("Error: "+b.content) + "\n\n")
		case blockSystem:
			sb.WriteString(dimStyle.Render(b.content) + "\n\n")
		}
	}
	if m.busy {
		sb.WriteString(m.spinner.View() + " " + dimStyle.Render("Searching...") + "\n")
	}
	return sb.String()
}

func (m searchModel) View(width, height int) string {
	if !m.initialized {
		return ""
	}

	status := m.status
	if m.include != "" {
		status += " • include " + m.include
	}
	statusBar := statusBarStyle.
		Width(m.width).
		Render(fmt.Sprintf(" sift %s • %s", m.cfg.Root, status))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewport.View(),
		statusBar,
		m.input.View(),
	)
}
