package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sevigo/snippet-review/internal/core"
	"github.com/sevigo/snippet-review/internal/render"
)

const (
	editorHeight = 10
	maxCodeChars = 200000
)

const helpText = `Paste or type code in the editor, then press ctrl+s to submit it for review.

  ctrl+s        Submit the editor contents (or run a command)
  ctrl+l        Clear the editor
  pgup/pgdown   Scroll the review history
  esc, ctrl+c   Quit

Commands (type in the editor, then ctrl+s):
  /show [id]    Show a stored snippet and its reviews
  /help         Show this help message
  /clear        Clear the review history
  /quit         Exit`

type model struct {
	styles   styles
	palette  ThemePalette
	client   reviewClient
	server   string
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model
	width    int

	isLoading bool
	connected bool
	history   []string
	submitted int
	degraded  int
}

func initialModel(c reviewClient, serverURL string, theme ThemeName) *model {
	palette := PaletteFor(theme)
	styles := newStylesFromPalette(palette)

	ta := textarea.New()
	ta.Placeholder = "Paste code here..."
	ta.Focus()
	ta.CharLimit = maxCodeChars
	ta.SetWidth(80)
	ta.SetHeight(editorHeight)
	ta.ShowLineNumbers = true

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = lipgloss.NewStyle().Foreground(palette.Primary)

	vp := viewport.New(80, 20)

	return &model{
		styles:    styles,
		palette:   palette,
		client:    c,
		server:    serverURL,
		viewport:  vp,
		textarea:  ta,
		spinner:   sp,
		width:     80,
		isLoading: true,
		history:   []string{styles.title.Render("SNIPPET REVIEW"), "", styles.label.Render("Connecting to " + serverURL + "...")},
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, pingServerCmd(m.client), m.spinner.Tick)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlS:
			if m.isLoading {
				return m, nil
			}
			input := m.textarea.Value()
			if strings.TrimSpace(input) == "" {
				return m, nil
			}
			return m, m.processInput(input)
		case tea.KeyCtrlL:
			m.textarea.Reset()
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case serverReadyMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendHistory("", m.styles.error.Render("⚠ server unreachable: "+msg.err.Error()),
				m.styles.status.Render("Submissions will fail until the server is up."))
			return m, nil
		}
		m.connected = true
		m.appendHistory(m.styles.success.Render("✓ "+msg.greeting), m.styles.status.Render("Type /help for usage."))
		return m, nil

	case reviewCompleteMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendHistory("", m.styles.error.Render("✗ review failed: "+msg.err.Error()))
			return m, nil
		}
		m.connected = true
		m.submitted++
		m.textarea.Reset()
		m.appendHistory("", m.renderReview(msg.resp.SnippetID, msg.resp.ReviewID, msg.resp.Status, msg.resp.Feedback))
		if msg.resp.Status == core.StatusDegraded {
			m.degraded++
		}
		return m, nil

	case snippetLoadedMsg:
		m.isLoading = false
		if msg.err != nil {
			m.appendHistory("", m.styles.error.Render("✗ "+msg.err.Error()))
			return m, nil
		}
		m.appendHistory("", m.renderSnippet(msg.detail))
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = max(msg.Height-editorHeight-8, 3)
		m.textarea.SetWidth(msg.Width - 6)
		m.refresh()
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	cmds = append(cmds, cmd)
	m.spinner, cmd = m.spinner.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *model) View() string {
	statusParts := []string{"SERVER: " + m.server}
	if m.connected {
		statusParts = append(statusParts, m.styles.success.Render("● ONLINE"))
	} else {
		statusParts = append(statusParts, m.styles.status.Render("○ OFFLINE"))
	}
	statusParts = append(statusParts, fmt.Sprintf("REVIEWS: %d", m.submitted))
	if m.degraded > 0 {
		statusParts = append(statusParts, m.styles.degraded.Render(fmt.Sprintf("DEGRADED: %d", m.degraded)))
	}
	status := m.styles.status.Render(strings.Join(statusParts, " │ "))

	var loadingIndicator string
	if m.isLoading {
		loadingIndicator = m.spinner.View() + " " + m.styles.success.Render("REVIEWING...")
	}

	return m.styles.app.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			m.styles.history.Render(m.viewport.View()),
			m.styles.editor.Render(m.textarea.View()),
			loadingIndicator,
			status,
		),
	)
}

// processInput treats a single line starting with "/" as a command and
// anything else as code to review.
func (m *model) processInput(input string) tea.Cmd {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "/") && !strings.Contains(trimmed, "\n") {
		return m.runCommand(trimmed)
	}

	m.isLoading = true
	lines := strings.Count(input, "\n") + 1
	m.appendHistory("", m.styles.label.Render(fmt.Sprintf("→ submitting %d line(s) for review...", lines)))
	return tea.Batch(m.spinner.Tick, submitReviewCmd(m.client, input))
}

func (m *model) runCommand(input string) tea.Cmd {
	parts := strings.Fields(input)
	command, args := parts[0], parts[1:]
	m.textarea.Reset()
	m.appendHistory("", m.styles.prompt.Render("► ")+input)

	switch command {
	case "/show":
		if len(args) != 1 {
			m.appendHistory(m.styles.error.Render("USAGE: /show [id]"))
			return nil
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			m.appendHistory(m.styles.error.Render(fmt.Sprintf("invalid snippet id %q", args[0])))
			return nil
		}
		m.isLoading = true
		return tea.Batch(m.spinner.Tick, loadSnippetCmd(m.client, id))

	case "/help", "/h":
		m.appendHistory(helpText)
		return nil

	case "/clear":
		m.history = nil
		m.refresh()
		return nil

	case "/quit", "/exit":
		return tea.Quit

	default:
		m.appendHistory(m.styles.error.Render("UNKNOWN COMMAND: "+command), m.styles.status.Render("Type /help for assistance."))
		return nil
	}
}

func (m *model) renderReview(snippetID, reviewID int64, status core.OutcomeStatus, feedback string) string {
	header := m.styles.label.Render(fmt.Sprintf("snippet %d · review %d", snippetID, reviewID))
	if status == core.StatusDegraded {
		return header + "\n" + m.styles.degraded.Render(feedback)
	}
	return header + "\n" + render.Markdown(feedback, m.palette.Markdown, m.contentWidth())
}

func (m *model) renderSnippet(detail *core.SnippetDetail) string {
	var b strings.Builder
	b.WriteString(m.styles.success.Render(fmt.Sprintf("SNIPPET %d", detail.Snippet.ID)))
	b.WriteString("\n")
	b.WriteString(render.Markdown("```\n"+detail.Snippet.Code+"\n```", m.palette.Markdown, m.contentWidth()))
	if len(detail.Reviews) == 0 {
		b.WriteString("\n" + m.styles.status.Render("No reviews stored for this snippet."))
	}
	for _, r := range detail.Reviews {
		b.WriteString("\n\n")
		b.WriteString(m.renderReview(r.SnippetID, r.ID, r.Status, r.Feedback))
	}
	return b.String()
}

func (m *model) contentWidth() int {
	return max(m.width-8, 20)
}

func (m *model) appendHistory(lines ...string) {
	m.history = append(m.history, lines...)
	m.refresh()
}

func (m *model) refresh() {
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}
