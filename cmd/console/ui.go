package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
)

var (
	narrationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	playerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	issueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
)

type narrationChunkMsg string
type turnDoneMsg struct{ issues []string }
type eventsClosedMsg struct{}
type errMsg struct{ err error }

type model struct {
	client *apiClient
	gameID uuid.UUID
	ctx    context.Context

	events <-chan sseEvent

	viewport   viewport.Model
	input      textinput.Model
	spin       spinner.Model
	transcript strings.Builder
	width      int
	streaming  bool
	statusMsg  string
	err        error
}

func newModel(ctx context.Context, client *apiClient, gameID uuid.UUID, events <-chan sseEvent) model {
	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Focus()
	ti.CharLimit = 400

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	vp := viewport.New(80, 20)

	return model{
		client:   client,
		gameID:   gameID,
		ctx:      ctx,
		events:   events,
		viewport: vp,
		input:    ti,
		spin:     sp,
		width:    80,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.waitForEvent(), m.spin.Tick, textinput.Blink)
}

// waitForEvent delivers the next SSE event as a tea message.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return eventsClosedMsg{}
		}
		switch ev.Type {
		case "narration.chunk":
			if content, ok := ev.Data["content"].(string); ok {
				return narrationChunkMsg(content)
			}
		case "turn.completed":
			var issues []string
			if raw, ok := ev.Data["validation_issues"].([]any); ok {
				for _, v := range raw {
					if s, ok := v.(string); ok {
						issues = append(issues, s)
					}
				}
			}
			return turnDoneMsg{issues: issues}
		case "turn.failed":
			if msg, ok := ev.Data["error"].(string); ok {
				return errMsg{err: fmt.Errorf("%s", msg)}
			}
		}
		// Uninteresting event; keep listening.
		return skipEventMsg{}
	}
}

type skipEventMsg struct{}

func (m model) submitTurn(message string) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.client.playTurn(m.ctx, m.gameID, message); err != nil {
			return errMsg{err: err}
		}
		// Completion arrives over the events stream.
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - 5
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "ctrl+y":
			if err := clipboard.WriteAll(m.gameID.String()); err == nil {
				m.statusMsg = "session id copied"
			}
			return m, nil
		case "enter":
			message := strings.TrimSpace(m.input.Value())
			if message == "" || m.streaming {
				return m, nil
			}
			m.input.Reset()
			m.streaming = true
			m.statusMsg = ""
			m.err = nil
			m.transcript.WriteString("\n\n" + playerStyle.Render("> "+message) + "\n\n")
			m.refreshViewport()
			return m, m.submitTurn(message)
		}

	case narrationChunkMsg:
		m.transcript.WriteString(string(msg))
		m.refreshViewport()
		return m, m.waitForEvent()

	case turnDoneMsg:
		m.streaming = false
		if len(msg.issues) > 0 {
			m.statusMsg = issueStyle.Render(fmt.Sprintf("%d validation issue(s) this turn", len(msg.issues)))
		}
		return m, m.waitForEvent()

	case skipEventMsg:
		return m, m.waitForEvent()

	case eventsClosedMsg:
		m.err = fmt.Errorf("event stream closed")
		return m, nil

	case errMsg:
		m.streaming = false
		m.err = msg.err
		return m, m.waitForEvent()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *model) refreshViewport() {
	wrapped := wordwrap.String(narrationStyle.Render(m.transcript.String()), m.width)
	m.viewport.SetContent(wrapped)
	m.viewport.GotoBottom()
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("fablestream") + statusStyle.Render("  ("+m.gameID.String()+", ctrl+y to copy)") + "\n")
	b.WriteString(m.viewport.View() + "\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: "+m.err.Error()) + "\n")
	} else if m.streaming {
		b.WriteString(m.spin.View() + statusStyle.Render(" the story unfolds...") + "\n")
	} else if m.statusMsg != "" {
		b.WriteString(m.statusMsg + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	return b.String()
}
