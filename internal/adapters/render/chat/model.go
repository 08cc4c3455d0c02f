package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/harvestguru/hg-cli/internal/application"
	"github.com/harvestguru/hg-cli/internal/domain"
)

type replyMsg struct {
	turn domain.Turn
}

type sendFailedMsg struct {
	err error
}

// Model is the interactive chat view. All transcript state lives in
// the application.ChatSession; the model only mirrors it for display.
type Model struct {
	session *application.ChatSession
	ctx     context.Context

	input         textinput.Model
	spin          spinner.Model
	styles        styles
	notice        string
	quickIndex    int
	width         int
	quitting      bool
	waitingOnSend bool
}

func NewModel(ctx context.Context, session *application.ChatSession) Model {
	in := textinput.New()
	in.Placeholder = "Ask about crops, weather, irrigation..."
	in.Prompt = "You> "
	in.Focus()
	in.Width = 60

	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return Model{
		session: session,
		ctx:     ctx,
		input:   in,
		spin:    s,
		styles:  newStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return m.spin.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if w := msg.Width - 2; w > 10 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit

		case "ctrl+l":
			m.cycleLanguage()
			return m, nil

		case "tab":
			if question, ok := m.session.PrefillQuickQuestion(m.quickIndex); ok {
				m.input.SetValue(question)
				m.input.CursorEnd()
				m.quickIndex = (m.quickIndex + 1) % len(application.QuickQuestions)
			}
			return m, nil

		case "enter":
			return m.handleSend()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case replyMsg:
		m.waitingOnSend = false
		m.notice = ""
		return m, nil

	case sendFailedMsg:
		m.waitingOnSend = false
		m.notice = m.styles.errorText.Render(fmt.Sprintf("Send failed: %v", msg.err))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.session.SetPendingInput(m.input.Value())
	return m, cmd
}

func (m Model) handleSend() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.session.Busy() {
		m.notice = m.styles.faint.Render("Still waiting on the assistant...")
		return m, nil
	}

	m.input.SetValue("")
	m.waitingOnSend = true
	m.notice = ""

	session := m.session
	ctx := m.ctx
	send := func() tea.Msg {
		turn, err := session.Send(ctx, text)
		if err != nil {
			return sendFailedMsg{err: err}
		}
		return replyMsg{turn: turn}
	}

	return m, tea.Batch(send, m.spin.Tick)
}

func (m *Model) cycleLanguage() {
	languages := domain.Languages()
	current := m.session.Language()
	for i, language := range languages {
		if language == current {
			_ = m.session.SetLanguage(languages[(i+1)%len(languages)])
			return
		}
	}
	_ = m.session.SetLanguage(languages[0])
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("HarvestGuru assistant"))
	b.WriteString("  ")
	b.WriteString(m.styles.language.Render(fmt.Sprintf("[%s]", m.session.Language())))
	b.WriteString("\n\n")

	for _, turn := range m.session.Transcript() {
		b.WriteString(renderTurn(turn, m.styles))
		b.WriteString("\n")
	}

	if m.waitingOnSend {
		b.WriteString(m.styles.assistant.Render("Assistant:") + " " + m.spin.View() + m.styles.faint.Render("thinking..."))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	if m.notice != "" {
		b.WriteString(m.notice)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.faint.Render("enter: send · tab: quick question · ctrl+l: language · esc: quit"))

	return b.String()
}

func renderTurn(turn domain.Turn, s styles) string {
	var b strings.Builder
	switch turn.Speaker {
	case domain.SpeakerUser:
		b.WriteString(s.user.Render("You:") + " " + turn.Text)
	case domain.SpeakerAssistant:
		b.WriteString(s.assistant.Render("Assistant:") + " " + turn.Text)
		for _, recommendation := range turn.Recommendations {
			b.WriteString("\n" + s.faint.Render("  • "+recommendation))
		}
	}
	b.WriteString("\n")

	return b.String()
}
