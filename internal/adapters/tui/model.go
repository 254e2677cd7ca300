package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/karimelsayed/ragkb/internal/core/domain"
	"github.com/karimelsayed/ragkb/internal/core/ports"
)

// Model is the Bubble Tea model for the interactive question session. The
// answer language is session state, switched with "lang ar" / "lang en".
type Model struct {
	answerer ports.QuestionAnswerer
	input    textinput.Model
	viewport viewport.Model

	language   domain.Language
	transcript []string
	status     string
	ready      bool
}

func New(answerer ports.QuestionAnswerer) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or: lang ar, lang en, quit"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		answerer: answerer,
		input:    ti,
		viewport: vp,
		language: domain.LanguageEnglish,
		status:   "Knowledge base ready. Language: en.",
	}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, fh := transcriptBoxStyle.GetFrameSize()
		_, qh := inputBoxStyle.GetFrameSize()
		vh := msg.Height - qh - fh - 3
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = maxInt(20, msg.Width-2)
		m.viewport.Height = vh
		m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.String() == "enter" {
			return m.submit()
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	if line == "" {
		return m, nil
	}
	m.input.SetValue("")

	switch strings.ToLower(line) {
	case "quit", "exit":
		return m, tea.Quit
	case "lang ar":
		m.language = domain.LanguageArabic
		m.status = "Language: ar."
		return m, nil
	case "lang en":
		m.language = domain.LanguageEnglish
		m.status = "Language: en."
		return m, nil
	}

	m.status = "Thinking..."
	result, err := m.answerer.Answer(context.Background(), line, m.language, 0)
	if err != nil {
		m.status = "Error: " + err.Error()
		return m, nil
	}

	m.transcript = append(m.transcript, renderExchange(line, result))
	m.status = fmt.Sprintf("Answered in %.2fs (%d attempt(s)). Language: %s.",
		result.ProcessingTime.Seconds(), result.Attempts, m.language)
	m.viewport.SetContent(strings.Join(m.transcript, "\n\n"))
	m.viewport.GotoBottom()
	return m, nil
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Knowledge Base Chat")
	transcript := transcriptBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + transcript + "\n" + input + "\n" + status
}

func renderExchange(question string, result *domain.QueryResult) string {
	var b strings.Builder
	b.WriteString(questionStyle.Render("Q: " + question))
	b.WriteString("\n")
	b.WriteString(result.Answer)
	if len(result.SourceFiles) > 0 {
		b.WriteString("\n")
		b.WriteString(sourceStyle.Render("Sources: " + strings.Join(result.SourceFiles, ", ")))
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
