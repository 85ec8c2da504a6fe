package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	questionMark  = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true).Render("?")
	labelStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	answerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
)

func question(label string) string {
	return questionMark + " " + labelStyle.Render(label) + " "
}

// selectModel is a vertical list navigated with arrows or j/k.
type selectModel struct {
	label   string
	options []string
	cursor  int
	done    bool
	abort   bool
}

func newSelectModel(label string, options []string) selectModel {
	return selectModel{label: label, options: options}
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "ctrl+c", "esc":
		m.abort = true
		return m, tea.Quit
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.options)) % len(m.options)
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.options)
	case "enter":
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) View() string {
	if m.abort {
		return ""
	}
	if m.done {
		return question(m.label) + answerStyle.Render(m.options[m.cursor]) + "\n"
	}
	var sb strings.Builder
	sb.WriteString(question(m.label) + hintStyle.Render("(use arrow keys)") + "\n")
	for i, opt := range m.options {
		if i == m.cursor {
			sb.WriteString(cursorStyle.Render("❯ ") + selectedStyle.Render(opt) + "\n")
		} else {
			sb.WriteString("  " + opt + "\n")
		}
	}
	return sb.String()
}

func (m selectModel) aborted() bool { return m.abort }

// textModel reads a single line, optionally masked.
type textModel struct {
	label  string
	input  textinput.Model
	secret bool
	done   bool
	abort  bool
}

func newTextModel(label string, secret bool) textModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 0
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '*'
	}
	ti.Focus()
	return textModel{label: label, input: ti, secret: secret}
}

func (m textModel) Init() tea.Cmd { return textinput.Blink }

func (m textModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.abort = true
			return m, tea.Quit
		case "enter":
			m.done = true
			m.input.Blur()
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textModel) View() string {
	if m.abort {
		return ""
	}
	if m.done {
		answer := m.input.Value()
		if m.secret {
			answer = strings.Repeat("*", len([]rune(answer)))
		}
		return question(m.label) + answerStyle.Render(answer) + "\n"
	}
	return question(m.label) + m.input.View() + "\n"
}

func (m textModel) aborted() bool { return m.abort }

// confirmModel answers y/n; enter keeps the default of no.
type confirmModel struct {
	label string
	yes   bool
	done  bool
	abort bool
}

func newConfirmModel(label string) confirmModel {
	return confirmModel{label: label}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch strings.ToLower(key.String()) {
	case "ctrl+c", "esc":
		m.abort = true
		return m, tea.Quit
	case "y":
		m.yes = true
		m.done = true
		return m, tea.Quit
	case "n", "enter":
		m.yes = false
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.abort {
		return ""
	}
	if m.done {
		answer := "No"
		if m.yes {
			answer = "Yes"
		}
		return question(m.label) + answerStyle.Render(answer) + "\n"
	}
	return question(m.label) + hintStyle.Render("(y/N)") + "\n"
}

func (m confirmModel) aborted() bool { return m.abort }
