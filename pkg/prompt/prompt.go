// Package prompt implements the blocking select, input, secret and confirm
// widgets the conversation loop asks the user with.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var (
	// ErrAborted is returned when the user presses ctrl+c or esc.
	ErrAborted = errors.New("prompt aborted")
	// ErrNotTerminal is returned when stdin cannot be used interactively.
	ErrNotTerminal = errors.New("stdin is not an interactive terminal")
)

// Terminal implements conversation.Prompter with bubbletea programs.
type Terminal struct {
	in  io.Reader
	out io.Writer
}

// NewTerminal returns prompts bound to the process's stdin and stdout.
// It fails with ErrNotTerminal when stdin is not a terminal.
func NewTerminal() (*Terminal, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, ErrNotTerminal
	}
	return &Terminal{in: os.Stdin, out: os.Stdout}, nil
}

// NewTerminalWithIO returns prompts reading keys from in and drawing to out.
func NewTerminalWithIO(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// Select shows options as a list and returns the chosen index.
func (t *Terminal) Select(label string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, errors.New("select: no options")
	}
	m, err := t.run(newSelectModel(label, options))
	if err != nil {
		return 0, err
	}
	return m.(selectModel).cursor, nil
}

// Input reads one line of free text.
func (t *Terminal) Input(label string) (string, error) {
	m, err := t.run(newTextModel(label, false))
	if err != nil {
		return "", err
	}
	return m.(textModel).input.Value(), nil
}

// Secret reads one line without echoing it.
func (t *Terminal) Secret(label string) (string, error) {
	m, err := t.run(newTextModel(label, true))
	if err != nil {
		return "", err
	}
	return m.(textModel).input.Value(), nil
}

// Confirm asks a yes/no question; enter alone answers no.
func (t *Terminal) Confirm(label string) (bool, error) {
	m, err := t.run(newConfirmModel(label))
	if err != nil {
		return false, err
	}
	return m.(confirmModel).yes, nil
}

// aborter is implemented by every prompt model.
type aborter interface {
	aborted() bool
}

func (t *Terminal) run(m tea.Model) (tea.Model, error) {
	p := tea.NewProgram(m, tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("run prompt: %w", err)
	}
	if a, ok := final.(aborter); ok && a.aborted() {
		return nil, ErrAborted
	}
	return final, nil
}
