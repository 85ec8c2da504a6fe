package prompt

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m tea.Model, keys ...string) tea.Model {
	for _, k := range keys {
		m, _ = m.Update(key(k))
	}
	return m
}

func TestSelectModelMovesAndWraps(t *testing.T) {
	m := press(newSelectModel("Choose", []string{"run", "revise", "cancel"}), "down", "down", "down", "up", "enter")

	sm := m.(selectModel)
	if !sm.done || sm.cursor != 2 {
		t.Fatalf("expected cancel to be chosen, got cursor=%d done=%v", sm.cursor, sm.done)
	}
	if !strings.Contains(sm.View(), "cancel") {
		t.Fatalf("final view should echo the answer: %q", sm.View())
	}
}

func TestSelectModelVimKeys(t *testing.T) {
	m := press(newSelectModel("Choose", []string{"a", "b"}), "j", "enter")
	if m.(selectModel).cursor != 1 {
		t.Fatalf("expected j to move down, got %d", m.(selectModel).cursor)
	}
}

func TestSelectModelAbort(t *testing.T) {
	m := press(newSelectModel("Choose", []string{"a"}), "ctrl+c")
	if !m.(selectModel).aborted() {
		t.Fatal("expected ctrl+c to abort")
	}
}

func TestTextModelCollectsInput(t *testing.T) {
	m := press(newTextModel("Add input", false), "h", "i", "enter")

	tm := m.(textModel)
	if !tm.done || tm.input.Value() != "hi" {
		t.Fatalf("unexpected text state: done=%v value=%q", tm.done, tm.input.Value())
	}
}

func TestSecretModelMasksAnswer(t *testing.T) {
	m := press(newTextModel("OpenAI API Key", true), "s", "k", "enter")

	tm := m.(textModel)
	if tm.input.Value() != "sk" {
		t.Fatalf("unexpected secret %q", tm.input.Value())
	}
	if strings.Contains(tm.View(), "sk") {
		t.Fatalf("secret leaked into view: %q", tm.View())
	}
}

func TestConfirmModelDefaultsToNo(t *testing.T) {
	m := press(newConfirmModel("Really?"), "enter")
	if cm := m.(confirmModel); !cm.done || cm.yes {
		t.Fatalf("expected enter to answer no, got %+v", cm)
	}

	m = press(newConfirmModel("Really?"), "x", "y")
	if cm := m.(confirmModel); !cm.done || !cm.yes {
		t.Fatalf("expected y to answer yes, got %+v", cm)
	}
}

func TestConfirmModelAbort(t *testing.T) {
	m := press(newConfirmModel("Really?"), "esc")
	if !m.(confirmModel).aborted() {
		t.Fatal("expected esc to abort")
	}
}
