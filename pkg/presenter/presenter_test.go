package presenter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/minhyannv/homemade-copilot/pkg/conversation"
)

func plainPresenter(buf *bytes.Buffer, rows int) *Presenter {
	return New(buf, WithColor(false), WithRows(rows))
}

func TestShowClearsWithBlankLines(t *testing.T) {
	var buf bytes.Buffer
	p := plainPresenter(&buf, 5)

	p.Show(conversation.View{Queries: []string{"list files"}, Command: "ls -la", Description: "Lists files."})

	if !strings.HasPrefix(buf.String(), strings.Repeat("\n", 5)) {
		t.Fatalf("expected 5 leading blank lines, got %q", buf.String()[:10])
	}
}

func TestRenderNumbersQueriesAndShowsCommand(t *testing.T) {
	var buf bytes.Buffer
	p := plainPresenter(&buf, 0)

	out := p.Render(conversation.View{
		Queries:     []string{"list files", "include hidden ones"},
		Command:     "ls -la",
		Description: "Lists all files including hidden ones.",
	})

	for _, needle := range []string{
		"Input",
		"Command",
		"Description",
		"1) list files",
		"2) include hidden ones",
		"> ls -la",
		"Lists all files including hidden ones.",
	} {
		if !strings.Contains(out, needle) {
			t.Fatalf("render missing %q:\n%s", needle, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes with colour disabled:\n%q", out)
	}
}

func TestRenderIndentsMultilineContent(t *testing.T) {
	var buf bytes.Buffer
	p := plainPresenter(&buf, 0)

	out := p.Render(conversation.View{
		Command:     "cd /tmp\nls",
		Description: "first\nsecond",
	})

	if !strings.Contains(out, "> cd /tmp\n"+indent+"  ls") {
		t.Fatalf("command continuation not indented:\n%s", out)
	}
	if !strings.Contains(out, "first\n"+indent+"second") {
		t.Fatalf("description continuation not indented:\n%s", out)
	}
}

func TestRenderShowsAlertBeforeDescription(t *testing.T) {
	var buf bytes.Buffer
	p := plainPresenter(&buf, 0)

	out := p.Render(conversation.View{Alert: "Received an invalid reply: ", Description: "no template here"})

	if !strings.Contains(out, "Received an invalid reply: no template here") {
		t.Fatalf("alert not rendered ahead of description:\n%s", out)
	}
}

func TestRenderHighlightsCommandWithColour(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, WithColor(true), WithRows(0))

	out := p.Render(conversation.View{Command: "ls -la"})

	if !strings.Contains(out, "\x1b[") {
		t.Fatalf("expected escape codes with colour enabled:\n%q", out)
	}
}

func TestIsTTYFalseForBuffers(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Fatal("a buffer is not a terminal")
	}
}
