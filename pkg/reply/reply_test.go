package reply

import (
	"strings"
	"testing"
)

func TestParseExtractsCommandAndDescription(t *testing.T) {
	text := "**CMD**\n```\nls -la\n```\n\n**DESC**\nLists all files including hidden ones."

	r, ok := Parse(text)
	if !ok {
		t.Fatal("expected match")
	}
	if r.Command != "ls -la" {
		t.Fatalf("unexpected command %q", r.Command)
	}
	if r.Description != "Lists all files including hidden ones." {
		t.Fatalf("unexpected description %q", r.Description)
	}
}

func TestParseKeepsMultilineContentVerbatim(t *testing.T) {
	command := "cd /tmp\n  find . -name '*.log'\nrm -f old.log"
	description := "First line.\n\n- cd: change directory\n- find: search\n"
	text := "Sure, here it is.\nCMD\n```\n" + command + "\n```\n\nDESC\n" + description

	r, ok := Parse(text)
	if !ok {
		t.Fatal("expected match")
	}
	if r.Command != command {
		t.Fatalf("command mismatch:\n got %q\nwant %q", r.Command, command)
	}
	if r.Description != description {
		t.Fatalf("description mismatch:\n got %q\nwant %q", r.Description, description)
	}
}

func TestParseAcceptsMixedEmphasis(t *testing.T) {
	r, ok := Parse("**CMD\n```\npwd\n```\n\nDESC**\nPrints the directory.")
	if !ok {
		t.Fatal("expected match")
	}
	if r.Command != "pwd" || r.Description != "Prints the directory." {
		t.Fatalf("unexpected reply %+v", r)
	}
}

func TestParseRejectsMissingDescLabel(t *testing.T) {
	_, ok := Parse("**CMD**\n```\nls -la\n```\n\nLists all files.")
	if ok {
		t.Fatal("expected no match without DESC label")
	}
}

func TestParseIsCaseSensitive(t *testing.T) {
	_, ok := Parse("**cmd**\n```\nls\n```\n\n**desc**\nlists")
	if ok {
		t.Fatal("expected lowercase labels to be rejected")
	}
}

func TestParseRequiresBlankLineBeforeDesc(t *testing.T) {
	_, ok := Parse("**CMD**\n```\nls\n```\n**DESC**\nlists")
	if ok {
		t.Fatal("expected no match without blank line")
	}
}

func TestParseRejectsFreeText(t *testing.T) {
	if _, ok := Parse("I cannot help with that."); ok {
		t.Fatal("expected no match")
	}
}

func TestSystemPromptEmbedsTemplate(t *testing.T) {
	prompt := SystemPrompt()
	for _, needle := range []string{"**CMD**", "**DESC**", "```"} {
		if !strings.Contains(prompt, needle) {
			t.Fatalf("system prompt missing %q:\n%s", needle, prompt)
		}
	}
}
