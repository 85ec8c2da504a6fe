// Package presenter draws the query history, command and description.
package presenter

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/minhyannv/homemade-copilot/pkg/conversation"
)

const (
	indent        = "      "
	sectionIndent = "    "
	fallbackRows  = 24
)

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type styles struct {
	rule        lipgloss.Style
	inputBadge  lipgloss.Style
	cmdBadge    lipgloss.Style
	descBadge   lipgloss.Style
	number      lipgloss.Style
	query       lipgloss.Style
	prompt      lipgloss.Style
	command     lipgloss.Style
	description lipgloss.Style
	alert       lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	base := r.NewStyle().TabWidth(lipgloss.NoTabConversion)
	badge := base.Bold(true).Foreground(lipgloss.Color("15")).Padding(0, 1)
	white := base.Foreground(lipgloss.Color("7"))
	yellow := base.Foreground(lipgloss.Color("3"))
	return styles{
		rule:        white,
		inputBadge:  badge.Background(lipgloss.Color("6")),
		cmdBadge:    badge.Background(lipgloss.Color("2")),
		descBadge:   badge.Background(lipgloss.Color("4")),
		number:      white,
		query:       yellow,
		prompt:      white,
		command:     yellow,
		description: white,
		alert:       base.Foreground(lipgloss.Color("1")),
	}
}

// Presenter implements conversation.Presenter on a terminal.
type Presenter struct {
	out    io.Writer
	color  bool
	rows   func() int
	styles styles
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithColor forces colour on or off.
func WithColor(enabled bool) Option {
	return func(p *Presenter) {
		p.color = enabled
	}
}

// WithRows fixes the number of blank lines used to clear the screen.
func WithRows(n int) Option {
	return func(p *Presenter) {
		p.rows = func() int { return n }
	}
}

// New returns a presenter writing to out. Colour defaults to on when out is a
// terminal.
func New(out io.Writer, opts ...Option) *Presenter {
	p := &Presenter{
		out:   out,
		color: IsTTY(out),
		rows:  func() int { return terminalRows(out) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	r := lipgloss.NewRenderer(out)
	if p.color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	p.styles = newStyles(r)
	return p
}

func terminalRows(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return fallbackRows
	}
	_, rows, err := term.GetSize(int(f.Fd()))
	if err != nil || rows <= 0 {
		return fallbackRows
	}
	return rows
}

// Show clears the visible region by scrolling it away with blank lines and
// prints the rendered view.
func (p *Presenter) Show(v conversation.View) {
	blank := strings.Repeat("\n", p.rows())
	_, _ = io.WriteString(p.out, blank+p.Render(v)+"\n")
}

// Render formats v without clearing.
func (p *Presenter) Render(v conversation.View) string {
	s := p.styles
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(p.header(s.inputBadge.Render("Input")))
	for i, q := range v.Queries {
		fmt.Fprintf(&sb, "%s%s%s\n", indent, s.number.Render(fmt.Sprintf("%d)", i+1))+" ", paint(s.query, q, indent+"   "))
	}

	sb.WriteString("\n")
	sb.WriteString(p.header(s.cmdBadge.Render("Command")))
	fmt.Fprintf(&sb, "%s%s%s\n", indent, s.prompt.Render(">")+" ", p.command(v.Command))

	sb.WriteString("\n")
	sb.WriteString(p.header(s.descBadge.Render("Description")))
	sb.WriteString(indent)
	if v.Alert != "" {
		sb.WriteString(s.alert.Render(strings.TrimRight(v.Alert, " ")) + " ")
	}
	sb.WriteString(paint(s.description, v.Description, indent))
	sb.WriteString("\n")
	return sb.String()
}

func (p *Presenter) header(badge string) string {
	rule := p.styles.rule.Render("==========")
	return sectionIndent + rule + " " + badge + " " + rule + "\n"
}

// command highlights the command as shell when colour is on.
func (p *Presenter) command(cmd string) string {
	if cmd == "" || !p.color {
		return paint(p.styles.command, cmd, indent+"  ")
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, cmd, "bash", "terminal256", "monokai"); err != nil {
		return paint(p.styles.command, cmd, indent+"  ")
	}
	return strings.ReplaceAll(strings.TrimRight(buf.String(), "\n"), "\n", "\n"+indent+"  ")
}

// paint styles text line by line so lipgloss never pads lines to a common
// width, and indents continuation lines with prefix.
func paint(style lipgloss.Style, text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n"+prefix)
}
