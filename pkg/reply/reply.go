// Package reply extracts the command and its description from a model reply.
package reply

import (
	"regexp"
	"strings"
)

const fence = "```"

// Template is the layout the model is instructed to answer with.
const Template = "**CMD**\n" + fence + "\n{command}\n" + fence + "\n\n**DESC**\n{explanation of the command and its arguments, over several lines if possible}"

// pattern matches the whole reply. The leading (?s).* lets the model put
// preamble text before the CMD label; the command stops at the first closing
// fence, and the description runs to the end of the reply.
var pattern = regexp.MustCompile(
	`(?s)\A.*(?:\*\*)?CMD(?:\*\*)?\n` + fence + `\n(.*?)\n` + fence + `\n\n(?:\*\*)?DESC(?:\*\*)?\n(.*)\z`,
)

// Reply is a command and its description, both verbatim.
type Reply struct {
	Command     string
	Description string
}

// Parse matches text against the reply template. It reports false when the
// text does not match; no partial extraction is attempted.
func Parse(text string) (Reply, bool) {
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return Reply{}, false
	}
	return Reply{Command: m[1], Description: m[2]}, true
}

// SystemPrompt builds the instruction that seeds every transcript.
func SystemPrompt() string {
	var sb strings.Builder
	sb.WriteString("You are an expert on Windows, Linux and macOS shell commands. ")
	sb.WriteString("Answer the user's request with a command that fulfils it, and refuse requests that are not about commands.")
	sb.WriteString("\nAlways answer using exactly this template:\n\n")
	sb.WriteString(Template)
	return sb.String()
}
