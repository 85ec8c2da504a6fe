package conversation

import "errors"

// Role tags a transcript message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable transcript entry.
type Message struct {
	Role    Role
	Content string
}

// ErrNotUserTurn is returned by ReplaceLastUser when no reply is pending.
var ErrNotUserTurn = errors.New("last transcript message is not a user message")

// Transcript is the ordered conversation log. It starts with exactly one
// system message followed by alternating user/assistant messages. It is
// owned by a single Session and is not safe for concurrent use.
type Transcript struct {
	messages []Message
}

// NewTranscript seeds a transcript with the system prompt and the request.
func NewTranscript(systemPrompt, request string) *Transcript {
	return &Transcript{messages: []Message{
		{Role: RoleSystem, Content: systemPrompt},
		{Role: RoleUser, Content: request},
	}}
}

// Len returns the number of messages.
func (t *Transcript) Len() int { return len(t.messages) }

// Messages returns a copy of the log.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recent message.
func (t *Transcript) Last() Message {
	return t.messages[len(t.messages)-1]
}

// Pending reports whether the transcript ends with an unanswered user message.
func (t *Transcript) Pending() bool {
	return t.Last().Role == RoleUser
}

// AppendUser adds a user turn.
func (t *Transcript) AppendUser(content string) {
	t.messages = append(t.messages, Message{Role: RoleUser, Content: content})
}

// AppendAssistant records a reply to the pending user turn.
func (t *Transcript) AppendAssistant(content string) {
	t.messages = append(t.messages, Message{Role: RoleAssistant, Content: content})
}

// ReplaceLastUser swaps the pending user message for content, keeping the
// length unchanged.
func (t *Transcript) ReplaceLastUser(content string) error {
	if !t.Pending() {
		return ErrNotUserTurn
	}
	t.messages[len(t.messages)-1] = Message{Role: RoleUser, Content: content}
	return nil
}

// Queries returns the content of every user message, oldest first.
func (t *Transcript) Queries() []string {
	var out []string
	for _, m := range t.messages {
		if m.Role == RoleUser {
			out = append(out, m.Content)
		}
	}
	return out
}
