// Package conversation drives the ask, parse and act loop around a transcript.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/minhyannv/homemade-copilot/pkg/executor"
	loggerpkg "github.com/minhyannv/homemade-copilot/pkg/logger"
	"github.com/minhyannv/homemade-copilot/pkg/reply"
)

// Completer sends the transcript to the chat service and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, apiKey string, messages []Message) (string, error)
}

// CredentialStore persists the API secret between runs.
type CredentialStore interface {
	Load() (string, error)
	Save(secret string) error
	Remove() error
}

// Prompter collects user decisions. Every method blocks until answered.
type Prompter interface {
	Select(label string, options []string) (int, error)
	Input(label string) (string, error)
	Secret(label string) (string, error)
	Confirm(label string) (bool, error)
}

// View is one full-screen render.
type View struct {
	Queries     []string
	Command     string
	Description string
	// Alert is shown in the failure colour ahead of Description.
	Alert string
}

// Presenter renders views.
type Presenter interface {
	Show(v View)
}

// Executor starts an approved command.
type Executor interface {
	Start(command string) (*executor.Process, error)
}

// Outcome is how a session ended without error.
type Outcome int

const (
	OutcomeCancelled Outcome = iota
	OutcomeExecuted
)

// Result describes a finished session.
type Result struct {
	Outcome Outcome
	Command string
	// Process is the started command when Outcome is OutcomeExecuted. The
	// session does not wait for it.
	Process *executor.Process
}

type state int

const (
	stateAwaitingReply state = iota
	stateInvalidReply
	stateValidReply
)

func (s state) String() string {
	switch s {
	case stateAwaitingReply:
		return "awaiting_reply"
	case stateInvalidReply:
		return "awaiting_decision(invalid)"
	case stateValidReply:
		return "awaiting_decision(valid)"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type action int

const (
	actionExecute action = iota
	actionRevise
	actionRetry
	actionCancel
)

type choice struct {
	label  string
	action action
}

var (
	validChoices = []choice{
		{label: "✨ Run this command", action: actionExecute},
		{label: "📝 Add more input", action: actionRevise},
		{label: "❌ Cancel", action: actionCancel},
	}
	invalidChoices = []choice{
		{label: "📝 Re-enter input", action: actionRetry},
		{label: "❌ Cancel", action: actionCancel},
	}
)

const (
	labelAPIKey   = "OpenAI API Key"
	labelAction   = "Choose an action"
	labelAddInput = "Add input"
	labelConfirm  = "Really run this command?"
	fetching      = "Fetching..."
)

// Deps are the collaborators a Session drives.
type Deps struct {
	Completer   Completer
	Credentials CredentialStore
	Prompter    Prompter
	Presenter   Presenter
	Executor    Executor
}

// Option configures optional Session settings.
type Option func(*Session)

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// WithVerbose enables debug logging of state transitions.
func WithVerbose(v bool) Option {
	return func(s *Session) {
		s.verbose = v
	}
}

// WithSystemPrompt overrides the instruction seeding the transcript.
func WithSystemPrompt(p string) Option {
	return func(s *Session) {
		s.systemPrompt = p
	}
}

// Session owns one transcript and the state machine around it.
type Session struct {
	deps         Deps
	systemPrompt string
	transcript   *Transcript

	logger  loggerpkg.Logger
	verbose bool
}

// NewSession seeds a transcript with request and validates deps.
func NewSession(request string, deps Deps, opts ...Option) (*Session, error) {
	if deps.Completer == nil || deps.Credentials == nil || deps.Prompter == nil || deps.Presenter == nil || deps.Executor == nil {
		return nil, errors.New("conversation: all session dependencies are required")
	}
	s := &Session{
		deps:         deps,
		systemPrompt: reply.SystemPrompt(),
		logger:       loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	s.transcript = NewTranscript(s.systemPrompt, request)
	return s, nil
}

// Transcript exposes the session's log for inspection.
func (s *Session) Transcript() *Transcript { return s.transcript }

// Run drives the state machine until the user cancels, a command is
// started, or a terminal error occurs. Errors are *RemoteError or *PromptError
// (see ExitCode).
func (s *Session) Run(ctx context.Context) (Result, error) {
	var (
		current = stateAwaitingReply
		raw     string
		parsed  reply.Reply
	)
	for {
		s.debugf("state: %s (transcript=%d)", current, s.transcript.Len())
		switch current {
		case stateAwaitingReply:
			text, err := s.fetch(ctx)
			if err != nil {
				return Result{}, err
			}
			raw = text
			if r, ok := reply.Parse(text); ok {
				s.transcript.AppendAssistant(text)
				parsed = r
				current = stateValidReply
			} else {
				current = stateInvalidReply
			}

		case stateInvalidReply:
			next, err := s.decideInvalid(raw)
			if err != nil {
				return Result{}, err
			}
			if next == actionCancel {
				return Result{Outcome: OutcomeCancelled}, nil
			}
			current = stateAwaitingReply

		case stateValidReply:
			res, done, err := s.decideValid(parsed)
			if err != nil || done {
				return res, err
			}
			current = stateAwaitingReply
		}
	}
}

// fetch performs one remote call for the pending user message.
func (s *Session) fetch(ctx context.Context) (string, error) {
	key, err := s.deps.Credentials.Load()
	if err != nil {
		loggerpkg.Warn(s.logger, "credential unreadable, prompting", map[string]any{"error": err.Error()})
		key = ""
	}
	if key == "" {
		key, err = s.deps.Prompter.Secret(labelAPIKey)
		if err != nil {
			return "", &PromptError{Op: "api key", Err: err}
		}
	}

	queries := s.transcript.Queries()
	s.deps.Presenter.Show(View{Queries: queries, Command: fetching, Description: fetching})

	content, err := s.deps.Completer.Complete(ctx, key, s.transcript.Messages())
	if err != nil {
		payload := err.Error()
		var withPayload interface{ Payload() string }
		if errors.As(err, &withPayload) {
			payload = withPayload.Payload()
		}
		s.deps.Presenter.Show(View{Queries: queries, Alert: "Failed to fetch a reply: ", Description: payload})
		if rmErr := s.deps.Credentials.Remove(); rmErr != nil {
			loggerpkg.Warn(s.logger, "remove credential failed", map[string]any{"error": rmErr.Error()})
		}
		return "", &RemoteError{Payload: payload, Err: err}
	}

	if err := s.deps.Credentials.Save(key); err != nil {
		loggerpkg.Warn(s.logger, "save credential failed", map[string]any{"error": err.Error()})
	}
	s.debugf("reply received: %d bytes", len(content))
	return content, nil
}

// decideInvalid shows an unparseable reply and returns actionRetry or actionCancel.
func (s *Session) decideInvalid(raw string) (action, error) {
	s.deps.Presenter.Show(View{
		Queries:     s.transcript.Queries(),
		Alert:       "Received an invalid reply: ",
		Description: raw,
	})
	picked, err := s.choose(invalidChoices)
	if err != nil {
		return actionCancel, err
	}
	if picked == actionCancel {
		return actionCancel, nil
	}

	text, err := s.deps.Prompter.Input(labelAddInput)
	if err != nil {
		return actionCancel, &PromptError{Op: "input", Err: err}
	}
	if err := s.transcript.ReplaceLastUser(text); err != nil {
		return actionCancel, err
	}
	return actionRetry, nil
}

// decideValid loops on the execute/revise/cancel choice. done is false when
// the user revised and a new reply must be fetched.
func (s *Session) decideValid(r reply.Reply) (Result, bool, error) {
	for {
		s.deps.Presenter.Show(View{
			Queries:     s.transcript.Queries(),
			Command:     r.Command,
			Description: r.Description,
		})
		picked, err := s.choose(validChoices)
		if err != nil {
			return Result{}, true, err
		}

		switch picked {
		case actionExecute:
			ok, err := s.deps.Prompter.Confirm(confirmLabel(r.Command))
			if err != nil {
				return Result{}, true, &PromptError{Op: "confirm", Err: err}
			}
			if !ok {
				continue
			}
			proc, err := s.deps.Executor.Start(r.Command)
			if err != nil {
				return Result{}, true, fmt.Errorf("start command: %w", err)
			}
			s.debugf("command started")
			return Result{Outcome: OutcomeExecuted, Command: r.Command, Process: proc}, true, nil

		case actionRevise:
			text, err := s.deps.Prompter.Input(labelAddInput)
			if err != nil {
				return Result{}, true, &PromptError{Op: "input", Err: err}
			}
			s.transcript.AppendUser(text)
			return Result{}, false, nil

		default:
			return Result{Outcome: OutcomeCancelled}, true, nil
		}
	}
}

func (s *Session) choose(choices []choice) (action, error) {
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.label
	}
	idx, err := s.deps.Prompter.Select(labelAction, labels)
	if err != nil {
		return actionCancel, &PromptError{Op: "select", Err: err}
	}
	if idx < 0 || idx >= len(choices) {
		return actionCancel, &PromptError{Op: "select", Err: fmt.Errorf("choice %d out of range", idx)}
	}
	return choices[idx].action, nil
}

// confirmLabel warns when the command runs a destructive executable.
func confirmLabel(command string) string {
	risky := executor.Risky(command)
	if len(risky) == 0 {
		return labelConfirm
	}
	return fmt.Sprintf("⚠ uses %s. %s", strings.Join(risky, ", "), labelConfirm)
}

func (s *Session) debugf(format string, args ...any) {
	loggerpkg.Debugf(s.verbose, s.logger, format, args...)
}
