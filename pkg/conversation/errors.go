package conversation

import (
	"errors"
	"fmt"
)

// Process exit codes.
const (
	ExitOK            = 0
	ExitPromptFailure = 1
	ExitRemoteFailure = 2
)

// RemoteError reports a chat call that produced no usable reply. The stored
// credential has already been removed when it is returned.
type RemoteError struct {
	Payload string
	Err     error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote call failed: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// PromptError reports a failure of the interactive prompt layer.
type PromptError struct {
	Op  string
	Err error
}

func (e *PromptError) Error() string {
	return fmt.Sprintf("prompt %s: %v", e.Op, e.Err)
}

func (e *PromptError) Unwrap() error { return e.Err }

// ExitCode maps the error returned by Session.Run to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return ExitRemoteFailure
	}
	return ExitPromptFailure
}
