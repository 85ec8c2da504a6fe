// Package executor runs an approved command line in the user's shell.
package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"time"

	loggerpkg "github.com/minhyannv/homemade-copilot/pkg/logger"
)

// Runner starts shell commands with their output forwarded to Stdout and Stderr.
type Runner struct {
	// Dir is the working directory; empty means the current one.
	Dir    string
	Stdout io.Writer
	Stderr io.Writer

	shell   []string
	logger  loggerpkg.Logger
	verbose bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput replaces the output writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(r *Runner) {
		r.Stdout = stdout
		r.Stderr = stderr
	}
}

// WithDir sets the working directory.
func WithDir(dir string) Option {
	return func(r *Runner) {
		r.Dir = dir
	}
}

// WithLogger injects a logger dependency.
func WithLogger(l loggerpkg.Logger, verbose bool) Option {
	return func(r *Runner) {
		r.logger = l
		r.verbose = verbose
	}
}

// New returns a Runner writing to the process's own stdout and stderr.
func New(opts ...Option) *Runner {
	r := &Runner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		shell:  defaultShell(),
		logger: loggerpkg.NopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func defaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"/bin/sh", "-c"}
}

// Process is a started command. Output keeps flowing after Start returns;
// Done is closed once the command has exited and its output is flushed.
type Process struct {
	Command string

	cmd   *exec.Cmd
	start time.Time
	done  chan struct{}
	err   error
}

// Start launches command and returns without waiting for it.
func (r *Runner) Start(command string) (*Process, error) {
	if command == "" {
		return nil, errors.New("command is required")
	}
	args := append(append([]string{}, r.shell[1:]...), command)
	cmd := exec.Command(r.shell[0], args...)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	loggerpkg.Debug(r.verbose, r.logger, "starting command", map[string]any{
		"shell":       r.shell[0],
		"command":     command,
		"working_dir": r.Dir,
	})
	p := &Process{Command: command, cmd: cmd, start: time.Now(), done: make(chan struct{})}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", r.shell[0], err)
	}

	go func() {
		defer close(p.done)
		p.err = cmd.Wait()
		loggerpkg.Debug(r.verbose, r.logger, "command finished", map[string]any{
			"pid":         cmd.Process.Pid,
			"duration_ms": time.Since(p.start).Milliseconds(),
		})
	}()
	return p, nil
}

// Done is closed when the process has exited.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the process exits and returns its wait error. The exit
// status is not interpreted.
func (p *Process) Wait() error {
	<-p.done
	return p.err
}

// Pid returns the operating system process id.
func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}
