// Package main is the homemade-copilot CLI: it turns a natural-language
// request into a shell command, explains it, and runs it on confirmation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/minhyannv/homemade-copilot/pkg/chat"
	configpkg "github.com/minhyannv/homemade-copilot/pkg/config"
	"github.com/minhyannv/homemade-copilot/pkg/conversation"
	"github.com/minhyannv/homemade-copilot/pkg/credential"
	"github.com/minhyannv/homemade-copilot/pkg/executor"
	loggerpkg "github.com/minhyannv/homemade-copilot/pkg/logger"
	"github.com/minhyannv/homemade-copilot/pkg/presenter"
	"github.com/minhyannv/homemade-copilot/pkg/prompt"
)

// main is the program entry point.
func main() {
	appLogger := loggerpkg.NewWriterLogger(os.Stderr)
	cfg := configpkg.DefaultConfig()

	root := newRootCommand(func(ctx context.Context, request string) error {
		return runSession(ctx, cfg, appLogger, request)
	})
	err := root.ExecuteContext(context.Background())

	code := conversation.ExitCode(err)
	if code == conversation.ExitPromptFailure {
		var promptErr *conversation.PromptError
		if errors.Is(err, prompt.ErrNotTerminal) {
			loggerpkg.Error(appLogger, "could not prompt: stdin is not a terminal", nil)
		} else if errors.As(err, &promptErr) {
			loggerpkg.Error(appLogger, "prompt failed", map[string]any{"op": promptErr.Op, "error": promptErr.Err.Error()})
		} else {
			loggerpkg.Error(appLogger, "unexpected failure", map[string]any{"error": err.Error()})
		}
	}
	os.Exit(code)
}

// newRootCommand builds the CLI. Flag parsing is disabled: every argument,
// dashes included, is part of the request.
func newRootCommand(run func(ctx context.Context, request string) error) *cobra.Command {
	return &cobra.Command{
		Use:                "homemade-copilot <request...>",
		Short:              "Ask for a shell command in plain language, review it, and run it",
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), requestFromArgs(args))
		},
	}
}

// requestFromArgs joins the arguments with single spaces.
func requestFromArgs(args []string) string {
	return strings.Join(args, " ")
}

// runSession wires the collaborators, drives one conversation, and waits for
// an executed command to finish forwarding its output.
func runSession(ctx context.Context, cfg configpkg.Config, appLogger loggerpkg.Logger, request string) error {
	cfg = configpkg.Normalize(cfg)

	prompter, err := prompt.NewTerminal()
	if err != nil {
		return &conversation.PromptError{Op: "open terminal", Err: err}
	}

	session, err := conversation.NewSession(request, conversation.Deps{
		Completer:   chat.New(cfg, chat.WithLogger(loggerpkg.Named(appLogger, "chat"))),
		Credentials: credential.New(cfg.CredentialPath),
		Prompter:    prompter,
		Presenter:   presenter.New(os.Stdout),
		Executor:    executor.New(executor.WithLogger(loggerpkg.Named(appLogger, "exec"), cfg.Verbose)),
	},
		conversation.WithLogger(loggerpkg.Named(appLogger, "session")),
		conversation.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	result, err := session.Run(ctx)
	if err != nil {
		return err
	}
	if result.Outcome == conversation.OutcomeExecuted && result.Process != nil {
		_ = result.Process.Wait()
	}
	return nil
}
