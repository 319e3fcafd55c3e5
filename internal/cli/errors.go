// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/william86370/pwck8s/internal/config"
	"github.com/william86370/pwck8s/internal/portal"
	"github.com/william86370/pwck8s/internal/ui/styles"
)

// Exit codes for pwck8s.
const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitUsage        = 2
	ExitConfig       = 3
	ExitUnauthorized = 4
	ExitUnavailable  = 5
	ExitNotFound     = 7
	ExitTimeout      = 8
)

// ErrUsage marks errors caused by bad command-line input.
var ErrUsage = errors.New("invalid usage")

// CommandError wraps an error with the command that produced it and
// an optional suggestion for the user.
type CommandError struct {
	Command    string
	Err        error
	Suggestion string
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

// Unwrap returns the underlying error.
func (e *CommandError) Unwrap() error {
	return e.Err
}

// NewCommandError creates a CommandError.
func NewCommandError(cmd string, err error, suggestion string) *CommandError {
	return &CommandError{Command: cmd, Err: err, Suggestion: suggestion}
}

// NewUsageError describes a bad flag or argument value.
func NewUsageError(field, value, reason string) error {
	return fmt.Errorf("%w: %s=%q %s", ErrUsage, field, value, reason)
}

// ExitCodeFor maps an error to a process exit code.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var verrs config.ValidateErrors
	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsage
	case errors.As(err, &verrs):
		return ExitConfig
	case errors.Is(err, portal.ErrUnauthorized):
		return ExitUnauthorized
	case errors.Is(err, portal.ErrUnavailable):
		return ExitUnavailable
	case errors.Is(err, portal.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return ExitTimeout
	default:
		return ExitError
	}
}

// suggestionFor returns a hint for well-known failures.
func suggestionFor(err error) string {
	switch {
	case errors.Is(err, portal.ErrUnauthorized):
		return "Check the UserDN (--user-dn or PWCK8S_USER_DN) and your PKI certificate."
	case errors.Is(err, portal.ErrUnavailable):
		return "The backend may be in maintenance. Try 'pwck8s health'."
	case errors.Is(err, portal.ErrNotFound):
		return "No session exists. Start one with 'pwck8s login'."
	case errors.Is(err, ErrUsage):
		return "Run 'pwck8s help' for usage."
	}
	return ""
}

// DisplayError writes err to w, in JSON when jsonMode is set.
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}

	suggestion := suggestionFor(err)
	var cmdErr *CommandError
	command := ""
	if errors.As(err, &cmdErr) {
		command = cmdErr.Command
		if cmdErr.Suggestion != "" {
			suggestion = cmdErr.Suggestion
		}
	}

	if jsonMode {
		resp := NewJSONErrorResponse(command, err)
		resp.ExitCode = ExitCodeFor(err)
		_ = resp.Print(w)
		return
	}

	fmt.Fprintln(w, styles.RenderError("Error: "+err.Error()))
	if suggestion != "" {
		fmt.Fprintln(w, "  "+MutedStyle.Render(suggestion))
	}
}
