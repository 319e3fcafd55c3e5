// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/william86370/pwck8s/internal/config"
	"github.com/william86370/pwck8s/internal/portal"
	"github.com/william86370/pwck8s/internal/util"
)

// Backend is the subset of the portal client the commands use.
type Backend interface {
	GetUser(ctx context.Context) (*portal.User, error)
	CreateUser(ctx context.Context) (*portal.User, error)
	DeleteUser(ctx context.Context) error
	CreateProject(ctx context.Context) (*portal.Project, error)
	GetProject(ctx context.Context) (*portal.Project, error)
	Health(ctx context.Context) error
}

var _ Backend = (*portal.Client)(nil)

// Env carries everything a command needs.
type Env struct {
	Client     Backend
	Config     *config.Config
	ConfigPath string

	Out  io.Writer
	Err  io.Writer
	JSON bool

	// Now, OpenURL and CopyText default to the real implementations.
	Now      func() time.Time
	OpenURL  func(string) error
	CopyText func(string) error
}

func (e *Env) out() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Env) openURL(u string) error {
	if e.OpenURL == nil {
		return util.OpenURL(u)
	}
	return e.OpenURL(u)
}

func (e *Env) copyText(s string) error {
	if e.CopyText == nil {
		return util.CopyToClipboard(s)
	}
	return e.CopyText(s)
}

// Run executes a non-interactive command.
func Run(ctx context.Context, cmd Command, args Args, env *Env) error {
	switch cmd {
	case CmdStatus:
		return RunStatus(ctx, env)
	case CmdLogin:
		return RunLogin(ctx, env)
	case CmdLogout:
		return RunLogout(ctx, env)
	case CmdWatch:
		return RunWatch(ctx, env, NewArgParser(args.Raw))
	case CmdHealth:
		return RunHealth(ctx, env)
	case CmdOpen:
		return RunOpen(ctx, env, NewArgParser(args.Raw))
	case CmdConfig:
		return RunConfig(env, NewArgParser(args.Raw))
	case CmdVersion:
		return RunVersion(env.out(), env.JSON)
	case CmdHelp:
		PrintUsage(env.out())
		return nil
	case CmdUnknown:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args.Unknown)
	default:
		return fmt.Errorf("%w: %s is interactive", ErrUsage, cmd)
	}
}
