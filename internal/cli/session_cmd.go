// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/william86370/pwck8s/internal/portal"
	"github.com/william86370/pwck8s/internal/ui/styles"
	"github.com/william86370/pwck8s/internal/widget"
)

// SessionInfo is the --json payload for status, login and watch.
type SessionInfo struct {
	State        string          `json:"state"`
	User         *portal.User    `json:"user,omitempty"`
	Project      *portal.Project `json:"project,omitempty"`
	Remaining    string          `json:"remaining,omitempty"`
	DashboardURL string          `json:"dashboard_url,omitempty"`
}

const (
	stateLoggedIn  = "logged_in"
	stateLoggedOut = "logged_out"
)

func (e *Env) sessionInfo(user *portal.User) SessionInfo {
	if !user.HasSession() {
		return SessionInfo{State: stateLoggedOut}
	}
	info := SessionInfo{
		State:     stateLoggedIn,
		User:      user,
		Remaining: widget.FormatRemaining(user.Remaining(e.now())),
	}
	if e.Config != nil {
		info.DashboardURL = e.Config.Server.DashboardURL
	}
	return info
}

func (e *Env) printSession(info SessionInfo) {
	w := e.out()
	if info.State != stateLoggedIn {
		fmt.Fprintln(w, styles.RenderInfo("No active session"))
		return
	}
	fmt.Fprintln(w, TitleStyle.Render("Play With CK8S"))
	fmt.Fprintln(w, field("User", info.User.UserID))
	if info.User.DisplayName != "" {
		fmt.Fprintln(w, field("Identity", info.User.DisplayName))
	}
	fmt.Fprintln(w, field("Expires", info.User.ExpirationTime.Local().Format(time.RFC1123)))
	fmt.Fprintln(w, field("Remaining", info.Remaining))
	if info.Project != nil {
		fmt.Fprintln(w, field("Project", info.Project.ProjectID))
		if info.Project.ClusterID != "" {
			fmt.Fprintln(w, field("Cluster", info.Project.ClusterID))
		}
	}
	if info.DashboardURL != "" {
		fmt.Fprintln(w, field("Dashboard", styles.RenderLink(info.DashboardURL)))
	}
}

// =============================================================================
// STATUS
// =============================================================================

// RunStatus shows the current session. No session is not an error.
func RunStatus(ctx context.Context, env *Env) error {
	user, err := env.Client.GetUser(ctx)
	if err != nil && !errors.Is(err, portal.ErrNotFound) {
		return NewCommandError("status", err, "")
	}

	info := env.sessionInfo(user)
	if info.State == stateLoggedIn {
		project, err := env.Client.GetProject(ctx)
		switch {
		case err == nil:
			info.Project = project
		case errors.Is(err, portal.ErrNotFound):
		default:
			log.WithError(err).Warn("project lookup failed")
		}
	}

	if env.JSON {
		return NewJSONResponse("status", info).Print(env.out())
	}
	env.printSession(info)
	return nil
}

// =============================================================================
// LOGIN
// =============================================================================

// RunLogin provisions a user and a project with two concurrent requests.
// A failed user request fails the command. A failed project request
// is reported as a warning and the session stays up.
func RunLogin(ctx context.Context, env *Env) error {
	existing, err := env.Client.GetUser(ctx)
	if err != nil && !errors.Is(err, portal.ErrNotFound) {
		return NewCommandError("login", err, "")
	}
	if existing.HasSession() {
		info := env.sessionInfo(existing)
		if env.JSON {
			resp := NewJSONResponse("login", info)
			resp.Warnings = []string{"session already active"}
			return resp.Print(env.out())
		}
		fmt.Fprintln(env.out(), styles.RenderWarning("Session already active"))
		env.printSession(info)
		return nil
	}

	var (
		wg         sync.WaitGroup
		user       *portal.User
		project    *portal.Project
		userErr    error
		projectErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = env.Client.CreateUser(ctx)
	}()
	go func() {
		defer wg.Done()
		project, projectErr = env.Client.CreateProject(ctx)
	}()
	wg.Wait()

	if userErr != nil {
		return NewCommandError("login", multierr.Combine(userErr, projectErr), "")
	}

	var warnings []string
	if projectErr != nil {
		log.WithError(projectErr).Warn("project provisioning failed")
		warnings = append(warnings, "project provisioning failed: "+projectErr.Error())
	}

	info := env.sessionInfo(user)
	info.Project = project
	if env.JSON {
		resp := NewJSONResponse("login", info)
		resp.Warnings = warnings
		return resp.Print(env.out())
	}
	fmt.Fprintln(env.out(), styles.RenderSuccess("Session started"))
	for _, w := range warnings {
		fmt.Fprintln(env.out(), styles.RenderWarning(w))
	}
	env.printSession(info)
	return nil
}

// =============================================================================
// LOGOUT
// =============================================================================

// RunLogout closes the session.
func RunLogout(ctx context.Context, env *Env) error {
	if err := env.Client.DeleteUser(ctx); err != nil {
		return NewCommandError("logout", err, "")
	}
	if env.JSON {
		return NewJSONResponse("logout", SessionInfo{State: stateLoggedOut}).Print(env.out())
	}
	fmt.Fprintln(env.out(), styles.RenderSuccess("Session closed"))
	return nil
}

// =============================================================================
// WATCH
// =============================================================================

// RunWatch prints the remaining session time every --interval until the
// session expires or ctx is canceled. Cancellation is not an error.
func RunWatch(ctx context.Context, env *Env, p *ArgParser) error {
	interval, err := p.DurationFlag("interval", time.Second)
	if err != nil {
		return err
	}
	if interval <= 0 {
		return NewUsageError("--interval", p.Flag("interval"), "must be positive")
	}

	user, err := env.Client.GetUser(ctx)
	if err != nil {
		return NewCommandError("watch", err, "")
	}
	if !user.HasSession() {
		return NewCommandError("watch", portal.ErrNotFound, "")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		remaining := user.Remaining(env.now())
		text := widget.FormatRemaining(remaining)
		if env.JSON {
			if err := NewJSONResponse("watch", SessionInfo{
				State:     stateLoggedIn,
				Remaining: text,
			}).Print(env.out()); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(env.out(), field("Remaining", text))
		}
		if remaining < 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
