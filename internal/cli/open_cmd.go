// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/william86370/pwck8s/internal/portal"
	"github.com/william86370/pwck8s/internal/ui/styles"
)

// ErrNoDashboard is returned when no dashboard URL is configured.
var ErrNoDashboard = errors.New("no dashboard url configured")

// RunOpen opens the dashboard for an active session.
//
//	--print  print the URL instead of launching a browser
//	--copy   copy the URL to the clipboard
func RunOpen(ctx context.Context, env *Env, p *ArgParser) error {
	if env.Config == nil || env.Config.Server.DashboardURL == "" {
		return NewCommandError("open", ErrNoDashboard, "Set server.dashboard_url in the config file.")
	}
	dashboard := env.Config.Server.DashboardURL

	user, err := env.Client.GetUser(ctx)
	if err != nil {
		return NewCommandError("open", err, "")
	}
	if !user.HasSession() {
		return NewCommandError("open", portal.ErrNotFound, "")
	}

	action := "opened"
	switch {
	case p.BoolFlag("print"):
		action = "printed"
	case p.BoolFlag("copy"):
		if err := env.copyText(dashboard); err != nil {
			return NewCommandError("open", err, "")
		}
		action = "copied"
	default:
		if err := env.openURL(dashboard); err != nil {
			return NewCommandError("open", err, "Use --print and open the URL manually.")
		}
	}

	if env.JSON {
		return NewJSONResponse("open", map[string]string{
			"dashboard_url": dashboard,
			"action":        action,
		}).Print(env.out())
	}
	switch action {
	case "printed":
		fmt.Fprintln(env.out(), dashboard)
	case "copied":
		fmt.Fprintln(env.out(), styles.RenderSuccess("Dashboard URL copied"))
	default:
		fmt.Fprintln(env.out(), styles.RenderSuccess("Opened "+dashboard))
	}
	return nil
}
