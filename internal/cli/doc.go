// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// pwck8s commands.
//
// # Commands
//
//	pwck8s [tui]         Session widget (default)
//	pwck8s status        Show the current session
//	pwck8s login         Provision a user and sandbox project
//	pwck8s logout        Close the session
//	pwck8s watch         Print the countdown until the session expires
//	pwck8s health        Check the backend health endpoint
//	pwck8s open          Open the Rancher dashboard
//	pwck8s config        Show, locate or initialize the config file
//	pwck8s version       Print version information
//
// Every command accepts --json for machine-readable output. Commands
// return errors; the caller maps them to exit codes with ExitCodeFor.
package cli
