// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget implements the Play With CK8S session widget as a
// Bubble Tea model.
//
// The widget checks for an existing session on start, lets the user log in
// (which provisions a user and a sandbox project) and log out, and shows a
// countdown until the session expires. Failures on the initial check raise
// a blocking popup that only a reload clears.
//
// # State machine
//
//	Checking --ok--> LoggedIn | LoggedOut
//	Checking --401--> Unauthorized
//	Checking --other--> Unavailable
//	LoggedOut --l--> Provisioning --201 + grace--> LoggedIn
//	LoggedIn --d--> Deleting --2xx + grace--> LoggedOut
//	Unauthorized | Unavailable --r--> Checking
//
// All transitions happen in Model.Update. Requests run as tea.Cmds and
// report back as messages.
//
// The grace period and popup duration are fixed UX delays. They do not
// wait for the backend to finish provisioning.
package widget
