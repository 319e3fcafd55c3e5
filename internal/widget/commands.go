// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Each command performs one request and never retries.

func (m Model) requestContext() (context.Context, context.CancelFunc) {
	if m.opts.RequestTimeout > 0 {
		return context.WithTimeout(context.Background(), m.opts.RequestTimeout)
	}
	return context.WithCancel(context.Background())
}

func (m Model) checkSession() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		user, err := m.api.GetUser(ctx)
		return sessionCheckedMsg{user: user, err: err}
	}
}

func (m Model) createUser() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		user, err := m.api.CreateUser(ctx)
		return userCreatedMsg{user: user, err: err}
	}
}

func (m Model) createProject() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		project, err := m.api.CreateProject(ctx)
		return projectCreatedMsg{project: project, err: err}
	}
}

func (m Model) deleteUser() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		return userDeletedMsg{err: m.api.DeleteUser(ctx)}
	}
}
