// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/william86370/pwck8s/internal/ui/components"
	"github.com/william86370/pwck8s/internal/ui/styles"
)

const appTitle = "Play With CK8S"

// View implements tea.Model. An open popup replaces the whole screen.
func (m Model) View() string {
	if m.popup != nil {
		return components.RenderModal(m.popup.Modal(), m.width, m.height)
	}

	t := m.theme
	sections := []string{
		t.Title.Render(appTitle) + "  " + m.stateBadge(),
		"",
		m.body(),
		"",
		m.controls(),
	}
	panel := t.Panel.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))

	out := []string{panel}
	if toasts := components.RenderToastStack(m.toasts.Toasts(), m.width); toasts != "" {
		out = append(out, toasts)
	}
	if m.opts.ShowHelp {
		out = append(out, m.help.View(m.keys))
	}
	out = append(out, components.StatusBar{
		Width:    m.width,
		Identity: m.opts.Identity,
		Server:   m.opts.ServerURL,
		State:    m.state.String(),
	}.View())

	return strings.Join(out, "\n")
}

func (m Model) stateBadge() string {
	color := styles.Cyan
	switch m.state {
	case StateLoggedIn:
		color = styles.Emerald
	case StateUnauthorized:
		color = styles.Rose
	case StateUnavailable, StateProvisioning, StateDeleting:
		color = styles.Amber
	}
	return m.theme.BadgeFor(color).Render(m.state.String())
}

func (m Model) body() string {
	t := m.theme
	switch m.state {
	case StateChecking, StateProvisioning, StateDeleting:
		return m.spinner.View()

	case StateLoggedOut:
		return t.Label.Render("No active session. Log in to provision a sandbox project.")

	case StateLoggedIn:
		lines := []string{t.Label.Render("Session expires in")}
		if m.countdown.Expired() {
			lines = append(lines, t.Expired.Render(m.countdown.View()))
		} else {
			lines = append(lines, t.Countdown.Render(m.countdown.View()))
		}
		if m.opts.DashboardURL != "" {
			lines = append(lines, "", t.Label.Render("Dashboard: ")+styles.RenderLink(m.opts.DashboardURL))
		}
		return strings.Join(lines, "\n")

	case StateUnauthorized:
		return styles.RenderError(unauthorizedTitle)

	case StateUnavailable:
		return styles.RenderWarning(maintenanceTitle)
	}
	return ""
}

// controls renders every control as a button, greyed out when disabled.
func (m Model) controls() string {
	buttons := []struct {
		label   string
		binding key.Binding
	}{
		{"Login", m.keys.Login},
		{"Close Session", m.keys.Logout},
		{"Dashboard", m.keys.Open},
		{"Copy URL", m.keys.Copy},
	}

	rendered := make([]string, 0, len(buttons))
	for _, b := range buttons {
		label := "[" + b.binding.Help().Key + "] " + b.label
		if b.binding.Enabled() {
			rendered = append(rendered, m.theme.Button.Render(label))
		} else {
			rendered = append(rendered, m.theme.ButtonDisabled.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
