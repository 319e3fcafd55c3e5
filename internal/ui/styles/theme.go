// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds the styled pieces of the session widget.
type Theme struct {
	ColorProfile termenv.Profile

	// Frame
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Panel    lipgloss.Style

	// Session body
	Label      lipgloss.Style
	Countdown  lipgloss.Style
	Expired    lipgloss.Style
	StateBadge lipgloss.Style
	Muted      lipgloss.Style

	// Controls
	Button         lipgloss.Style
	ButtonDisabled lipgloss.Style
	ButtonKey      lipgloss.Style
}

// NewTheme builds the theme for the detected terminal color profile.
func NewTheme() *Theme {
	return NewThemeWithProfile(lipgloss.ColorProfile())
}

// NewThemeWithProfile builds the theme for an explicit color profile.
func NewThemeWithProfile(profile termenv.Profile) *Theme {
	t := &Theme{ColorProfile: profile}

	t.Title = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.Subtitle = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(1, 3)

	t.Label = lipgloss.NewStyle().Foreground(TextSecondary)
	t.Countdown = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Expired = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.StateBadge = lipgloss.NewStyle().Foreground(TextInverse).Background(Cyan).Padding(0, 1)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)

	t.Button = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Border(lipgloss.NormalBorder()).
		BorderForeground(Cyan).
		Padding(0, 1)
	t.ButtonDisabled = t.Button.
		Foreground(TextMuted).
		BorderForeground(Overlay).
		Strikethrough(true)
	t.ButtonKey = lipgloss.NewStyle().Foreground(Cyan).Bold(true)

	return t
}

// BadgeFor returns the state badge tinted for the given tone.
func (t *Theme) BadgeFor(color lipgloss.TerminalColor) lipgloss.Style {
	return t.StateBadge.Background(color)
}
