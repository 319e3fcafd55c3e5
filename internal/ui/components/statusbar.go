// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/william86370/pwck8s/internal/ui/styles"
	"github.com/william86370/pwck8s/internal/util"
)

// StatusBar is the footer line: identity and server on the left, state on
// the right.
type StatusBar struct {
	Width    int
	Identity string
	Server   string
	State    string
}

// View renders the status bar. On narrow terminals the server is dropped.
func (s StatusBar) View() string {
	sep := lipgloss.NewStyle().Foreground(styles.Overlay).Render(" | ")
	right := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true).Render(s.State)

	left := []string{s.Identity}
	if s.Width >= 60 && s.Server != "" {
		left = append(left, s.Server)
	}
	leftText := strings.Join(left, " | ")

	avail := s.Width - util.StringWidth(s.State) - 3
	if s.Width > 0 && avail > 0 {
		leftText = util.TruncateWidth(leftText, avail)
	}
	leftText = strings.ReplaceAll(leftText, " | ", sep)

	gap := s.Width - lipgloss.Width(leftText) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(styles.SurfaceDim).
		Foreground(styles.TextSecondary).
		Render(leftText + strings.Repeat(" ", gap) + right)
}
