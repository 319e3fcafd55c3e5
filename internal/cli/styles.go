// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/william86370/pwck8s/internal/ui/styles"
)

func init() {
	lipgloss.SetColorProfile(GetColorProfile())
}

// Styles for non-interactive output.
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(styles.Cyan).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Width(12)

	ValueStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(styles.TextMuted)
)

// field renders one "label  value" line.
func field(label, value string) string {
	return LabelStyle.Render(label) + " " + ValueStyle.Render(value)
}
