// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/william86370/pwck8s/internal/ui/styles"
	"github.com/william86370/pwck8s/internal/util"
)

// Modal width bounds.
const (
	modalMinWidth = 40
	modalMaxWidth = 60
)

// Tone selects the modal accent color and title indicator.
type Tone int

const (
	ToneInfo Tone = iota
	ToneWarning
	ToneError
)

// Modal is the content of a centered popup.
type Modal struct {
	Title string
	Lines []string
	// Hint is rendered muted under the body, e.g. "Press r to reload".
	Hint string
	Tone Tone
}

func (t Tone) color() lipgloss.AdaptiveColor {
	switch t {
	case ToneError:
		return styles.Rose
	case ToneWarning:
		return styles.Amber
	default:
		return styles.Cyan
	}
}

func (t Tone) indicator() string {
	switch t {
	case ToneError:
		return styles.StatusIndicators.Error
	case ToneWarning:
		return styles.StatusIndicators.Warning
	default:
		return styles.StatusIndicators.Info
	}
}

// ModalWidth returns the box width used for a screen of the given width.
func ModalWidth(screenWidth int) int {
	if screenWidth == 0 {
		screenWidth = modalMaxWidth
	}
	w := screenWidth - 8
	if w < modalMinWidth {
		w = modalMinWidth
	}
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	return w
}

// RenderBox renders the modal box without placing it on screen.
func RenderBox(m Modal, screenWidth int) string {
	maxWidth := ModalWidth(screenWidth)
	inner := maxWidth - 8 // border + padding

	titleStyle := lipgloss.NewStyle().
		Foreground(m.Tone.color()).
		Bold(true)
	title := util.TruncateWidth(m.Tone.indicator()+" "+m.Title, inner)

	parts := []string{titleStyle.Render(title)}

	if len(m.Lines) > 0 {
		parts = append(parts, "")
		msgStyle := lipgloss.NewStyle().
			Foreground(styles.TextPrimary).
			Width(inner).
			Align(lipgloss.Center)
		for _, line := range m.Lines {
			parts = append(parts, msgStyle.Render(line))
		}
	}

	if m.Hint != "" {
		parts = append(parts, "")
		hintStyle := lipgloss.NewStyle().
			Foreground(styles.TextSecondary).
			Italic(true).
			Align(lipgloss.Center)
		parts = append(parts, hintStyle.Render(m.Hint))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, parts...)

	return lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(m.Tone.color()).
		Padding(1, 3).
		Width(maxWidth).
		Align(lipgloss.Center).
		Render(content)
}

// RenderModal renders m centered on a width x height screen.
func RenderModal(m Modal, width, height int) string {
	if width == 0 {
		width = modalMaxWidth
	}
	if height == 0 {
		height = 24
	}
	return lipgloss.Place(
		width, height,
		lipgloss.Center, lipgloss.Center,
		RenderBox(m, width),
		lipgloss.WithWhitespaceBackground(styles.SurfaceDim),
	)
}
