// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/william86370/pwck8s/internal/ui/styles"
)

// Spinner is an ASCII loading spinner with a message.
type Spinner struct {
	spinner spinner.Model
	message string
}

// NewSpinner creates a line spinner.
func NewSpinner() Spinner {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"|", "/", "-", "\\"},
		FPS:    time.Second / 10,
	}
	s.Style = lipgloss.NewStyle().Foreground(styles.Purple)
	return Spinner{spinner: s}
}

// SetMessage sets the text shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.message = msg
}

// Message returns the current text.
func (s Spinner) Message() string {
	return s.message
}

// Start returns the command that begins the animation.
func (s Spinner) Start() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the animation.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return s, cmd
}

// View renders the spinner frame followed by the message.
func (s Spinner) View() string {
	if s.message == "" {
		return s.spinner.View()
	}
	msgStyle := lipgloss.NewStyle().Foreground(styles.TextSecondary)
	return s.spinner.View() + " " + msgStyle.Render(s.message)
}
