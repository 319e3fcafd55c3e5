// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MODAL TESTS
// =============================================================================

func TestModalWidth(t *testing.T) {
	tests := []struct {
		screen int
		want   int
	}{
		{0, 52},
		{30, 40},
		{60, 52},
		{200, 60},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ModalWidth(tt.screen), "screen width %d", tt.screen)
	}
}

func TestRenderModal_Content(t *testing.T) {
	out := RenderModal(Modal{
		Title: "PWCK8S Maintenance Mode",
		Lines: []string{"We're currently performing scheduled maintenance.", "Please check back later."},
		Hint:  "Press r to reload",
		Tone:  ToneWarning,
	}, 80, 24)

	assert.Contains(t, out, "[!] PWCK8S Maintenance Mode")
	assert.Contains(t, out, "Please check back later.")
	assert.Contains(t, out, "Press r to reload")
	assert.Equal(t, 24, lipgloss.Height(out))
}

func TestRenderBox_ToneIndicator(t *testing.T) {
	assert.Contains(t, RenderBox(Modal{Title: "Unable To Authenticate With PKI", Tone: ToneError}, 80), "[X]")
	assert.Contains(t, RenderBox(Modal{Title: "Provisioning...", Tone: ToneInfo}, 80), "[i]")
}

func TestRenderBox_LongTitleIsTruncated(t *testing.T) {
	box := RenderBox(Modal{Title: strings.Repeat("x", 200)}, 80)
	assert.LessOrEqual(t, lipgloss.Width(box), ModalWidth(80)+2)
}

// =============================================================================
// TOAST TESTS
// =============================================================================

func TestToastManager_AddAndPrune(t *testing.T) {
	m := NewToastManager()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	first := m.Add(ToastKindStatus, "Configuration reloaded", start)
	second := m.Add(ToastKindSuccess, "Dashboard URL copied", start.Add(time.Second))
	assert.NotEqual(t, first, second)

	toasts := m.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, second, toasts[0].ID, "newest first")

	assert.True(t, m.Prune(start.Add(DefaultToastDuration)))
	assert.Equal(t, 1, m.Len())

	assert.False(t, m.Prune(start.Add(time.Second+DefaultToastDuration)))
	assert.Zero(t, m.Len())
}

func TestToastManager_CapsVisible(t *testing.T) {
	m := NewToastManager()
	now := time.Now()
	for i := 0; i < 10; i++ {
		m.Add(ToastKindWarning, "config reload failed", now)
	}
	assert.Equal(t, 3, m.Len())
}

func TestRenderToastStack(t *testing.T) {
	assert.Empty(t, RenderToastStack(nil, 80))

	out := RenderToastStack([]Toast{
		{ID: 1, Message: "Opened dashboard", Kind: ToastKindSuccess},
		{ID: 2, Message: "config reload failed", Kind: ToastKindWarning},
	}, 80)
	assert.Contains(t, out, "[OK] Opened dashboard")
	assert.Contains(t, out, "[!] config reload failed")
}

// =============================================================================
// SPINNER AND STATUS BAR TESTS
// =============================================================================

func TestSpinner_View(t *testing.T) {
	s := NewSpinner()
	s.SetMessage("Checking session...")
	assert.Equal(t, "Checking session...", s.Message())
	assert.Contains(t, s.View(), "Checking session...")
	assert.NotNil(t, s.Start())
}

func TestStatusBar_View(t *testing.T) {
	wide := StatusBar{Width: 100, Identity: "wawrig2", Server: "https://pwck8s.example.com", State: "LOGGED IN"}.View()
	assert.Contains(t, wide, "wawrig2")
	assert.Contains(t, wide, "pwck8s.example.com")
	assert.Contains(t, wide, "LOGGED IN")

	narrow := StatusBar{Width: 40, Identity: "wawrig2", Server: "https://pwck8s.example.com", State: "LOGGED IN"}.View()
	assert.NotContains(t, narrow, "pwck8s.example.com")
	assert.Contains(t, narrow, "wawrig2")
}
