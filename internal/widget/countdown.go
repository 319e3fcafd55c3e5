// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ExpiredText is shown once the session expiration has passed.
const ExpiredText = "EXPIRED"

// HMS splits d, truncated to whole seconds, into hours, minutes and
// seconds. Hours are not wrapped at 24. Negative durations yield zeros.
func HMS(d time.Duration) (hours, minutes, seconds int64) {
	if d < 0 {
		return 0, 0, 0
	}
	total := int64(d / time.Second)
	return total / 3600, (total % 3600) / 60, total % 60
}

// FormatRemaining renders d as "Hh Mm Ss", or ExpiredText when negative.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		return ExpiredText
	}
	h, m, s := HMS(d)
	return fmt.Sprintf("%dh %dm %ds", h, m, s)
}

// TickMsg is one countdown tick. Gen identifies the chain that produced it.
type TickMsg struct {
	Gen  int
	Time time.Time
}

// Countdown renders the time left until an expiration. Each Start or Stop
// bumps the generation, and ticks from an older generation are ignored, so
// at most one tick chain is ever live.
type Countdown struct {
	expiration time.Time
	interval   time.Duration
	gen        int
	running    bool
	text       string
}

// NewCountdown creates a stopped countdown that ticks every interval.
func NewCountdown(interval time.Duration) Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return Countdown{interval: interval}
}

// Start replaces any running countdown with one targeting expiration.
// It returns the first tick, or nil if expiration has already passed.
func (c *Countdown) Start(expiration, now time.Time) tea.Cmd {
	c.gen++
	c.expiration = expiration
	c.running = true
	return c.render(now)
}

// Stop cancels the countdown and clears its text.
func (c *Countdown) Stop() {
	c.gen++
	c.running = false
	c.text = ""
}

// Update handles a tick. Stale or post-expiry ticks return nil and leave
// the text unchanged.
func (c *Countdown) Update(msg TickMsg) tea.Cmd {
	if !c.running || msg.Gen != c.gen {
		return nil
	}
	return c.render(msg.Time)
}

func (c *Countdown) render(now time.Time) tea.Cmd {
	remaining := c.expiration.Sub(now)
	c.text = FormatRemaining(remaining)
	if remaining < 0 {
		c.running = false
		return nil
	}
	return c.tick()
}

func (c *Countdown) tick() tea.Cmd {
	gen := c.gen
	return tea.Tick(c.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// SetInterval changes the granularity of subsequent ticks.
func (c *Countdown) SetInterval(interval time.Duration) {
	if interval > 0 {
		c.interval = interval
	}
}

// Running reports whether a tick chain is live.
func (c Countdown) Running() bool { return c.running }

// Expired reports whether the countdown reached its expiration.
func (c Countdown) Expired() bool { return c.text == ExpiredText }

// Generation identifies the current tick chain.
func (c Countdown) Generation() int { return c.gen }

// Expiration returns the current target time.
func (c Countdown) Expiration() time.Time { return c.expiration }

// View returns the rendered remaining time, empty when stopped.
func (c Countdown) View() string { return c.text }
