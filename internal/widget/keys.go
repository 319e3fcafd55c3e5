// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the widget controls. A disabled binding never matches, so
// disabling one is how a control is greyed out.
type KeyMap struct {
	Login  key.Binding
	Logout key.Binding
	Open   key.Binding
	Copy   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings, all enabled.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Login: key.NewBinding(
			key.WithKeys("l", "enter"),
			key.WithHelp("l", "login"),
		),
		Logout: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "close session"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open dashboard"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy URL"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r", "f5"),
			key.WithHelp("r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Controls returns the session controls, excluding reload and quit.
func (k KeyMap) Controls() []key.Binding {
	return []key.Binding{k.Login, k.Logout, k.Open, k.Copy}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Login, k.Logout, k.Open, k.Copy, k.Reload, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.Controls(), {k.Reload, k.Quit}}
}

// applyState enables exactly the controls that make sense in s.
// Reload stays available everywhere except while a request is in flight.
func (k *KeyMap) applyState(s State, hasDashboard bool) {
	k.Login.SetEnabled(s == StateLoggedOut)
	k.Logout.SetEnabled(s == StateLoggedIn)
	k.Open.SetEnabled(s == StateLoggedIn && hasDashboard)
	k.Copy.SetEnabled(s == StateLoggedIn && hasDashboard)
	k.Reload.SetEnabled(!s.Busy())
	k.Quit.SetEnabled(true)
}
