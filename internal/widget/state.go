// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

// State is the display state of the widget.
type State int

const (
	// StateChecking is the initial state while GET /api/v1/user is in flight.
	StateChecking State = iota
	StateLoggedOut
	StateProvisioning
	StateLoggedIn
	StateDeleting
	// StateUnauthorized is terminal until reload.
	StateUnauthorized
	// StateUnavailable is terminal until reload.
	StateUnavailable
)

// String returns the badge text for the state.
func (s State) String() string {
	switch s {
	case StateChecking:
		return "CHECKING"
	case StateLoggedOut:
		return "LOGGED OUT"
	case StateProvisioning:
		return "PROVISIONING"
	case StateLoggedIn:
		return "LOGGED IN"
	case StateDeleting:
		return "DELETING"
	case StateUnauthorized:
		return "UNAUTHORIZED"
	case StateUnavailable:
		return "UNAVAILABLE"
	default:
		return "UNKNOWN"
	}
}

// Terminal reports whether only a reload can leave the state.
func (s State) Terminal() bool {
	return s == StateUnauthorized || s == StateUnavailable
}

// Busy reports whether a request the user started is outstanding.
func (s State) Busy() bool {
	return s == StateChecking || s == StateProvisioning || s == StateDeleting
}
