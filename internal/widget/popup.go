// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"time"

	"github.com/william86370/pwck8s/internal/ui/components"
)

// PopupKind identifies which popup is showing.
type PopupKind int

const (
	PopupUnauthorized PopupKind = iota + 1
	PopupMaintenance
	PopupProvisioning
	PopupDeleting
)

// DismissPolicy says how a popup goes away.
type DismissPolicy int

const (
	// DismissManual popups stay until the user reloads.
	DismissManual DismissPolicy = iota
	// DismissTimed popups close after their Duration.
	DismissTimed
)

// Popup is one modal shown over the widget.
type Popup struct {
	ID       int
	Kind     PopupKind
	Title    string
	Lines    []string
	Hint     string
	Tone     components.Tone
	Policy   DismissPolicy
	Duration time.Duration
	// Blocking popups disable every control except reload.
	Blocking bool
}

// Popup texts.
const (
	unauthorizedTitle = "Unable To Authenticate With PKI"
	maintenanceTitle  = "PWCK8S Maintenance Mode"
	provisioningTitle = "Provisioning..."
	deletingTitle     = "Deleting..."
	reloadHint        = "Press r to reload"
)

func unauthorizedPopup() Popup {
	return Popup{
		Kind:     PopupUnauthorized,
		Title:    unauthorizedTitle,
		Lines:    []string{"Your identity was not accepted by the portal."},
		Hint:     reloadHint,
		Tone:     components.ToneError,
		Policy:   DismissManual,
		Blocking: true,
	}
}

func maintenancePopup() Popup {
	return Popup{
		Kind:     PopupMaintenance,
		Title:    maintenanceTitle,
		Lines:    []string{"We're currently performing scheduled maintenance.", "Please check back later."},
		Hint:     reloadHint,
		Tone:     components.ToneWarning,
		Policy:   DismissManual,
		Blocking: true,
	}
}

func provisioningPopup(d time.Duration) Popup {
	return Popup{
		Kind:     PopupProvisioning,
		Title:    provisioningTitle,
		Lines:    []string{"Creating your user and sandbox project."},
		Tone:     components.ToneInfo,
		Policy:   DismissTimed,
		Duration: d,
	}
}

func deletingPopup(d time.Duration) Popup {
	return Popup{
		Kind:     PopupDeleting,
		Title:    deletingTitle,
		Lines:    []string{"Tearing down your session."},
		Tone:     components.ToneInfo,
		Policy:   DismissTimed,
		Duration: d,
	}
}

// Modal converts the popup into renderable content.
func (p Popup) Modal() components.Modal {
	return components.Modal{
		Title: p.Title,
		Lines: p.Lines,
		Hint:  p.Hint,
		Tone:  p.Tone,
	}
}
