// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the pwck8s TUI.

All colors use Lip Gloss AdaptiveColor for automatic light/dark terminal
detection.

# Color System (colors.go)

  - Cyan - Brand color, titles and key hints
  - Emerald - Active session, success toasts
  - Amber - Provisioning and maintenance popups
  - Rose - Authentication failures and expired sessions

Status messages always carry an ASCII indicator ([OK], [X], [!], [i]) so
that meaning does not depend on color alone.

# Theme (theme.go)

Theme bundles the composed lipgloss styles the widget renders with,
including the enabled and disabled looks of its controls.
*/
package styles
