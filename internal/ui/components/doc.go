// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides reusable UI components for the pwck8s TUI.

Each component is built on Bubble Tea and Lip Gloss and styled from the
styles package.

# Components

  - Modal (modal.go) - The single centered popup renderer. Every popup the
    widget shows, blocking or timed, goes through RenderModal.
  - ToastManager (toast.go) - Non-blocking notifications in the bottom-right
    corner that dismiss themselves.
  - Spinner (spinner.go) - ASCII spinner with a message, shown while a
    request is in flight.
  - StatusBar (statusbar.go) - One-line footer with server and identity.
*/
package components
