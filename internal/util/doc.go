// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by the pwck8s packages.
//
// # Key Functions
//
//   - TruncateWidth: display-width aware truncation with ellipsis
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - OpenURL: hand a URL to the system browser
//   - CopyToClipboard: put text on the system clipboard
package util
