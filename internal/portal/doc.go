// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package portal provides the REST client for the Play With CK8S backend.
//
// The backend provisions a per-user Rancher user and project. This package
// talks to it over four session endpoints plus two read-only helpers.
// Identity is a static UserDN header value that the client treats as opaque.
//
// # Key Types
//
//   - Client: HTTP client bound to one server URL and one UserDN
//   - User: the session record returned by /api/v1/user
//   - Project: the sandbox project returned by /api/v1/project
//   - RequestError: a failed request with its HTTP status
//
// # Usage
//
//	client := portal.NewClient(cfg.Server.URL, cfg.Identity.UserDN)
//	user, err := client.GetUser(ctx)
//	switch {
//	case errors.Is(err, portal.ErrUnauthorized):
//	    // identity rejected
//	case errors.Is(err, portal.ErrUnavailable):
//	    // backend down or in maintenance
//	}
//
// # Failure Policy
//
// Requests are never retried. A single failure is reported to the caller
// as-is. Requests are paced by a token bucket so a user hammering keys
// cannot flood the backend.
package portal
