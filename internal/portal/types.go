// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import "time"

// User is the session record the backend keeps for one UserDN.
type User struct {
	UserID         string    `json:"userId"`
	DisplayName    string    `json:"displayName"`
	PrincipalIDs   []string  `json:"principalIds"`
	UserDN         string    `json:"userDn"`
	CreationTime   time.Time `json:"creationTime"`
	ExpirationTime time.Time `json:"expirationTime"`
}

// HasSession reports whether the record names an actual user.
// The backend encodes "no user" as an empty userId.
func (u *User) HasSession() bool {
	return u != nil && u.UserID != ""
}

// Remaining returns the time left until expiration relative to now.
// Negative values mean the session has already expired.
func (u *User) Remaining(now time.Time) time.Duration {
	return u.ExpirationTime.Sub(now)
}

// Project is the sandbox project provisioned alongside the user.
type Project struct {
	ProjectID      string            `json:"projectId"`
	ClusterID      string            `json:"clusterId"`
	DisplayName    string            `json:"displayName"`
	Resources      map[string]string `json:"resources"`
	CreationTime   time.Time         `json:"creationTime"`
	ExpirationTime time.Time         `json:"expirationTime"`
	OwnerDN        string            `json:"ownerDn"`
}
