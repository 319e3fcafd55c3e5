// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error variables for the failure taxonomy surfaced to callers.
var (
	// ErrUnauthorized indicates the backend rejected the UserDN (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUnavailable indicates the backend could not be reached or answered
	// with a server error. The widget treats this as maintenance mode.
	ErrUnavailable = errors.New("service unavailable")

	// ErrNotFound indicates the backend has no record for the UserDN.
	ErrNotFound = errors.New("not found")

	// ErrUnexpectedStatus indicates a response status the endpoint does not
	// define as success.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// RequestError describes one failed request.
type RequestError struct {
	Op        string // e.g. "GET /api/v1/user"
	Status    int    // 0 when no response was received
	Body      string // trimmed response body, if any
	RequestID string
	Err       error // one of the sentinel errors above, or a transport error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.Status)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	return b.String()
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// classifyStatus maps a non-success HTTP status to a sentinel error.
func classifyStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized:
		return ErrUnauthorized
	case status == http.StatusNotFound:
		return ErrNotFound
	case status >= 500:
		return ErrUnavailable
	default:
		return ErrUnexpectedStatus
	}
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Status
	}
	return 0
}
