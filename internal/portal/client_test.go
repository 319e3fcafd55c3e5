// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package portal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// idle keep-alive connections of httptest clients
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// =============================================================================
// TEST HELPERS
// =============================================================================

// recordedRequest captures what the fake backend saw.
type recordedRequest struct {
	Method    string
	Path      string
	UserDN    string
	RequestID string
}

type fakeBackend struct {
	mu       sync.Mutex
	requests []recordedRequest
	server   *httptest.Server
}

func newFakeBackend(t *testing.T, handler http.HandlerFunc) *fakeBackend {
	t.Helper()
	fb := &fakeBackend{}
	fb.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fb.mu.Lock()
		fb.requests = append(fb.requests, recordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			UserDN:    r.Header.Get(HeaderUserDN),
			RequestID: r.Header.Get(HeaderRequestID),
		})
		fb.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(fb.server.Close)
	return fb
}

func (fb *fakeBackend) client(userDN string) *Client {
	return NewClient(fb.server.URL, userDN).
		WithHTTPClient(fb.server.Client()).
		WithRateLimit(0, 0)
}

func (fb *fakeBackend) recorded() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	out := make([]recordedRequest, len(fb.requests))
	copy(out, fb.requests)
	return out
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func fixtureUser(userDN string) User {
	now := time.Now().UTC().Truncate(time.Second)
	return User{
		UserID:         "pwck8s-" + gofakeit.LetterN(5),
		DisplayName:    userDN,
		PrincipalIDs:   []string{"local://" + userDN},
		UserDN:         userDN,
		CreationTime:   now,
		ExpirationTime: now.Add(24 * time.Hour),
	}
}

// =============================================================================
// SESSION ENDPOINT TESTS
// =============================================================================

func TestClient_GetUser_SendsIdentity(t *testing.T) {
	userDN := gofakeit.Username()
	want := fixtureUser(userDN)
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, want)
	})

	got, err := fb.client(userDN).GetUser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.UserID, got.UserID)
	assert.True(t, want.ExpirationTime.Equal(got.ExpirationTime))
	assert.True(t, got.HasSession())

	reqs := fb.recorded()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodGet, reqs[0].Method)
	assert.Equal(t, "/api/v1/user", reqs[0].Path)
	assert.Equal(t, userDN, reqs[0].UserDN)
	assert.NotEmpty(t, reqs[0].RequestID)
}

func TestClient_GetUser_EmptySession(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, User{})
	})

	got, err := fb.client("wawrig2").GetUser(context.Background())
	require.NoError(t, err)
	assert.False(t, got.HasSession())
}

func TestClient_GetUser_Unauthorized(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "UserDN not found", http.StatusUnauthorized)
	})

	_, err := fb.client("").GetUser(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, http.StatusUnauthorized, StatusOf(err))
	assert.Contains(t, err.Error(), "UserDN not found")
}

func TestClient_GetUser_ServerError(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "failed to list users", http.StatusInternalServerError)
	})

	_, err := fb.client("wawrig2").GetUser(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
}

func TestClient_GetUser_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := NewClient(url, "wawrig2").WithRateLimit(0, 0).WithTimeout(time.Second)
	_, err := client.GetUser(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Zero(t, StatusOf(err))
}

func TestClient_GetUser_MalformedBody(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("not json"))
	})

	_, err := fb.client("wawrig2").GetUser(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestClient_CreateUser_Requires201(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "created", status: http.StatusCreated},
		{name: "ok is not created", status: http.StatusOK, wantErr: ErrUnexpectedStatus},
		{name: "conflict", status: http.StatusConflict, wantErr: ErrUnexpectedStatus},
		{name: "server error", status: http.StatusInternalServerError, wantErr: ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				writeJSON(t, w, tt.status, fixtureUser("wawrig2"))
			})

			user, err := fb.client("wawrig2").CreateUser(context.Background())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.True(t, user.HasSession())
		})
	}
}

func TestClient_DeleteUser_Any2xx(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusAccepted, http.StatusNoContent} {
		fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(status)
		})
		assert.NoError(t, fb.client("wawrig2").DeleteUser(context.Background()), "status %d", status)
	}

	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "User does not exist", http.StatusNotFound)
	})
	err := fb.client("wawrig2").DeleteUser(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_CreateProject(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/project", r.URL.Path)
		writeJSON(t, w, http.StatusCreated, Project{
			ProjectID: "p-abcde",
			ClusterID: "local",
			OwnerDN:   r.Header.Get(HeaderUserDN),
			Resources: map[string]string{"pods": "15"},
		})
	})

	project, err := fb.client("wawrig2").CreateProject(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "p-abcde", project.ProjectID)
	assert.Equal(t, "wawrig2", project.OwnerDN)
	assert.Equal(t, "15", project.Resources["pods"])
}

func TestClient_Health(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})
	require.NoError(t, fb.client("wawrig2").Health(context.Background()))

	bad := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("starting"))
	})
	assert.ErrorIs(t, bad.client("wawrig2").Health(context.Background()), ErrUnavailable)
}

func TestClient_RequestIDsAreUnique(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, User{})
	})
	client := fb.client("wawrig2")

	for i := 0; i < 5; i++ {
		_, err := client.GetUser(context.Background())
		require.NoError(t, err)
	}

	seen := make(map[string]bool)
	for _, r := range fb.recorded() {
		assert.False(t, seen[r.RequestID], "duplicate request id %s", r.RequestID)
		seen[r.RequestID] = true
	}
}

func TestClient_CanceledContextIsNotUnavailable(t *testing.T) {
	fb := newFakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, User{})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fb.client("wawrig2").GetUser(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("http://portal.local:8080/", "wawrig2")
	assert.Equal(t, "http://portal.local:8080", client.BaseURL())
	assert.Equal(t, "wawrig2", client.UserDN())
}

func TestUser_Remaining(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	u := &User{UserID: "pwck8s-abcde", ExpirationTime: now.Add(90 * time.Minute)}
	assert.Equal(t, 90*time.Minute, u.Remaining(now))
	assert.Negative(t, int64(u.Remaining(now.Add(2*time.Hour))))

	var missing *User
	assert.False(t, missing.HasSession())
}
