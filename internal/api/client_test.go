package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"deloconnect/internal/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv, NewClientWith(srv.URL, "test-token", 5*time.Second)
}

func TestNoTokenFailsBeforeRequest(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	c := NewClientWith(srv.URL, "", 5*time.Second)
	_, err := c.ListSessions(context.Background())
	require.ErrorIs(t, err, ErrNoToken)
	assert.Zero(t, hits.Load(), "no REST call may be issued without a token")
}

func TestBearerHeaderAndDecode(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "/admin/sessions", r.URL.Path)
		json.NewEncoder(w).Encode([]types.Session{{SessionID: "S1", ChatID: "C1", Status: types.SessionActive}})
	})

	sessions, err := c.ListSessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "C1", sessions[0].ChatID)
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	for _, code := range []int{401, 403} {
		_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
			json.NewEncoder(w).Encode(map[string]string{"message": "token expired"})
		})
		_, err := c.Profile(context.Background())
		require.ErrorIs(t, err, ErrUnauthorized, "status %d", code)

		var se *StatusError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "token expired", se.Message)
	}
}

func TestNotFoundMapsToSentinel(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	_, err := c.ChainDetails(context.Background(), "CH404")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestMalformedBodyIsAnError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{this is not json"))
	})
	_, err := c.GetChatHistory(context.Background(), "C1")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

func TestFetchSessionBucketsCombinesAllThree(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var out []types.Session
		switch r.URL.Path {
		case "/admin/sessions/active":
			out = []types.Session{{SessionID: "A1", Status: types.SessionActive}}
		case "/admin/sessions/pending":
			out = []types.Session{{SessionID: "P1", Status: types.SessionPending}}
		case "/admin/sessions/completed":
			out = []types.Session{{SessionID: "D1", Status: types.SessionCompleted}, {SessionID: "D2", Status: types.SessionCompleted}}
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(out)
	})

	buckets, err := c.FetchSessionBuckets(context.Background())
	require.NoError(t, err)
	assert.Len(t, buckets.Active, 1)
	assert.Len(t, buckets.Pending, 1)
	assert.Len(t, buckets.Completed, 2)
}

func TestFetchSessionBucketsPropagatesFirstError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/admin/sessions/pending" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]types.Session{})
	})
	_, err := c.FetchSessionBuckets(context.Background())
	require.Error(t, err)
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 500, se.StatusCode)
}

func TestSessionActionPostsNotes(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/sessions/S1/escalate", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "needs HR attention", body["notes"])
		w.WriteHeader(http.StatusOK)
	})
	require.NoError(t, c.SessionAction(context.Background(), "S1", ActionEscalate, "needs HR attention"))
}

func TestSessionActionRejectsUnknownAction(t *testing.T) {
	c := NewClientWith("http://unused.example", "tok", time.Second)
	err := c.SessionAction(context.Background(), "S1", Action("archive"), "")
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrNoToken))
}

func TestContextCancellationAbortsStalledFetch(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := NewClientWith(srv.URL, "tok", time.Minute)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.ListUsers(ctx)
	require.Error(t, err)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
