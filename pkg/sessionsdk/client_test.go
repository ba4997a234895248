package sessionsdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foliodesk/folio/pkg/sessionsdk"
	"github.com/stretchr/testify/require"
)

func TestLoginCapturesCookie(t *testing.T) {
	var sawCookie string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "folio_session", Value: "tok-1", Path: "/"})
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":"u1","username":"alice","role":"user"}`))
	})
	mux.HandleFunc("GET /v1/auth/me", func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("folio_session")
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		sawCookie = cookie.Value
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"userId":"u1","username":"alice","role":"user"}`))
	})

	srv := httptest.NewServer(mux)
	defer srv.Close()

	client, err := sessionsdk.NewClient(srv.URL)
	require.NoError(t, err)

	sess, err := client.Login(context.Background(), "alice", "password")
	require.NoError(t, err)
	require.Equal(t, "u1", sess.UserID)

	me, err := client.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "alice", me.Username)
	require.Equal(t, "tok-1", sawCookie)
}

func TestLoginError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid_credentials","error_description":"Unknown username or wrong password"}`))
	}))
	defer srv.Close()

	client, err := sessionsdk.NewClient(srv.URL)
	require.NoError(t, err)

	_, err = client.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	var apiErr *sessionsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "invalid_credentials", apiErr.Code)
}

func TestRefreshParsesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"refreshed":true,"reason":"rotated","timeLeftSec":1800,"userId":"u1","role":"user"}`))
	}))
	defer srv.Close()

	client, err := sessionsdk.NewClient(srv.URL)
	require.NoError(t, err)

	out, err := client.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, out.Refreshed)
	require.Equal(t, sessionsdk.ReasonRotated, out.Reason)
	require.EqualValues(t, 1800, out.TimeLeftSec)
	require.False(t, out.SessionEnded())
}

func TestRefreshLegacyNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := sessionsdk.NewClient(srv.URL)
	require.NoError(t, err)

	out, err := client.Refresh(context.Background())
	require.NoError(t, err)
	require.False(t, out.Refreshed)
	require.Equal(t, sessionsdk.ReasonNotNeeded, out.Reason)
}

func TestRefreshSessionEnded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"refreshed":false,"reason":"absolute_lifetime_exceeded","ageSec":43200,"maxSec":43200}`))
	}))
	defer srv.Close()

	client, err := sessionsdk.NewClient(srv.URL)
	require.NoError(t, err)

	out, err := client.Refresh(context.Background())
	require.NoError(t, err)
	require.True(t, out.SessionEnded())
	require.EqualValues(t, 43200, out.MaxSec)
}

func TestLogout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client, err := sessionsdk.NewClient(srv.URL)
	require.NoError(t, err)
	require.NoError(t, client.Logout(context.Background()))
}

func TestClientTimeoutIsBounded(t *testing.T) {
	client, err := sessionsdk.NewClient("http://example.invalid")
	require.NoError(t, err)
	require.LessOrEqual(t, client.HTTPClient.Timeout, 30*time.Second)
}
