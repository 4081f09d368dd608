package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/promptpilot/promptpilot-go/auth"
)

func authedRequest(t *testing.T, mw func(http.Handler) http.Handler, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotUserID string
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/user", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, gotUserID
}

func errorField(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuth(t *testing.T) {
	issuer := auth.NewTokenIssuer("test-secret")
	mw := RequireAuth(issuer)

	t.Run("missing header", func(t *testing.T) {
		rec, _ := authedRequest(t, mw, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Authorization token is required", errorField(t, rec))
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := issuer.Issue("user-123", auth.PurposeSession, -time.Minute)
		require.NoError(t, err)

		rec, _ := authedRequest(t, mw, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Token expired", errorField(t, rec))
	})

	t.Run("malformed token", func(t *testing.T) {
		rec, _ := authedRequest(t, mw, "Bearer not.a.token")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid token", errorField(t, rec))
	})

	t.Run("reset-handoff token rejected", func(t *testing.T) {
		token, err := issuer.Issue("user-123", auth.PurposeReset, auth.ResetTokenTTL)
		require.NoError(t, err)

		rec, _ := authedRequest(t, mw, "Bearer "+token)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "Invalid token", errorField(t, rec))
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := issuer.Issue("user-123", auth.PurposeSession, auth.SessionTokenTTL)
		require.NoError(t, err)

		rec, userID := authedRequest(t, mw, "Bearer "+token)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "user-123", userID)
	})
}
