package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/authkit/pkg/apiclient"
	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/refresh"
	"github.com/stocklane/authkit/svc/auth"
)

// backend is a minimal stand-in for the REST API: token issuance, renewal and
// a couple of authenticated endpoints.
type backend struct {
	t           *testing.T
	failRenewal bool
}

func accessToken(t *testing.T, username string, exp time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    "42",
		"username":   username,
		"email":      username + "@example.com",
		"first_name": "Jane",
		"last_name":  "Doe",
		"is_admin":   false,
		"exp":        exp.Unix(),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/token/", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		require.NoError(b.t, json.NewDecoder(r.Body).Decode(&creds))
		if creds["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"no active account found with the given credentials"}`))
			return
		}
		writeJSON(w, map[string]string{
			"access":  accessToken(b.t, creds["username"], time.Now().Add(time.Hour)),
			"refresh": "refresh-1",
		})
	})

	mux.HandleFunc("POST /api/token/refresh/", func(w http.ResponseWriter, r *http.Request) {
		if b.failRenewal {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"refresh token expired"}`))
			return
		}
		writeJSON(w, map[string]string{
			"access": accessToken(b.t, "jdoe", time.Now().Add(time.Hour)),
		})
	})

	mux.HandleFunc("PUT /api/users/me/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var update map[string]string
		require.NoError(b.t, json.NewDecoder(r.Body).Decode(&update))
		writeJSON(w, map[string]any{
			"id":         "42",
			"username":   "jdoe",
			"email":      update["email"],
			"first_name": "Jane",
			"last_name":  "Doe",
			"is_admin":   false,
		})
	})

	mux.HandleFunc("POST /api/users/change-password/", func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		require.NoError(b.t, json.NewDecoder(r.Body).Decode(&payload))
		if payload["old_password"] != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"old password does not match"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type fixture struct {
	svc    *auth.Service
	tokens *credentials.Tokens
	srv    *httptest.Server
}

func newFixture(t *testing.T, b *backend) fixture {
	t.Helper()
	srv := httptest.NewServer(b.handler())
	t.Cleanup(srv.Close)

	cfg := apiclient.DefaultConfig()
	cfg.BaseURL = srv.URL

	tokens := credentials.NewTokens(credentials.NewMemoryStore(), credentials.DefaultConfig())
	coord := refresh.New(apiclient.NewRenewer(cfg), tokens)
	client := apiclient.New(cfg, tokens, coord)

	return fixture{
		svc:    auth.New(client, tokens, coord, auth.DefaultConfig()),
		tokens: tokens,
		srv:    srv,
	}
}

func TestService_LoginThenCurrentUser(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	user, err := f.svc.Login(context.Background(), auth.Credentials{Username: "jdoe", Password: "correct"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "42", user.ID)
	assert.Equal(t, "jdoe", user.Username)
	assert.Equal(t, "jdoe@example.com", user.Email)

	current := f.svc.CurrentUser(context.Background())
	require.NotNil(t, current)
	assert.Equal(t, user, current, "login and current-user must agree on identity")

	_, ok := f.tokens.Access()
	assert.True(t, ok)
	refreshToken, ok := f.tokens.Refresh()
	require.True(t, ok)
	assert.Equal(t, "refresh-1", refreshToken)
}

func TestService_LoginFailurePropagates(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	_, err := f.svc.Login(context.Background(), auth.Credentials{Username: "jdoe", Password: "wrong"})
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "no active account found with the given credentials", apiErr.Message)

	_, ok := f.tokens.Access()
	assert.False(t, ok, "a failed login must not store tokens")
}

func TestService_LogoutIdempotent(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	_, err := f.svc.Login(context.Background(), auth.Credentials{Username: "jdoe", Password: "correct"})
	require.NoError(t, err)

	f.svc.Logout()
	f.svc.Logout()

	_, ok := f.tokens.Access()
	assert.False(t, ok)
	_, ok = f.tokens.Refresh()
	assert.False(t, ok)
	assert.Nil(t, f.svc.CurrentUser(context.Background()))
}

func TestService_CurrentUserWithoutSession(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	assert.Nil(t, f.svc.CurrentUser(context.Background()))
}

func TestService_CurrentUserUndecodableToken(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	f.tokens.SetPair("garbage-not-a-jwt", "refresh-1")

	assert.NotPanics(t, func() {
		assert.Nil(t, f.svc.CurrentUser(context.Background()))
	})
}

func TestService_CurrentUserRenewsExpiredToken(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	expired := accessToken(t, "jdoe", time.Now().Add(-time.Minute))
	f.tokens.SetPair(expired, "refresh-1")

	user := f.svc.CurrentUser(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "jdoe", user.Username)

	access, ok := f.tokens.Access()
	require.True(t, ok)
	assert.NotEqual(t, expired, access, "the renewed token must replace the expired one")
}

func TestService_CurrentUserRenewalFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t, failRenewal: true})

	expired := accessToken(t, "jdoe", time.Now().Add(-time.Minute))
	f.tokens.SetPair(expired, "refresh-1")

	assert.Nil(t, f.svc.CurrentUser(context.Background()))

	_, ok := f.tokens.Access()
	assert.False(t, ok, "a failed renewal logs the user out")
}

func TestService_RefreshTokenWithoutRefreshToken(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	f.tokens.SetAccess("some-access")

	assert.Empty(t, f.svc.RefreshToken(context.Background()))
	_, ok := f.tokens.Access()
	assert.False(t, ok, "failure to renew must clear the session")
}

func TestService_UpdateProfile(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	_, err := f.svc.Login(context.Background(), auth.Credentials{Username: "jdoe", Password: "correct"})
	require.NoError(t, err)

	user, err := f.svc.UpdateProfile(context.Background(), auth.ProfileUpdate{Email: "new@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", user.Email)
}

func TestService_ChangePasswordRejection(t *testing.T) {
	t.Parallel()
	f := newFixture(t, &backend{t: t})

	_, err := f.svc.Login(context.Background(), auth.Credentials{Username: "jdoe", Password: "correct"})
	require.NoError(t, err)

	err = f.svc.ChangePassword(context.Background(), "wrong-old", "new-secret")
	require.Error(t, err)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "old password does not match", apiErr.Message)
}
