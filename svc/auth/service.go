package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/stocklane/authkit/pkg/apiclient"
	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/logger"
	"github.com/stocklane/authkit/pkg/sessiontoken"
)

// Service is the user-facing session API. It composes the credential store,
// the session decoder and the intercepted API client; all token writes happen
// through login, logout or the refresh coordinator, never here directly.
type Service struct {
	client    *apiclient.Client
	tokens    *credentials.Tokens
	refresher apiclient.Refresher
	cfg       Config
	log       *slog.Logger
	now       func() time.Time
}

// New creates the session service.
func New(client *apiclient.Client, tokens *credentials.Tokens, refresher apiclient.Refresher, cfg Config, opts ...Option) *Service {
	if client == nil {
		panic("auth: api client is required")
	}
	if tokens == nil {
		panic("auth: token store is required")
	}
	if refresher == nil {
		panic("auth: refresher is required")
	}

	s := &Service{
		client:    client,
		tokens:    tokens,
		refresher: refresher,
		cfg:       cfg,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Noop()
	}
	return s
}

// Login exchanges credentials for a token pair, stores it and returns the
// session's user projection. Errors from the server propagate untouched: a
// rejected login is not an authorization failure on an authenticated call,
// so no retry happens.
func (s *Service) Login(ctx context.Context, creds Credentials) (*User, error) {
	var pair tokenPairResponse
	if err := s.client.Post(ctx, s.cfg.TokenPath, creds, &pair); err != nil {
		return nil, err
	}

	s.tokens.SetPair(pair.Access, pair.Refresh)

	claims, err := sessiontoken.Decode(pair.Access)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "user logged in", slog.String("username", claims.Username))
	return userFromClaims(claims), nil
}

// Logout deletes both tokens. It never fails and is safe to call repeatedly.
func (s *Service) Logout() {
	s.tokens.Clear()
}

// CurrentUser returns the current session's user, or nil when there is none.
// An expired access token triggers one silent renewal before giving up. This
// method never returns an error: undecodable tokens, failed renewals and
// absent credentials all collapse to nil.
func (s *Service) CurrentUser(ctx context.Context) *User {
	access, ok := s.tokens.Access()
	if !ok {
		return nil
	}

	claims, err := sessiontoken.Decode(access)
	if err != nil {
		return nil
	}

	if claims.IsExpired(s.now()) {
		renewed, err := s.refresher.Refresh(ctx)
		if err != nil {
			return nil
		}
		claims, err = sessiontoken.Decode(renewed)
		if err != nil {
			return nil
		}
	}

	return userFromClaims(claims)
}

// RefreshToken renews the access token through the coordinator. It returns
// the empty string on any failure, including a missing refresh token, and
// leaves the store logged out in that case.
func (s *Service) RefreshToken(ctx context.Context) string {
	access, err := s.refresher.Refresh(ctx)
	if err != nil {
		// Renewal failures already cleared the store; clearing again covers
		// the missing-refresh-token path and is idempotent.
		s.tokens.Clear()
		return ""
	}
	return access
}

// UpdateProfile saves profile changes for the authenticated user. Transparent
// 401 handling happened in the interceptor by the time an error reaches the
// caller.
func (s *Service) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := s.client.Put(ctx, s.cfg.ProfilePath, update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the authenticated user's password.
func (s *Service) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	payload := changePasswordRequest{
		OldPassword: oldPassword,
		NewPassword: newPassword,
	}
	return s.client.Post(ctx, s.cfg.PasswordPath, payload, nil)
}
