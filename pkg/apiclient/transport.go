package apiclient

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/logger"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
	bearerPrefix        = "Bearer "
)

// Refresher yields a fresh access token. Satisfied by refresh.Coordinator.
type Refresher interface {
	Refresh(ctx context.Context) (string, error)
}

// Transport is an http.RoundTripper that wraps every outbound API call.
//
// Before send it attaches the stored access token as a bearer credential and
// stamps an X-Request-ID when the caller did not set one. Requests to exempt
// paths (token issuance and renewal) are never authenticated, so a stale
// token cannot leak into a login call.
//
// On a 401 it asks the Refresher for a new token and replays the original
// request exactly once. The replay's outcome is returned as-is; a second 401
// is not retried. When no new token can be obtained, the session is cleared
// and the original 401 response goes back to the caller untouched so the
// error message can still be extracted from its body.
type Transport struct {
	base      http.RoundTripper
	tokens    *credentials.Tokens
	refresher Refresher
	exempt    []string
	log       *slog.Logger
}

// NewTransport creates the interceptor.
func NewTransport(tokens *credentials.Tokens, refresher Refresher, opts ...TransportOption) *Transport {
	if tokens == nil {
		panic("apiclient: token store is required")
	}
	if refresher == nil {
		panic("apiclient: refresher is required")
	}

	t := &Transport{
		tokens:    tokens,
		refresher: refresher,
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.log == nil {
		t.log = logger.Noop()
	}
	return t
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	r := req.Clone(req.Context())
	if r.Header.Get(headerRequestID) == "" {
		r.Header.Set(headerRequestID, uuid.NewString())
	}

	exempt := t.isExempt(r.URL.Path)
	if !exempt {
		if access, ok := t.tokens.Access(); ok {
			r.Header.Set(headerAuthorization, bearerPrefix+access)
		}
	}

	resp, err := t.roundTripper().RoundTrip(r)
	if err != nil || exempt || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	t.log.DebugContext(req.Context(), "authorization failure, attempting renewal",
		slog.String("path", r.URL.Path))

	access, refreshErr := t.refresher.Refresh(req.Context())
	if refreshErr != nil {
		// The coordinator clears the session on a failed renewal; clearing
		// again also covers the missing-refresh-token case and is idempotent.
		t.tokens.Clear()
		return resp, nil
	}

	retry, ok := t.replayable(req)
	if !ok {
		return resp, nil
	}

	drain(resp)
	retry.Header.Set(headerRequestID, r.Header.Get(headerRequestID))
	retry.Header.Set(headerAuthorization, bearerPrefix+access)
	return t.roundTripper().RoundTrip(retry)
}

func (t *Transport) roundTripper() http.RoundTripper {
	if t.base != nil {
		return t.base
	}
	return http.DefaultTransport
}

func (t *Transport) isExempt(path string) bool {
	for _, p := range t.exempt {
		if strings.TrimSuffix(path, "/") == strings.TrimSuffix(p, "/") {
			return true
		}
	}
	return false
}

// replayable clones the request with a rewound body. Requests whose body
// cannot be re-read are not retried.
func (t *Transport) replayable(req *http.Request) (*http.Request, bool) {
	retry := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return retry, true
	}
	if req.GetBody == nil {
		return nil, false
	}

	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	retry.Body = body
	return retry, true
}

// drain discards a response that will not be returned so the underlying
// connection can be reused.
func drain(resp *http.Response) {
	if resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
