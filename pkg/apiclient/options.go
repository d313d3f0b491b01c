package apiclient

import (
	"log/slog"
	"net/http"
)

type clientOptions struct {
	base http.RoundTripper
	log  *slog.Logger
}

// Option configures the Client.
type Option func(*clientOptions)

// WithLogger supplies an external slog.Logger instance. If nil, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// WithRoundTripper sets the transport the interceptor delegates to, instead
// of http.DefaultTransport.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(o *clientOptions) { o.base = rt }
}

// TransportOption configures a Transport directly.
type TransportOption func(*Transport)

// WithBase sets the RoundTripper the interceptor delegates to.
func WithBase(rt http.RoundTripper) TransportOption {
	return func(t *Transport) { t.base = rt }
}

// WithExemptPaths marks request paths that never receive a bearer token and
// are never retried. Trailing slashes are ignored when matching.
func WithExemptPaths(paths ...string) TransportOption {
	return func(t *Transport) { t.exempt = append(t.exempt, paths...) }
}

// WithTransportLogger supplies an external slog.Logger instance.
func WithTransportLogger(l *slog.Logger) TransportOption {
	return func(t *Transport) { t.log = l }
}
