package routeguard

import "log/slog"

// Option configures the guard.
type Option func(*Guard)

// WithLogger supplies an external slog.Logger instance. If nil, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(g *Guard) { g.log = l }
}
