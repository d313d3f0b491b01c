package refresh

import "log/slog"

// Option configures the coordinator.
type Option func(*Coordinator)

// WithLogger supplies an external slog.Logger instance. If nil, a noop logger is used.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}
