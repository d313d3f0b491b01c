// Package logger builds configured slog.Logger instances.
//
// New applies functional options for level, format (JSON or text), output,
// static attributes and context extractors. Extractors run per log call
// through a handler decorator, injecting request-scoped attributes such as
// request IDs. Noop returns a silent logger used as the component default.
package logger
