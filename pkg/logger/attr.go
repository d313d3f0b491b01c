package logger

import "log/slog"

// Error returns a standard attribute for logging an error value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String("error", err.Error())
}
