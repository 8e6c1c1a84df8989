package application

import "log/slog"

// ResolveLogger falls back to slog.Default when no logger was injected.
func ResolveLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
