package extract

import "log/slog"

// logger is the package-level log sink for parse warnings. Extraction is
// single-threaded per document; SetLogger is meant to be called once at
// startup, before any document is processed.
var logger = slog.Default()

// SetLogger swaps the package logger. Pass nil to reset to slog.Default().
func SetLogger(l *slog.Logger) {
	if l == nil {
		logger = slog.Default()
		return
	}
	logger = l
}
