// Package logging configures the slog loggers used across the library.
// Everything that logs accepts a *slog.Logger from its caller; these
// constructors only exist so that embedders and the bundled commands agree
// on the defaults.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a configured logger writing to stderr, so that log output
// never interleaves with whatever an adapter renders on stdout.
// Common keys are standardized (e.g. "error" -> "err").
func New(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a logger that discards everything. It is the default for
// embedded use; hosts opt into logging explicitly.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
