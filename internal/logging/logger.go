// Package logging defines the structured logger shared by the OceanChat
// server and client. Both sides program against the Logger interface; the
// slog-backed implementation below is the only one in the tree, but handlers
// and stores stay decoupled from it.
package logging

import "context"

// Logger logs structured key/value records. Args alternate keys and values:
//
//	log.Info(ctx, "http server started", "addr", addr)
type Logger interface {
	// Debug logs fine-grained diagnostics, usually filtered out.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs degraded but recoverable conditions, such as a failed
	// background push or an unreachable server.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that attaches the given key/value pairs
	// to every record, e.g. a request id.
	With(args ...any) Logger
}
