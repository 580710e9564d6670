package logger

import "context"

// Logger is the leveled logging interface used across the service.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})

	// Named returns a logger that prefixes every line with a component name.
	Named(component string) Logger
}
