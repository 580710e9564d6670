package executor

import "context"

// Executor defines the interface for running external media tools.
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	Available(name string) bool
}
