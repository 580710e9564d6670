package watcher

import "context"

// Watcher monitors the upload drop directory for new recordings.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes a newly dropped audio file.
type EventHandler func(ctx context.Context, filePath string) error
