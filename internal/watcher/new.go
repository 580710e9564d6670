package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/dharshini66/podcast-generator/internal/logger"
)

// New creates a new Watcher instance with concurrency control
func New(uploadDir string, handler EventHandler, log logger.Logger, maxConcurrent int) (Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(uploadDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	if maxConcurrent <= 0 {
		maxConcurrent = 2
	}

	return &implWatcher{
		uploadDir:     uploadDir,
		handler:       handler,
		logger:        log.Named("watcher"),
		watcher:       watcher,
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}, nil
}
