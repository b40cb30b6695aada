package watcher

import "context"

// Watcher defines the interface for input directory monitoring
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler is invoked for each newly dropped audio file
type EventHandler func(ctx context.Context, filePath string) error
