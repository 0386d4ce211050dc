package ports

import (
	"context"
	"iter"
)

// ChangeKind classifies a file system change.
type ChangeKind uint8

// Kinds of change reported by a Watcher.
const (
	ChangeCreated ChangeKind = iota
	ChangeModified
	ChangeRemoved
	ChangeRenamed
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCreated:
		return "created"
	case ChangeModified:
		return "modified"
	case ChangeRemoved:
		return "removed"
	case ChangeRenamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// WatchEvent is one change below the watched workspace root.
type WatchEvent struct {
	Path string // absolute
	Kind ChangeKind
}

// Watcher reports changes below a workspace root until its context ends.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start watches root and every directory below it.
	Start(ctx context.Context, root string) error
	Stop() error
	// Events yields changes until the watcher stops. It is drained by a single consumer.
	Events() iter.Seq[WatchEvent]
}
