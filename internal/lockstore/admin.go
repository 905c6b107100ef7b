package lockstore

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// LockInfo describes one on-disk lock file for the "locks list"
// administrative command. It is read-only and has no effect on admission.
type LockInfo struct {
	Path string
	Record
	ModTime time.Time
}

// ListLocks scans the base directory for lock files and parses each one.
// Files that are not a recognizable lock file are skipped rather than
// reported as errors, since the directory is shared with whatever else a
// host operator might drop in it.
func ListLocks(dir string) ([]LockInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	out := make([]LockInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsLockFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		var modTime time.Time
		if err == nil {
			modTime = info.ModTime()
		}
		out = append(out, LockInfo{
			Path:    path,
			Record:  ParseRecord(content),
			ModTime: modTime,
		})
	}
	return out, nil
}

// EventKind classifies a Watch notification.
type EventKind int

const (
	EventCreated EventKind = iota
	EventRemoved
	EventChanged
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "created"
	case EventRemoved:
		return "removed"
	case EventChanged:
		return "changed"
	default:
		return "unknown"
	}
}

// Event is one lock-directory change surfaced by Watch.
type Event struct {
	Kind EventKind
	Path string
}

// Watch streams lock-file create/remove/write events for the base
// directory until ctx is cancelled. It is a read-only diagnostic — the
// spec's Open Question about stale locks documents that nothing in this
// repository garbage-collects them automatically; Watch exists so an
// operator can see contention and staleness happen live.
func Watch(ctx context.Context, dir string) (<-chan Event, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, err
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !IsLockFile(filepath.Base(ev.Name)) {
					continue
				}
				kind, ok := classify(ev.Op)
				if !ok {
					continue
				}
				select {
				case out <- Event{Kind: kind, Path: ev.Name}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
	return out, nil
}

func classify(op fsnotify.Op) (EventKind, bool) {
	switch {
	case op&fsnotify.Create != 0:
		return EventCreated, true
	case op&fsnotify.Remove != 0 || op&fsnotify.Rename != 0:
		return EventRemoved, true
	case op&fsnotify.Write != 0:
		return EventChanged, true
	default:
		return EventChanged, false
	}
}
