package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/rolodex/internal/checksum"
	"github.com/starford/rolodex/internal/storage"
)

// Event kinds reported to an EventCallback.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

const reconcileDelay = 200 * time.Millisecond

// EventCallback is called after a watcher-driven index change.
// kind is one of EventCreated, EventUpdated, EventDeleted; ref names the
// contact as it was indexed (before removal, for deletions).
type EventCallback func(kind string, ref ContactRef)

// Watch starts an fsnotify watcher on the store root and processes file
// change events until ctx is cancelled. It calls cb (if non-nil) after
// each index mutation.
//
// Files whose content already matches the indexed checksum are skipped, so
// writes made through the store by this process do not echo back. Rename
// events trigger a debounced reconciliation pass.
func Watch(ctx context.Context, db ContactIndex, store storage.Provider, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	root := store.Root()
	if err := w.Add(root); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("root", root))

	notify := func(kind string, ref ContactRef) {
		if cb != nil {
			cb(kind, ref)
		}
	}

	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(reconcileDelay)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(reconcileDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcile(db, store, logger, notify)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !storage.IsContactFile(ev.Name) || filepath.Dir(ev.Name) != root {
				continue
			}
			name := filepath.Base(ev.Name)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(name)
				if readErr != nil {
					// Removed again before we got to it; reconcile catches up.
					logger.Debug("watcher: read failed", slog.String("path", name), slog.String("error", readErr.Error()))
					continue
				}
				stored, _ := db.GetChecksum(name)
				if checksum.Matches(data, stored) {
					continue
				}
				if idxErr := IndexFile(db, name, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("path", name), slog.String("error", idxErr.Error()))
					continue
				}
				kind := EventUpdated
				if stored == "" {
					kind = EventCreated
				}
				logger.Debug("watcher: indexed", slog.String("path", name), slog.String("op", kind))
				notify(kind, contactAt(db, name, logger))

			case ev.Op&fsnotify.Remove != 0:
				removeIndexed(db, name, logger, notify)

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the old path only; the new path
				// arrives as a Create if it stays inside the root.
				removeIndexed(db, name, logger, notify)
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

func removeIndexed(db ContactIndex, name string, logger *slog.Logger, notify EventCallback) {
	ref := contactAt(db, name, logger)
	if ref.ID == "" {
		return
	}
	if err := db.DeleteContact(name); err != nil {
		logger.Warn("watcher: delete failed", slog.String("path", name), slog.String("error", err.Error()))
		return
	}
	logger.Debug("watcher: deleted", slog.String("path", name))
	notify(EventDeleted, ref)
}

// contactAt looks up the contact in path, falling back to a bare path ref.
func contactAt(db ContactIndex, path string, logger *slog.Logger) ContactRef {
	ref, err := db.ContactAt(path)
	if err != nil {
		logger.Warn("watcher: lookup failed", slog.String("path", path), slog.String("error", err.Error()))
	}
	return ref
}

// reconcile removes index entries without a file on disk and indexes
// on-disk files whose checksum differs from the index.
func reconcile(db ContactIndex, store storage.Provider, logger *slog.Logger, notify EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	entries, err := store.List()
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(entries))
	for _, e := range entries {
		disk[e.Name] = e.Checksum
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			ref := contactAt(db, p, logger)
			if delErr := db.DeleteContact(p); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("path", p))
				notify(EventDeleted, ref)
			}
		}
	}

	for p, cs := range disk {
		stored, known := checksums[p]
		if stored == cs {
			continue
		}
		data, readErr := store.Read(p)
		if readErr != nil {
			continue
		}
		if idxErr := IndexFile(db, p, data); idxErr == nil {
			kind := EventUpdated
			if !known {
				kind = EventCreated
			}
			logger.Debug("reconcile: indexed", slog.String("path", p), slog.String("op", kind))
			notify(kind, contactAt(db, p, logger))
		}
	}
}
