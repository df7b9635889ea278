package index

import (
	"log/slog"

	"github.com/starford/rolodex/internal/checksum"
	"github.com/starford/rolodex/internal/contactfile"
	"github.com/starford/rolodex/internal/storage"
)

// Sync walks the contacts directory and brings the index up to date:
//   - new/changed files are decoded and upserted
//   - files removed from disk are deleted from the index
//
// Files that fail to decode are logged and skipped.
func Sync(db ContactIndex, store storage.Provider, logger *slog.Logger) error {
	entries, err := store.List()
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		disk[e.Name] = struct{}{}

		if checksums[e.Name] == e.Checksum {
			continue
		}

		data, err := store.Read(e.Name)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", e.Name), slog.String("error", err.Error()))
			continue
		}
		if err := IndexFile(db, e.Name, data); err != nil {
			logger.Warn("sync: index failed", slog.String("path", e.Name), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("path", e.Name))
		}
	}

	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeleteContact(p); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
		}
	}

	return nil
}

// IndexFile decodes a contact file and upserts it into the index.
func IndexFile(db ContactIndex, path string, data []byte) error {
	p, err := contactfile.Decode(data)
	if err != nil {
		return err
	}
	return db.UpsertContact(path, checksum.Sum(data), p)
}
