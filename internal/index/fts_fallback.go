//go:build !sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/rolodex/internal/models"
)

func initFTS(_ *sql.DB) error {
	// FTS5 not available; search uses LIKE over the contacts table.
	return nil
}

func ftsUpsert(_ *sql.Tx, _ string, _ models.Person, _ []string) error {
	// Every searchable field already lives in the contacts table.
	return nil
}

func ftsDelete(_ *sql.Tx, _ string) {}

// Search performs a LIKE-based search (fallback when FTS5 is not compiled in).
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	like := "%" + query + "%"
	rows, err := db.conn.Query(`
		SELECT path, id, name, substr(remark, 1, 200)
		FROM contacts
		WHERE name LIKE ? OR phone LIKE ? OR email LIKE ? OR tags LIKE ? OR remark LIKE ?
		ORDER BY created_at, path
		LIMIT ?
	`, like, like, like, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanResults(rows)
}
