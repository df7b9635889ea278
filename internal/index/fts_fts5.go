//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/starford/rolodex/internal/models"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS contacts_fts USING fts5(
			path UNINDEXED,
			name,
			phone,
			email,
			tags,
			remark,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, path string, p models.Person, tags []string) error {
	_, _ = tx.Exec(`DELETE FROM contacts_fts WHERE path = ?`, path)
	_, err := tx.Exec(`INSERT INTO contacts_fts (path, name, phone, email, tags, remark) VALUES (?, ?, ?, ?, ?, ?)`,
		path, p.Name, p.Phone, p.Email, strings.Join(tags, " "), p.Remark)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, path string) {
	_, _ = tx.Exec(`DELETE FROM contacts_fts WHERE path = ?`, path)
}

// ftsQuery quotes every term so user input such as "a@b.c" is never read as
// FTS5 query syntax. Terms are ANDed.
func ftsQuery(q string) string {
	terms := strings.Fields(q)
	for i, t := range terms {
		terms[i] = `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
	}
	return strings.Join(terms, " ")
}

// Search performs an FTS5 full-text search and returns matching contacts with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	q := ftsQuery(query)
	if q == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	rows, err := db.conn.Query(`
		SELECT contacts_fts.path,
		       c.id,
		       c.name,
		       snippet(contacts_fts, -1, '<b>', '</b>', '...', 16)
		FROM contacts_fts
		JOIN contacts c ON c.path = contacts_fts.path
		WHERE contacts_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, q, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	return scanResults(rows)
}
