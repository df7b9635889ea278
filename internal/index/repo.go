package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/starford/rolodex/internal/models"
)

// timeLayout is fixed-width so created_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const defaultSearchLimit = 20

// SearchResult represents one search hit.
type SearchResult struct {
	Path    string `json:"path"`
	ID      string `json:"id"`
	Name    string `json:"name"`
	Snippet string `json:"snippet"`
}

// UpsertContact inserts or replaces a contact and its FTS entry within a transaction.
func (db *DB) UpsertContact(path, checksum string, p models.Person) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tags := models.NormalizeTags(p.Tags)
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("index: marshal tags: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO contacts (path, id, name, phone, email, status, tags, remark, checksum, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			id         = excluded.id,
			name       = excluded.name,
			phone      = excluded.phone,
			email      = excluded.email,
			status     = excluded.status,
			tags       = excluded.tags,
			remark     = excluded.remark,
			checksum   = excluded.checksum,
			created_at = excluded.created_at
	`, path, p.ID, p.Name, p.Phone, p.Email, string(p.Status), string(tagsJSON), p.Remark, checksum,
		p.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("index: upsert contact: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, path, p, tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteContact removes a contact and its FTS entry. Deleting an unknown
// path is not an error.
func (db *DB) DeleteContact(path string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, path)
	if _, err := tx.Exec(`DELETE FROM contacts WHERE path = ?`, path); err != nil {
		return fmt.Errorf("index: delete contact: %w", err)
	}
	return tx.Commit()
}

// GetChecksum returns the stored checksum for a contact, or empty string if not found.
func (db *DB) GetChecksum(path string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM contacts WHERE path = ?`, path).Scan(&cs)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: get checksum: %w", err)
	}
	return cs, nil
}

// PathForID returns the path of the file holding the contact with id, or
// empty string if it is not indexed.
func (db *DB) PathForID(id string) (string, error) {
	var path string
	err := db.conn.QueryRow(`SELECT path FROM contacts WHERE id = ? ORDER BY path LIMIT 1`, id).Scan(&path)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("index: path for id: %w", err)
	}
	return path, nil
}

// ContactRef names the contact stored in one file.
type ContactRef struct {
	Path string
	ID   string
	Name string
}

// ContactAt returns the contact indexed for path. ID is empty when path is
// not indexed.
func (db *DB) ContactAt(path string) (ContactRef, error) {
	ref := ContactRef{Path: path}
	err := db.conn.QueryRow(`SELECT id, name FROM contacts WHERE path = ?`, path).Scan(&ref.ID, &ref.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return ref, nil
	}
	if err != nil {
		return ContactRef{Path: path}, fmt.Errorf("index: contact at: %w", err)
	}
	return ref, nil
}

// AllChecksums returns the checksum of every indexed contact keyed by path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM contacts`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

// ListContacts returns every indexed contact ordered by creation time.
func (db *DB) ListContacts() ([]models.Person, error) {
	rows, err := db.conn.Query(`
		SELECT id, name, phone, email, status, tags, remark, created_at
		FROM contacts
		ORDER BY created_at, path
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list contacts: %w", err)
	}
	defer rows.Close()

	var out []models.Person
	for rows.Next() {
		var (
			p         models.Person
			status    string
			tagsJSON  string
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.Phone, &p.Email, &status, &tagsJSON, &p.Remark, &createdAt); err != nil {
			return nil, err
		}
		p.Status = models.Status(status)
		if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
			return nil, fmt.Errorf("index: decode tags of %s: %w", p.ID, err)
		}
		p.Tags = models.NormalizeTags(p.Tags)
		if createdAt != "" {
			t, err := time.Parse(timeLayout, createdAt)
			if err != nil {
				return nil, fmt.Errorf("index: decode created_at of %s: %w", p.ID, err)
			}
			p.CreatedAt = t
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	defer rows.Close()
	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Path, &r.ID, &r.Name, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
