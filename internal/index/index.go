package index

import "github.com/starford/rolodex/internal/models"

// ContactIndex defines the interface for contact indexing operations.
// Consumers should depend on this interface rather than the concrete *DB type.
type ContactIndex interface {
	UpsertContact(path, checksum string, p models.Person) error
	DeleteContact(path string) error
	GetChecksum(path string) (string, error)
	PathForID(id string) (string, error)
	ContactAt(path string) (ContactRef, error)
	AllChecksums() (map[string]string, error)
	ListContacts() ([]models.Person, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies ContactIndex at compile time.
var _ ContactIndex = (*DB)(nil)
