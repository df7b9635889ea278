// Package testutil provides shared test helpers: typical persons, and
// temporary contact directories and index databases.
package testutil

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/starford/rolodex/internal/contactfile"
	"github.com/starford/rolodex/internal/index"
	"github.com/starford/rolodex/internal/models"
	"github.com/starford/rolodex/internal/storage"
)

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

// Typical persons. IDs and creation times are fixed so that ordering by
// creation time matches declaration order.
var (
	Alice = models.Person{ID: "00000000-0000-0000-0000-000000000001", Name: "Alice Pauline", Phone: "94351253",
		Email: "alice@example.com", Status: models.StatusUncontacted, Tags: []string{"friends"}, CreatedAt: epoch}
	Benson = models.Person{ID: "00000000-0000-0000-0000-000000000002", Name: "Benson Meier", Phone: "98765432",
		Email: "johnd@example.com", Status: models.StatusContacted, Tags: []string{"owesMoney", "friends"}, CreatedAt: epoch.Add(time.Minute)}
	Carl = models.Person{ID: "00000000-0000-0000-0000-000000000003", Name: "Carl Kurz", Phone: "95352563",
		Email: "heinz@example.com", Status: models.StatusUncontacted, CreatedAt: epoch.Add(2 * time.Minute)}
	Daniel = models.Person{ID: "00000000-0000-0000-0000-000000000004", Name: "Daniel Meier", Phone: "87652533",
		Email: "cornelia@example.com", Status: models.StatusContacted, Tags: []string{"colleague"}, CreatedAt: epoch.Add(3 * time.Minute)}
	Elle = models.Person{ID: "00000000-0000-0000-0000-000000000005", Name: "Elle Meyer", Phone: "9482224",
		Email: "werner@example.com", Status: models.StatusUncontacted, Tags: []string{"colleague", "big-spender"}, CreatedAt: epoch.Add(4 * time.Minute)}
)

// Amy is a valid person that is not part of TypicalPersons.
var Amy = models.Person{Name: "Amy Bee", Phone: "11111111", Email: "amy@example.com",
	Status: models.StatusUncontacted, Tags: []string{"friend"}}

// TypicalPersons returns fresh copies of the typical persons.
func TypicalPersons() []models.Person {
	out := []models.Person{Alice, Benson, Carl, Daniel, Elle}
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "rolodex-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestStore creates a temporary contacts directory with a storage.Provider.
func TestStore(t *testing.T) (string, storage.Provider) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewFS(dir)
	if err != nil {
		t.Fatal(err)
	}
	return dir, store
}

// SeedContacts writes persons into store as contact files.
func SeedContacts(t *testing.T, store storage.Provider, persons []models.Person) {
	t.Helper()
	for _, p := range persons {
		data, err := contactfile.Encode(p)
		if err != nil {
			t.Fatal(err)
		}
		if err := store.Write(contactfile.PathFor(p.ID), data); err != nil {
			t.Fatal(err)
		}
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
