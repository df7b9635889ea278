// Package storage keeps contact files in a single directory.
package storage

import "time"

// Entry describes one contact file.
type Entry struct {
	Name      string // file name relative to the store root
	Checksum  string
	UpdatedAt time.Time
}

// Provider is the interface for contact file operations. Names are plain
// file names inside the store root.
type Provider interface {
	// Root returns the absolute path of the store directory.
	Root() string
	// List returns every contact file in the store.
	List() ([]Entry, error)
	// Read returns the raw bytes of the named file.
	Read(name string) ([]byte, error)
	// Write atomically replaces the named file with content.
	Write(name string, content []byte) error
	// Delete removes the named file. Deleting a missing file fails with an
	// error wrapping fs.ErrNotExist.
	Delete(name string) error
}
