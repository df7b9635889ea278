// Package logic ties the command language to the address book and its
// on-disk form. Every successful command is persisted as contact files and
// index rows before Execute returns.
package logic

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/starford/rolodex/internal/addressbook"
	"github.com/starford/rolodex/internal/checksum"
	"github.com/starford/rolodex/internal/command"
	"github.com/starford/rolodex/internal/contactfile"
	"github.com/starford/rolodex/internal/index"
	"github.com/starford/rolodex/internal/models"
	"github.com/starford/rolodex/internal/parser"
	"github.com/starford/rolodex/internal/storage"
)

// Change describes one persisted person change. Kind is one of
// index.EventCreated, index.EventUpdated, index.EventDeleted.
type Change struct {
	Kind   string
	Person models.Person
}

// ChangeListener is called after a command's changes have been persisted.
type ChangeListener func(changes []Change)

// Option configures a Manager.
type Option func(*Manager)

// WithRemarks enables remark commands.
func WithRemarks(enabled bool) Option {
	return func(m *Manager) { m.remarks = enabled }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.logger = l }
}

// WithChangeListener registers fn to receive persisted changes.
func WithChangeListener(fn ChangeListener) Option {
	return func(m *Manager) { m.listeners = append(m.listeners, fn) }
}

// Manager runs command lines against the address book, one at a time.
type Manager struct {
	mu        sync.Mutex
	model     *addressbook.Model
	parser    *parser.Parser
	store     storage.Provider
	db        index.ContactIndex
	logger    *slog.Logger
	remarks   bool
	listeners []ChangeListener
}

// NewManager creates a Manager over store and db. Call Load before use.
func NewManager(store storage.Provider, db index.ContactIndex, opts ...Option) *Manager {
	m := &Manager{
		model:  addressbook.New(nil),
		store:  store,
		db:     db,
		logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.parser = parser.New(parser.WithRemarks(m.remarks))
	return m
}

// Load syncs the index with the contacts directory and fills the address
// book from it.
func (m *Manager) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := index.Sync(m.db, m.store, m.logger); err != nil {
		return fmt.Errorf("logic: sync: %w", err)
	}
	return m.Reload(ctx)
}

// Reload refreshes the address book from the index, keeping the current
// filter. The watcher calls it after external edits.
func (m *Manager) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	persons, err := m.db.ListContacts()
	if err != nil {
		return fmt.Errorf("logic: load contacts: %w", err)
	}
	m.model.Replace(persons)
	m.logger.Debug("address book loaded", slog.Int("persons", len(persons)))
	return nil
}

// Execute parses and runs one command line. Failures from parsing or from
// the command itself are returned unchanged and leave the address book as
// it was.
func (m *Manager) Execute(ctx context.Context, line string) (command.Result, error) {
	if err := ctx.Err(); err != nil {
		return command.Result{}, err
	}

	cmd, err := m.parser.Parse(line)
	if err != nil {
		m.logger.Debug("command rejected", slog.String("line", line), slog.String("error", err.Error()))
		return command.Result{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	before := m.model.Persons()
	filter := m.model.Filter()

	res, err := cmd.Execute(m.model)
	if err != nil {
		m.logger.Debug("command failed", slog.String("line", line), slog.String("error", err.Error()))
		return command.Result{}, err
	}

	changes := diff(before, m.model.Persons())
	if applied, err := m.persist(changes); err != nil {
		m.logger.Error("persist failed", slog.String("line", line), slog.String("error", err.Error()))
		m.rollback(applied, before)
		m.model.UpdateFilteredPersons(filter)
		return command.Result{}, err
	}

	m.logger.Info("command executed",
		slog.String("command", commandWord(line)),
		slog.Int("changes", len(changes)))

	if len(changes) > 0 {
		for _, fn := range m.listeners {
			fn(changes)
		}
	}
	return res, nil
}

// Persons returns every person in the address book.
func (m *Manager) Persons() []models.Person {
	return m.model.Persons()
}

// Filtered returns the displayed list.
func (m *Manager) Filtered() []models.Person {
	return m.model.FilteredPersons()
}

// Search runs a full-text query against the index.
func (m *Manager) Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.db.Search(query, limit)
}

// stored is a change that reached both the index and the contacts directory.
type stored struct {
	Change
	path string
}

// persist writes every change. The index row is updated before the file so
// the watcher recognises the write as already indexed. On failure the
// failing change is repaired from disk and the changes stored before it are
// returned for rollback.
func (m *Manager) persist(changes []Change) ([]stored, error) {
	var applied []stored
	for _, c := range changes {
		path, err := m.pathOf(c.Person.ID)
		if err != nil {
			return applied, err
		}
		if err := m.apply(c, path); err != nil {
			return applied, err
		}
		applied = append(applied, stored{Change: c, path: path})
		m.logger.Debug("contact persisted", slog.String("path", path), slog.String("op", c.Kind))
	}
	return applied, nil
}

func (m *Manager) apply(c Change, path string) error {
	if c.Kind == index.EventDeleted {
		if err := m.db.DeleteContact(path); err != nil {
			return err
		}
		if err := m.store.Delete(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			m.repair(path)
			return err
		}
		return nil
	}

	data, err := contactfile.Encode(c.Person)
	if err != nil {
		return err
	}
	if err := m.db.UpsertContact(path, checksum.Sum(data), c.Person); err != nil {
		return err
	}
	if err := m.store.Write(path, data); err != nil {
		m.repair(path)
		return err
	}
	return nil
}

// rollback undoes applied changes in reverse order and resets the address
// book to before. If undoing fails the address book is reloaded from the
// index, which then reflects what is really stored.
func (m *Manager) rollback(applied []stored, before []models.Person) {
	prev := make(map[string]models.Person, len(before))
	for _, p := range before {
		prev[p.ID] = p
	}

	for i := len(applied) - 1; i >= 0; i-- {
		s := applied[i]
		undo := Change{Kind: index.EventDeleted, Person: s.Person}
		if s.Kind != index.EventCreated {
			undo = Change{Kind: index.EventUpdated, Person: prev[s.Person.ID]}
		}
		if err := m.apply(undo, s.path); err != nil {
			m.logger.Error("rollback failed, reloading from index",
				slog.String("path", s.path), slog.String("error", err.Error()))
			m.reloadLocked()
			return
		}
	}
	m.model.Replace(before)
}

// reloadLocked refills the address book from the index. Callers hold m.mu.
func (m *Manager) reloadLocked() {
	persons, err := m.db.ListContacts()
	if err != nil {
		m.logger.Error("reload from index failed", slog.String("error", err.Error()))
		return
	}
	m.model.Replace(persons)
}

// pathOf returns the file a person is stored in. Hand-written files keep
// their own names; new persons go to <id>.md.
func (m *Manager) pathOf(id string) (string, error) {
	path, err := m.db.PathForID(id)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = contactfile.PathFor(id)
	}
	return path, nil
}

// repair re-indexes path from whatever is on disk after a failed write.
func (m *Manager) repair(path string) {
	data, err := m.store.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		_ = m.db.DeleteContact(path)
		return
	}
	if err == nil {
		err = index.IndexFile(m.db, path, data)
	}
	if err != nil {
		m.logger.Warn("repair failed", slog.String("path", path), slog.String("error", err.Error()))
	}
}

// diff lists the persons created or updated in after (in list order),
// followed by the ones missing from it.
func diff(before, after []models.Person) []Change {
	old := make(map[string]models.Person, len(before))
	for _, p := range before {
		old[p.ID] = p
	}

	var out []Change
	seen := make(map[string]struct{}, len(after))
	for _, p := range after {
		seen[p.ID] = struct{}{}
		prev, ok := old[p.ID]
		switch {
		case !ok:
			out = append(out, Change{Kind: index.EventCreated, Person: p})
		case !samePerson(prev, p):
			out = append(out, Change{Kind: index.EventUpdated, Person: p})
		}
	}
	for _, p := range before {
		if _, ok := seen[p.ID]; !ok {
			out = append(out, Change{Kind: index.EventDeleted, Person: p})
		}
	}
	return out
}

func samePerson(a, b models.Person) bool {
	return a.ID == b.ID && a.Name == b.Name && a.Phone == b.Phone && a.Email == b.Email &&
		a.Status == b.Status && a.Remark == b.Remark && a.CreatedAt.Equal(b.CreatedAt) &&
		slices.Equal(a.Tags, b.Tags)
}

func commandWord(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToLower(fields[0])
}
