// Package addressbook holds the in-memory person list and its filtered view.
package addressbook

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/starford/rolodex/internal/models"
)

// Model is the in-memory address book. It keeps every person in insertion
// order plus the predicate that defines the currently displayed list.
//
// Commands run one at a time; the lock exists so that a reload triggered by
// the file watcher cannot interleave with a command.
type Model struct {
	mu      sync.RWMutex
	persons []models.Person
	filter  models.Predicate
	now     func() time.Time
}

// New returns a Model seeded with persons, displaying all of them.
func New(persons []models.Person) *Model {
	m := &Model{filter: models.ShowAll, now: time.Now}
	m.persons = cloneAll(persons)
	return m
}

// HasPerson reports whether a person with the same identity as p exists.
func (m *Model) HasPerson(p models.Person) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexOfSame(p, "") >= 0
}

// AddPerson appends p, assigning an ID and creation time when missing. The
// displayed list is reset to show everyone. It returns the stored person.
func (m *Model) AddPerson(p models.Person) models.Person {
	m.mu.Lock()
	defer m.mu.Unlock()
	p = p.Clone()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = m.now().UTC()
	}
	m.persons = append(m.persons, p)
	m.filter = models.ShowAll
	return p.Clone()
}

// SetPerson replaces target (matched by ID) with edited. The edited person
// keeps target's ID and creation time. It reports whether target was found.
func (m *Model) SetPerson(target, edited models.Person) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOfID(target.ID)
	if i < 0 {
		return false
	}
	edited = edited.Clone()
	edited.ID = m.persons[i].ID
	edited.CreatedAt = m.persons[i].CreatedAt
	m.persons[i] = edited
	return true
}

// DeletePerson removes the person with p's ID and reports whether it existed.
func (m *Model) DeletePerson(p models.Person) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOfID(p.ID)
	if i < 0 {
		return false
	}
	m.persons = append(m.persons[:i], m.persons[i+1:]...)
	return true
}

// ResetPersons removes every person.
func (m *Model) ResetPersons() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persons = nil
}

// Replace swaps in a freshly loaded person list, keeping the current filter.
func (m *Model) Replace(persons []models.Person) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.persons = cloneAll(persons)
}

// Persons returns a copy of the full list.
func (m *Model) Persons() []models.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneAll(m.persons)
}

// FilteredPersons returns a copy of the displayed list.
func (m *Model) FilteredPersons() []models.Person {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Person, 0, len(m.persons))
	for _, p := range m.persons {
		if m.filter.Test(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// UpdateFilteredPersons sets the predicate of the displayed list. A nil
// predicate shows everyone.
func (m *Model) UpdateFilteredPersons(pred models.Predicate) {
	if pred == nil {
		pred = models.ShowAll
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = pred
}

// Filter returns the predicate of the displayed list.
func (m *Model) Filter() models.Predicate {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.filter
}

func (m *Model) indexOfID(id string) int {
	for i, p := range m.persons {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// indexOfSame finds a person with p's identity, ignoring the one with skipID.
func (m *Model) indexOfSame(p models.Person, skipID string) int {
	for i, q := range m.persons {
		if skipID != "" && q.ID == skipID {
			continue
		}
		if q.IsSamePerson(p) {
			return i
		}
	}
	return -1
}

// HasOtherPerson reports whether someone other than the person with id has
// p's identity. Edits use it to reject renames onto an existing name.
func (m *Model) HasOtherPerson(p models.Person, id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.indexOfSame(p, id) >= 0
}

func cloneAll(persons []models.Person) []models.Person {
	out := make([]models.Person, len(persons))
	for i, p := range persons {
		out[i] = p.Clone()
	}
	return out
}
