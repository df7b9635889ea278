// Package command implements the commands of the rolodex command language.
// Each command is a plain value produced by the parser; Execute applies it to
// a Model and returns either a Result or a user-facing error.
package command

import (
	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/models"
)

// Model is the part of the address book a command may read or change.
type Model interface {
	HasPerson(p models.Person) bool
	HasOtherPerson(p models.Person, id string) bool
	AddPerson(p models.Person) models.Person
	SetPerson(target, edited models.Person) bool
	DeletePerson(p models.Person) bool
	ResetPersons()
	FilteredPersons() []models.Person
	UpdateFilteredPersons(pred models.Predicate)
}

// Command is a parsed, ready-to-run command.
type Command interface {
	Execute(m Model) (Result, error)
}

// Result is what a successful command reports back.
type Result struct {
	Feedback string
	ShowHelp bool
	Exit     bool
}

// resolve returns the displayed person at idx or an invalid-index error that
// names the valid range.
func resolve(m Model, idx models.Index) (models.Person, error) {
	list := m.FilteredPersons()
	if idx.ZeroBased() >= len(list) {
		if len(list) == 0 {
			return models.Person{}, apperr.New(apperr.ErrInvalidIndex, "%s (the displayed list is empty)", MessageInvalidPersonIndex)
		}
		return models.Person{}, apperr.New(apperr.ErrInvalidIndex, "%s (valid range: 1-%d)", MessageInvalidPersonIndex, len(list))
	}
	return list[idx.ZeroBased()], nil
}
