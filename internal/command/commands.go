package command

import (
	"fmt"

	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/models"
)

// AddCommand adds a new person.
type AddCommand struct {
	Person models.Person
}

func (c AddCommand) Execute(m Model) (Result, error) {
	if err := c.Person.Validate(); err != nil {
		return Result{}, apperr.New(apperr.ErrInvalidPerson, "%s", err.Error())
	}
	if m.HasPerson(c.Person) {
		return Result{}, apperr.New(apperr.ErrDuplicatePerson, "%s", MessageDuplicatePerson)
	}
	stored := m.AddPerson(c.Person)
	return Result{Feedback: fmt.Sprintf(MessageAddSuccess, stored)}, nil
}

// EditDescriptor lists the fields an edit replaces. Nil fields are kept.
type EditDescriptor struct {
	Name   *string
	Phone  *string
	Email  *string
	Status *models.Status
	Tags   *[]string
}

// IsAnyFieldEdited reports whether the descriptor changes anything.
func (d EditDescriptor) IsAnyFieldEdited() bool {
	return d.Name != nil || d.Phone != nil || d.Email != nil || d.Status != nil || d.Tags != nil
}

func (d EditDescriptor) apply(p models.Person) models.Person {
	out := p.Clone()
	if d.Name != nil {
		out.Name = *d.Name
	}
	if d.Phone != nil {
		out.Phone = *d.Phone
	}
	if d.Email != nil {
		out.Email = *d.Email
	}
	if d.Status != nil {
		out.Status = *d.Status
	}
	if d.Tags != nil {
		out.Tags = models.NormalizeTags(*d.Tags)
	}
	return out
}

// EditCommand replaces fields of a displayed person.
type EditCommand struct {
	Index models.Index
	Edit  EditDescriptor
}

func (c EditCommand) Execute(m Model) (Result, error) {
	target, err := resolve(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := c.Edit.apply(target)
	if err := edited.Validate(); err != nil {
		return Result{}, apperr.New(apperr.ErrInvalidPerson, "%s", err.Error())
	}
	if m.HasOtherPerson(edited, target.ID) {
		return Result{}, apperr.New(apperr.ErrDuplicatePerson, "%s", MessageDuplicatePerson)
	}
	m.SetPerson(target, edited)
	m.UpdateFilteredPersons(models.ShowAll)
	return Result{Feedback: fmt.Sprintf(MessageEditSuccess, edited)}, nil
}

// DeleteCommand removes a displayed person.
type DeleteCommand struct {
	Index models.Index
}

func (c DeleteCommand) Execute(m Model) (Result, error) {
	target, err := resolve(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	m.DeletePerson(target)
	return Result{Feedback: fmt.Sprintf(MessageDeleteSuccess, target)}, nil
}

// FindCommand narrows the displayed list to persons matching Filter.
type FindCommand struct {
	Filter models.KeywordFilter
}

func (c FindCommand) Execute(m Model) (Result, error) {
	m.UpdateFilteredPersons(c.Filter)
	return Result{Feedback: fmt.Sprintf(MessagePersonsListedOverview, len(m.FilteredPersons()))}, nil
}

// ListCommand shows every person.
type ListCommand struct{}

func (ListCommand) Execute(m Model) (Result, error) {
	m.UpdateFilteredPersons(models.ShowAll)
	return Result{Feedback: MessageListSuccess}, nil
}

// ClearCommand removes every person.
type ClearCommand struct{}

func (ClearCommand) Execute(m Model) (Result, error) {
	m.ResetPersons()
	m.UpdateFilteredPersons(models.ShowAll)
	return Result{Feedback: MessageClearSuccess}, nil
}

// HelpCommand shows the usage of every command.
type HelpCommand struct{}

func (HelpCommand) Execute(Model) (Result, error) {
	return Result{Feedback: HelpText(), ShowHelp: true}, nil
}

// ExitCommand ends the session.
type ExitCommand struct{}

func (ExitCommand) Execute(Model) (Result, error) {
	return Result{Feedback: MessageExitAcknowledgement, Exit: true}, nil
}
