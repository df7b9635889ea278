package command

import (
	"fmt"

	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/models"
)

// RemarkCommand sets the remark of a displayed person. An empty Remark
// clears it.
//
// Unless Apply is set the command only echoes its arguments back as an
// ErrNotImplemented failure and leaves the model untouched.
type RemarkCommand struct {
	Index  models.Index
	Remark string
	Apply  bool
}

func (c RemarkCommand) Execute(m Model) (Result, error) {
	if !c.Apply {
		return Result{}, apperr.New(apperr.ErrNotImplemented, MessageRemarkArguments, c.Index.OneBased(), c.Remark)
	}

	target, err := resolve(m, c.Index)
	if err != nil {
		return Result{}, err
	}
	edited := target.Clone()
	edited.Remark = c.Remark
	m.SetPerson(target, edited)
	m.UpdateFilteredPersons(models.ShowAll)

	msg := MessageAddRemarkSuccess
	if c.Remark == "" {
		msg = MessageDeleteRemarkSuccess
	}
	return Result{Feedback: fmt.Sprintf(msg, edited)}, nil
}
