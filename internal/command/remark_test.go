package command

import (
	"errors"
	"testing"

	"github.com/starford/rolodex/internal/addressbook"
	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/models"
	"github.com/starford/rolodex/internal/testutil"
)

func TestRemarkCommand_Placeholder(t *testing.T) {
	m := typicalModel()
	cmd := RemarkCommand{Index: index(t, 1), Remark: "Likes to swim."}
	assertFailure(t, cmd, m, apperr.ErrNotImplemented, "Index: 1, Remark: Likes to swim.")

	// Any model, even an empty one, gets the same answer.
	assertFailure(t, cmd, addressbook.New(nil), apperr.ErrNotImplemented, "Index: 1, Remark: Likes to swim.")

	cmd = RemarkCommand{Index: index(t, 42), Remark: ""}
	assertFailure(t, cmd, m, apperr.ErrNotImplemented, "Index: 42, Remark: ")
}

func TestRemarkCommand_Equality(t *testing.T) {
	standard := RemarkCommand{Index: index(t, 1), Remark: "Some remark"}

	if standard != (RemarkCommand{Index: index(t, 1), Remark: "Some remark"}) {
		t.Error("same values should be equal")
	}
	var cmd Command = standard
	if cmd == nil {
		t.Error("command should not equal nil")
	}
	if cmd == Command(ClearCommand{}) {
		t.Error("different command types should not be equal")
	}
	if standard == (RemarkCommand{Index: index(t, 2), Remark: "Some remark"}) {
		t.Error("different index should not be equal")
	}
	if standard == (RemarkCommand{Index: index(t, 1), Remark: "Other remark"}) {
		t.Error("different remark should not be equal")
	}
}

func TestRemarkCommand_Apply(t *testing.T) {
	m := typicalModel()
	res, err := RemarkCommand{Index: index(t, 2), Remark: "Likes to swim.", Apply: true}.Execute(m)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := m.Persons()[1].Remark; got != "Likes to swim." {
		t.Errorf("remark = %q", got)
	}
	updated := m.Persons()[1]
	if want := "Added remark to Person: " + updated.String(); res.Feedback != want {
		t.Errorf("feedback = %q, want %q", res.Feedback, want)
	}

	res, err = RemarkCommand{Index: index(t, 2), Remark: "", Apply: true}.Execute(m)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := m.Persons()[1].Remark; got != "" {
		t.Errorf("remark not cleared: %q", got)
	}
	if want := "Removed remark from Person: " + m.Persons()[1].String(); res.Feedback != want {
		t.Errorf("feedback = %q, want %q", res.Feedback, want)
	}
}

func TestRemarkCommand_ApplyUsesDisplayedList(t *testing.T) {
	m := typicalModel()
	m.UpdateFilteredPersons(models.NewKeywordFilter(nil, []string{"colleague"}, nil, nil, nil))
	if _, err := (RemarkCommand{Index: index(t, 2), Remark: "VIP", Apply: true}).Execute(m); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	for _, p := range m.Persons() {
		if p.Name == testutil.Elle.Name && p.Remark != "VIP" {
			t.Errorf("Elle remark = %q", p.Remark)
		}
		if p.Name != testutil.Elle.Name && p.Remark != "" {
			t.Errorf("%s unexpectedly has remark %q", p.Name, p.Remark)
		}
	}
}

func TestRemarkCommand_ApplyOutOfRange(t *testing.T) {
	m := typicalModel()
	_, err := RemarkCommand{Index: index(t, 6), Remark: "x", Apply: true}.Execute(m)
	if !errors.Is(err, apperr.ErrInvalidIndex) {
		t.Fatalf("err = %v, want ErrInvalidIndex", err)
	}
	if err.Error() != MessageInvalidPersonIndex+" (valid range: 1-5)" {
		t.Errorf("message = %q", err.Error())
	}
}
