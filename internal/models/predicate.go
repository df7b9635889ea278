package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/starford/rolodex/internal/strutil"
)

// Predicate decides whether a person belongs in the displayed list.
type Predicate interface {
	Test(p Person) bool
}

type showAll struct{}

func (showAll) Test(Person) bool { return true }

func (showAll) String() string { return "showAll" }

// ShowAll is the predicate that accepts every person.
var ShowAll Predicate = showAll{}

// KeywordFilter tests a person against five independent keyword groups.
// Groups are ANDed together; keywords within a group are ORed. An empty group
// (or a nil/empty status keyword) places no constraint on its field.
//
// Name, tag, phone and email keywords must match a whole word of the field,
// ignoring case. The status keyword must equal the status name, ignoring case.
type KeywordFilter struct {
	nameKeywords  []string
	tagKeywords   []string
	statusKeyword *string
	phoneKeywords []string
	emailKeywords []string
}

// NewKeywordFilter builds a filter. The slices are copied; statusKeyword may
// be nil to leave status unconstrained.
func NewKeywordFilter(nameKeywords, tagKeywords []string, statusKeyword *string, phoneKeywords, emailKeywords []string) KeywordFilter {
	var status *string
	if statusKeyword != nil {
		s := *statusKeyword
		status = &s
	}
	return KeywordFilter{
		nameKeywords:  slices.Clone(nameKeywords),
		tagKeywords:   slices.Clone(tagKeywords),
		statusKeyword: status,
		phoneKeywords: slices.Clone(phoneKeywords),
		emailKeywords: slices.Clone(emailKeywords),
	}
}

// NameKeywords returns a copy of the name group.
func (f KeywordFilter) NameKeywords() []string { return slices.Clone(f.nameKeywords) }

// TagKeywords returns a copy of the tag group.
func (f KeywordFilter) TagKeywords() []string { return slices.Clone(f.tagKeywords) }

// StatusKeyword returns the status keyword and whether one was given.
func (f KeywordFilter) StatusKeyword() (string, bool) {
	if f.statusKeyword == nil {
		return "", false
	}
	return *f.statusKeyword, true
}

// PhoneKeywords returns a copy of the phone group.
func (f KeywordFilter) PhoneKeywords() []string { return slices.Clone(f.phoneKeywords) }

// EmailKeywords returns a copy of the email group.
func (f KeywordFilter) EmailKeywords() []string { return slices.Clone(f.emailKeywords) }

// Test reports whether p satisfies every group of the filter.
func (f KeywordFilter) Test(p Person) bool {
	matchesName := anyWord(f.nameKeywords, p.Name)

	matchesTag := len(f.tagKeywords) == 0 || slices.ContainsFunc(p.Tags, func(tag string) bool {
		return anyWord(f.tagKeywords, tag)
	})

	matchesStatus := f.statusKeyword == nil || *f.statusKeyword == "" ||
		strings.EqualFold(*f.statusKeyword, string(p.Status))

	matchesPhone := anyWord(f.phoneKeywords, p.Phone)
	matchesEmail := anyWord(f.emailKeywords, p.Email)

	return matchesName && matchesTag && matchesStatus && matchesPhone && matchesEmail
}

// anyWord is true when keywords is empty or one of them is a whole word of field.
func anyWord(keywords []string, field string) bool {
	if len(keywords) == 0 {
		return true
	}
	for _, kw := range keywords {
		if strutil.ContainsWordIgnoreCase(field, kw) {
			return true
		}
	}
	return false
}

// Equal reports structural equality with other, which may be a KeywordFilter
// or a non-nil *KeywordFilter. Anything else compares unequal.
func (f KeywordFilter) Equal(other any) bool {
	var o KeywordFilter
	switch v := other.(type) {
	case KeywordFilter:
		o = v
	case *KeywordFilter:
		if v == nil {
			return false
		}
		o = *v
	default:
		return false
	}
	statusEqual := (f.statusKeyword == nil && o.statusKeyword == nil) ||
		(f.statusKeyword != nil && o.statusKeyword != nil && *f.statusKeyword == *o.statusKeyword)
	return slices.Equal(f.nameKeywords, o.nameKeywords) &&
		slices.Equal(f.tagKeywords, o.tagKeywords) &&
		statusEqual &&
		slices.Equal(f.phoneKeywords, o.phoneKeywords) &&
		slices.Equal(f.emailKeywords, o.emailKeywords)
}

func (f KeywordFilter) String() string {
	status := "<nil>"
	if f.statusKeyword != nil {
		status = *f.statusKeyword
	}
	return fmt.Sprintf("KeywordFilter{nameKeywords=%v, tagKeywords=%v, statusKeyword=%s, phoneKeywords=%v, emailKeywords=%v}",
		f.nameKeywords, f.tagKeywords, status, f.phoneKeywords, f.emailKeywords)
}
