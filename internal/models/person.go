// Package models defines the domain types for rolodex.
package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	nameRe  = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	phoneRe = regexp.MustCompile(`^[0-9]{3,}$`)
	emailRe = regexp.MustCompile(`^[A-Za-z0-9]([A-Za-z0-9+_.-]*[A-Za-z0-9])?@[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?(\.[A-Za-z0-9]([A-Za-z0-9-]*[A-Za-z0-9])?)*$`)
	tagRe   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]*$`)
)

// Person is a single contact record.
type Person struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Status    Status    `json:"status"`
	Tags      []string  `json:"tags"`
	Remark    string    `json:"remark"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks every field constraint of the person.
func (p Person) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required,
			validation.Match(nameRe).Error("names should only contain alphanumeric characters and spaces")),
		validation.Field(&p.Phone, validation.Required,
			validation.Match(phoneRe).Error("phone numbers should only contain digits and be at least 3 digits long")),
		validation.Field(&p.Email, validation.Required,
			validation.Match(emailRe).Error("emails should be of the format local-part@domain")),
		validation.Field(&p.Status, validation.Required,
			validation.In(StatusUncontacted, StatusContacted).Error("status should be one of: "+strings.Join(StatusNames(), ", "))),
		validation.Field(&p.Tags, validation.Each(
			validation.Match(tagRe).Error("tags should be alphanumeric and may contain '-' or '_'"))),
	)
}

// IsSamePerson reports whether other refers to the same contact. Two people
// are the same when their names are equal ignoring case.
func (p Person) IsSamePerson(other Person) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(other.Name))
}

// HasTag reports whether the person carries tag, ignoring case.
func (p Person) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of p.
func (p Person) Clone() Person {
	c := p
	if p.Tags != nil {
		c.Tags = append([]string(nil), p.Tags...)
	}
	return c
}

// String renders the person in the one-line form shown to users.
func (p Person) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Phone: %s; Email: %s; Status: %s", p.Name, p.Phone, p.Email, p.Status)
	if p.Remark != "" {
		fmt.Fprintf(&b, "; Remark: %s", p.Remark)
	}
	b.WriteString("; Tags: ")
	for _, t := range p.Tags {
		fmt.Fprintf(&b, "[%s]", t)
	}
	return b.String()
}

// NormalizeTags trims tags, drops empty ones and removes case-insensitive
// duplicates while keeping the first spelling and the original order.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	return out
}
