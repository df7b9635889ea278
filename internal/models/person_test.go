package models

import (
	"strings"
	"testing"
)

func TestPerson_Validate(t *testing.T) {
	if err := alice().Validate(); err != nil {
		t.Fatalf("valid person rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(p *Person)
		field  string
	}{
		{"blank name", func(p *Person) { p.Name = "" }, "name"},
		{"symbol name", func(p *Person) { p.Name = "Alice*" }, "name"},
		{"short phone", func(p *Person) { p.Phone = "12" }, "phone"},
		{"alpha phone", func(p *Person) { p.Phone = "91a34567" }, "phone"},
		{"bad email", func(p *Person) { p.Email = "alice.example.com" }, "email"},
		{"bad status", func(p *Person) { p.Status = "archived" }, "status"},
		{"missing status", func(p *Person) { p.Status = "" }, "status"},
		{"bad tag", func(p *Person) { p.Tags = []string{"has space"} }, "tags"},
	}
	for _, tt := range cases {
		p := alice()
		tt.mutate(&p)
		err := p.Validate()
		if err == nil {
			t.Errorf("%s: expected validation error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.field) {
			t.Errorf("%s: error %q does not mention %q", tt.name, err, tt.field)
		}
	}
}

func TestPerson_IsSamePerson(t *testing.T) {
	a := alice()
	b := Person{Name: "alice tan", Phone: "000"}
	if !a.IsSamePerson(b) {
		t.Error("names differing only in case should be the same person")
	}
	if a.IsSamePerson(Person{Name: "Alice"}) {
		t.Error("different names should not be the same person")
	}
}

func TestPerson_String(t *testing.T) {
	p := alice()
	p.Remark = "Likes to swim."
	want := "Alice Tan; Phone: 91234567; Email: alice@example.com; Status: uncontacted; Remark: Likes to swim.; Tags: [friends][big-spender]"
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPerson_CloneIsDeep(t *testing.T) {
	p := alice()
	c := p.Clone()
	c.Tags[0] = "changed"
	if p.Tags[0] != "friends" {
		t.Error("Clone shares tag storage")
	}
}

func TestNormalizeTags(t *testing.T) {
	got := NormalizeTags([]string{" friends", "Friends", "", "colleague", "FRIENDS "})
	if len(got) != 2 || got[0] != "friends" || got[1] != "colleague" {
		t.Errorf("NormalizeTags = %v", got)
	}
}

func TestParseStatus(t *testing.T) {
	for _, in := range []string{"contacted", "CONTACTED", " Contacted "} {
		s, err := ParseStatus(in)
		if err != nil || s != StatusContacted {
			t.Errorf("ParseStatus(%q) = %q, %v", in, s, err)
		}
	}
	if _, err := ParseStatus("uncon"); err == nil {
		t.Error("partial status should fail")
	}
}

func TestIndex(t *testing.T) {
	i, err := FromOneBased(3)
	if err != nil {
		t.Fatal(err)
	}
	if i.ZeroBased() != 2 || i.OneBased() != 3 {
		t.Errorf("index = %d/%d", i.ZeroBased(), i.OneBased())
	}
	j, _ := FromZeroBased(2)
	if i != j {
		t.Error("equivalent indices should be equal")
	}
	if _, err := FromOneBased(0); err == nil {
		t.Error("zero one-based index should fail")
	}
	if _, err := FromZeroBased(-1); err == nil {
		t.Error("negative zero-based index should fail")
	}
}
