package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize_NoPrefixes(t *testing.T) {
	a := Tokenize("  some preamble  ", PrefixName)
	if a.Preamble() != "some preamble" {
		t.Errorf("preamble = %q", a.Preamble())
	}
	if a.Has(PrefixName) {
		t.Error("unexpected name value")
	}
}

func TestTokenize_PrefixesAndPreamble(t *testing.T) {
	a := Tokenize(" 1 n:Alice Bob t:friends t:colleague  p:123 ", PrefixName, PrefixTag, PrefixPhone)
	if a.Preamble() != "1" {
		t.Errorf("preamble = %q", a.Preamble())
	}
	if v, _ := a.Value(PrefixName); v != "Alice Bob" {
		t.Errorf("name = %q", v)
	}
	if diff := cmp.Diff([]string{"friends", "colleague"}, a.AllValues(PrefixTag)); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if v, _ := a.Value(PrefixPhone); v != "123" {
		t.Errorf("phone = %q", v)
	}
}

func TestTokenize_PrefixInsideWordIgnored(t *testing.T) {
	a := Tokenize(" e:alice@example.com n:Ann:Lee", PrefixEmail, PrefixName)
	if v, _ := a.Value(PrefixEmail); v != "alice@example.com" {
		t.Errorf("email = %q", v)
	}
	if v, _ := a.Value(PrefixName); v != "Ann:Lee" {
		t.Errorf("name = %q", v)
	}
}

func TestTokenize_LeadingPrefix(t *testing.T) {
	a := Tokenize("n:Alice", PrefixName)
	if v, ok := a.Value(PrefixName); !ok || v != "Alice" {
		t.Errorf("name = %q, %v", v, ok)
	}
	if a.Preamble() != "" {
		t.Errorf("preamble = %q", a.Preamble())
	}
}

func TestTokenize_EmptyValueAndDuplicates(t *testing.T) {
	a := Tokenize(" t: n:A n:B", PrefixTag, PrefixName)
	if diff := cmp.Diff([]string{""}, a.AllValues(PrefixTag)); diff != "" {
		t.Errorf("tags mismatch (-want +got):\n%s", diff)
	}
	if v, _ := a.Value(PrefixName); v != "B" {
		t.Errorf("last name value = %q, want B", v)
	}
	if diff := cmp.Diff([]Prefix{PrefixName}, a.Duplicated(PrefixTag, PrefixName)); diff != "" {
		t.Errorf("duplicated mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenize_PrefixAfterMultiByteLetterIgnored(t *testing.T) {
	// "Å" and "à" end in the bytes 0x85 and 0xA0.
	a := Tokenize(" n:Åp:123 Bàt:x", PrefixName, PrefixPhone, PrefixTag)
	if v, _ := a.Value(PrefixName); v != "Åp:123 Bàt:x" {
		t.Errorf("name = %q", v)
	}
	if a.Has(PrefixPhone) || a.Has(PrefixTag) {
		t.Errorf("prefix inside a word was split off: phone=%v tag=%v", a.AllValues(PrefixPhone), a.AllValues(PrefixTag))
	}
}

func TestTokenize_UnicodeSpaceSeparates(t *testing.T) {
	a := Tokenize(" n:Ann\u00a0p:123", PrefixName, PrefixPhone)
	if v, _ := a.Value(PrefixName); v != "Ann" {
		t.Errorf("name = %q", v)
	}
	if v, _ := a.Value(PrefixPhone); v != "123" {
		t.Errorf("phone = %q", v)
	}
}
