// Package strutil holds small text helpers used by the matcher and parser.
package strutil

import (
	"strings"
	"unicode"
)

// ContainsWordIgnoreCase reports whether sentence contains word as a whole,
// whitespace-delimited token, ignoring case.
//
//	ContainsWordIgnoreCase("ABc def", "abc") == true
//	ContainsWordIgnoreCase("ABc def", "AB")  == false
//
// An empty word, or one that itself contains whitespace, never matches.
func ContainsWordIgnoreCase(sentence, word string) bool {
	word = strings.TrimSpace(word)
	if word == "" || strings.IndexFunc(word, unicode.IsSpace) >= 0 {
		return false
	}
	for _, w := range strings.Fields(sentence) {
		if strings.EqualFold(w, word) {
			return true
		}
	}
	return false
}

// IsNonZeroUnsignedInteger reports whether s is a base-10 integer literal
// greater than zero with no sign. Leading zeros are allowed.
func IsNonZeroUnsignedInteger(s string) bool {
	if s == "" {
		return false
	}
	nonZero := false
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
		if r != '0' {
			nonZero = true
		}
	}
	return nonZero
}
