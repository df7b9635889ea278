package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Prefix introduces a named argument, e.g. "n:" in "n:Alice".
type Prefix string

const (
	PrefixName   Prefix = "n:"
	PrefixPhone  Prefix = "p:"
	PrefixEmail  Prefix = "e:"
	PrefixStatus Prefix = "s:"
	PrefixTag    Prefix = "t:"
	PrefixRemark Prefix = "r:"
)

// ArgMultimap holds the arguments of one command line, grouped by prefix.
type ArgMultimap struct {
	preamble string
	values   map[Prefix][]string
}

// Preamble returns the text before the first prefix, trimmed.
func (a ArgMultimap) Preamble() string { return a.preamble }

// Value returns the last value given for p.
func (a ArgMultimap) Value(p Prefix) (string, bool) {
	vs := a.values[p]
	if len(vs) == 0 {
		return "", false
	}
	return vs[len(vs)-1], true
}

// AllValues returns every value given for p, in order of appearance.
func (a ArgMultimap) AllValues(p Prefix) []string {
	return append([]string(nil), a.values[p]...)
}

// Has reports whether p appeared at least once.
func (a ArgMultimap) Has(p Prefix) bool { return len(a.values[p]) > 0 }

// Duplicated returns the prefixes among ps that appeared more than once.
func (a ArgMultimap) Duplicated(ps ...Prefix) []Prefix {
	var out []Prefix
	for _, p := range ps {
		if len(a.values[p]) > 1 {
			out = append(out, p)
		}
	}
	return out
}

type position struct {
	start  int
	prefix Prefix
}

// Tokenize splits args into a preamble and prefixed values. A prefix counts
// only at the start of args or right after whitespace, so "a@b.c" never
// starts an argument even when a prefix like "b." exists.
func Tokenize(args string, prefixes ...Prefix) ArgMultimap {
	var found []position
	for i := 0; i < len(args); i++ {
		if i > 0 {
			prev, _ := utf8.DecodeLastRuneInString(args[:i])
			if !unicode.IsSpace(prev) {
				continue
			}
		}
		for _, p := range prefixes {
			if strings.HasPrefix(args[i:], string(p)) {
				found = append(found, position{start: i, prefix: p})
				i += len(p) - 1
				break
			}
		}
	}

	out := ArgMultimap{values: make(map[Prefix][]string)}
	if len(found) == 0 {
		out.preamble = strings.TrimSpace(args)
		return out
	}
	out.preamble = strings.TrimSpace(args[:found[0].start])
	for k, pos := range found {
		end := len(args)
		if k+1 < len(found) {
			end = found[k+1].start
		}
		value := strings.TrimSpace(args[pos.start+len(pos.prefix) : end])
		out.values[pos.prefix] = append(out.values[pos.prefix], value)
	}
	return out
}
