// Package parser turns single command lines into command values.
package parser

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/command"
	"github.com/starford/rolodex/internal/models"
	"github.com/starford/rolodex/internal/strutil"
)

// Parser parses the rolodex command language.
type Parser struct {
	applyRemarks bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithRemarks makes parsed remark commands change the address book instead
// of echoing their arguments back as a not-implemented failure.
func WithRemarks(enabled bool) Option {
	return func(p *Parser) {
		p.applyRemarks = enabled
	}
}

// New returns a Parser.
func New(opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses one line of user input.
func (p *Parser) Parse(line string) (command.Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, invalidFormat(command.UsageHelp)
	}

	word, args := line, ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		word, args = line[:i], line[i:]
	}

	switch strings.ToLower(word) {
	case command.WordAdd:
		return parseAdd(args)
	case command.WordEdit:
		return parseEdit(args)
	case command.WordDelete:
		return parseDelete(args)
	case command.WordFind:
		return parseFind(args)
	case command.WordRemark:
		return p.parseRemark(args)
	case command.WordList:
		return command.ListCommand{}, nil
	case command.WordClear:
		return command.ClearCommand{}, nil
	case command.WordHelp:
		return command.HelpCommand{}, nil
	case command.WordExit:
		return command.ExitCommand{}, nil
	default:
		return nil, apperr.New(apperr.ErrUnknownCommand, "%s", command.MessageUnknownCommand)
	}
}

func parseAdd(args string) (command.Command, error) {
	a := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixStatus, PrefixTag, PrefixRemark)
	if a.Preamble() != "" || !a.Has(PrefixName) || !a.Has(PrefixPhone) || !a.Has(PrefixEmail) {
		return nil, invalidFormat(command.UsageAdd)
	}
	if err := noDuplicates(a, PrefixName, PrefixPhone, PrefixEmail, PrefixStatus, PrefixRemark); err != nil {
		return nil, err
	}

	status := models.StatusUncontacted
	if v, ok := a.Value(PrefixStatus); ok {
		s, err := models.ParseStatus(v)
		if err != nil {
			return nil, apperr.New(apperr.ErrParse, "%s", err.Error())
		}
		status = s
	}

	name, _ := a.Value(PrefixName)
	phone, _ := a.Value(PrefixPhone)
	email, _ := a.Value(PrefixEmail)
	remark, _ := a.Value(PrefixRemark)
	person := models.Person{
		Name:   name,
		Phone:  phone,
		Email:  email,
		Status: status,
		Tags:   models.NormalizeTags(a.AllValues(PrefixTag)),
		Remark: remark,
	}
	if err := person.Validate(); err != nil {
		return nil, apperr.New(apperr.ErrInvalidPerson, "%s", err.Error())
	}
	return command.AddCommand{Person: person}, nil
}

func parseEdit(args string) (command.Command, error) {
	a := Tokenize(args, PrefixName, PrefixPhone, PrefixEmail, PrefixStatus, PrefixTag)
	idx, err := parseIndexArg(a.Preamble(), command.UsageEdit)
	if err != nil {
		return nil, err
	}
	if err := noDuplicates(a, PrefixName, PrefixPhone, PrefixEmail, PrefixStatus); err != nil {
		return nil, err
	}

	var d command.EditDescriptor
	if v, ok := a.Value(PrefixName); ok {
		d.Name = &v
	}
	if v, ok := a.Value(PrefixPhone); ok {
		d.Phone = &v
	}
	if v, ok := a.Value(PrefixEmail); ok {
		d.Email = &v
	}
	if v, ok := a.Value(PrefixStatus); ok {
		s, err := models.ParseStatus(v)
		if err != nil {
			return nil, apperr.New(apperr.ErrParse, "%s", err.Error())
		}
		d.Status = &s
	}
	if a.Has(PrefixTag) {
		// A lone empty "t:" clears every tag.
		tags := models.NormalizeTags(a.AllValues(PrefixTag))
		d.Tags = &tags
	}
	if !d.IsAnyFieldEdited() {
		return nil, apperr.New(apperr.ErrParse, "%s", command.MessageNotEdited)
	}
	return command.EditCommand{Index: idx, Edit: d}, nil
}

func parseDelete(args string) (command.Command, error) {
	idx, err := parseIndexArg(args, command.UsageDelete)
	if err != nil {
		return nil, err
	}
	return command.DeleteCommand{Index: idx}, nil
}

// parseFind accepts either bare name keywords ("find alice bob") or any mix
// of the n: t: s: p: e: prefixes.
func parseFind(args string) (command.Command, error) {
	trimmed := strings.TrimSpace(args)
	if trimmed == "" {
		return nil, invalidFormat(command.UsageFind)
	}

	a := Tokenize(args, PrefixName, PrefixTag, PrefixStatus, PrefixPhone, PrefixEmail)
	if !a.Has(PrefixName) && !a.Has(PrefixTag) && !a.Has(PrefixStatus) && !a.Has(PrefixPhone) && !a.Has(PrefixEmail) {
		filter := models.NewKeywordFilter(strings.Fields(trimmed), nil, nil, nil, nil)
		return command.FindCommand{Filter: filter}, nil
	}
	if a.Preamble() != "" {
		return nil, invalidFormat(command.UsageFind)
	}

	names := keywords(a, PrefixName)
	tags := keywords(a, PrefixTag)
	phones := keywords(a, PrefixPhone)
	emails := keywords(a, PrefixEmail)
	var status *string
	if v, ok := a.Value(PrefixStatus); ok {
		status = &v
	}
	if len(names) == 0 && len(tags) == 0 && len(phones) == 0 && len(emails) == 0 && (status == nil || *status == "") {
		return nil, invalidFormat(command.UsageFind)
	}

	filter := models.NewKeywordFilter(names, tags, status, phones, emails)
	return command.FindCommand{Filter: filter}, nil
}

func (p *Parser) parseRemark(args string) (command.Command, error) {
	a := Tokenize(args, PrefixRemark)
	if !a.Has(PrefixRemark) {
		return nil, invalidFormat(command.UsageRemark)
	}
	idx, err := parseIndexArg(a.Preamble(), command.UsageRemark)
	if err != nil {
		return nil, err
	}
	remark, _ := a.Value(PrefixRemark)
	return command.RemarkCommand{Index: idx, Remark: remark, Apply: p.applyRemarks}, nil
}

// keywords splits every value given for prefix into whitespace-separated words.
func keywords(a ArgMultimap, prefix Prefix) []string {
	return strings.Fields(strings.Join(a.AllValues(prefix), " "))
}

// parseIndexArg parses the index that leads edit, delete and remark. A
// missing index or extra words show the usage; a single malformed token
// reports the index itself.
func parseIndexArg(preamble, usage string) (models.Index, error) {
	preamble = strings.TrimSpace(preamble)
	if preamble == "" || strings.IndexFunc(preamble, unicode.IsSpace) >= 0 {
		return models.Index{}, invalidFormat(usage)
	}
	return parseIndex(preamble)
}

func parseIndex(s string) (models.Index, error) {
	if !strutil.IsNonZeroUnsignedInteger(s) {
		return models.Index{}, apperr.New(apperr.ErrParse, "%s", command.MessageInvalidIndex)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return models.Index{}, apperr.New(apperr.ErrParse, "%s", command.MessageInvalidIndex)
	}
	idx, err := models.FromOneBased(n)
	if err != nil {
		return models.Index{}, apperr.New(apperr.ErrParse, "%s", command.MessageInvalidIndex)
	}
	return idx, nil
}

func noDuplicates(a ArgMultimap, prefixes ...Prefix) error {
	dups := a.Duplicated(prefixes...)
	if len(dups) == 0 {
		return nil
	}
	names := make([]string, len(dups))
	for i, p := range dups {
		names[i] = string(p)
	}
	return apperr.New(apperr.ErrParse, "Multiple values specified for the following single-valued field(s): %s",
		strings.Join(names, " "))
}

func invalidFormat(usage string) error {
	return apperr.New(apperr.ErrParse, command.MessageInvalidCommandFormat, usage)
}
