// Package contactfile encodes a person as Markdown with YAML frontmatter.
//
//	---
//	id: 8f0c...
//	name: Alice Pauline
//	phone: "94351253"
//	email: alice@example.com
//	status: uncontacted
//	tags: [friends]
//	created: 2024-01-01T00:00:00Z
//	---
//	Remark text, possibly over several lines.
package contactfile

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/starford/rolodex/internal/models"
)

const delim = "---"

// Ext is the file extension of contact files.
const Ext = ".md"

// ErrNoFrontmatter is returned when a file does not start with a frontmatter block.
var ErrNoFrontmatter = errors.New("contactfile: missing frontmatter")

type frontmatter struct {
	ID      string    `yaml:"id"`
	Name    string    `yaml:"name"`
	Phone   string    `yaml:"phone"`
	Email   string    `yaml:"email"`
	Status  string    `yaml:"status"`
	Tags    []string  `yaml:"tags,flow"`
	Created time.Time `yaml:"created"`
}

// PathFor returns the file name a person is stored under.
func PathFor(id string) string {
	return id + Ext
}

// Encode renders p as a contact file.
func Encode(p models.Person) ([]byte, error) {
	fm := frontmatter{
		ID:      p.ID,
		Name:    p.Name,
		Phone:   p.Phone,
		Email:   p.Email,
		Status:  string(p.Status),
		Tags:    models.NormalizeTags(p.Tags),
		Created: p.CreatedAt.UTC(),
	}
	head, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("contactfile: marshal: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(delim + "\n")
	buf.Write(head)
	buf.WriteString(delim + "\n")
	if p.Remark != "" {
		buf.WriteString(p.Remark)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Decode parses a contact file and validates the result.
func Decode(data []byte) (models.Person, error) {
	head, body, err := split(data)
	if err != nil {
		return models.Person{}, err
	}

	var fm frontmatter
	if err := yaml.Unmarshal(head, &fm); err != nil {
		return models.Person{}, fmt.Errorf("contactfile: unmarshal: %w", err)
	}

	status := models.StatusUncontacted
	if fm.Status != "" {
		s, err := models.ParseStatus(fm.Status)
		if err != nil {
			return models.Person{}, fmt.Errorf("contactfile: %w", err)
		}
		status = s
	}

	p := models.Person{
		ID:        fm.ID,
		Name:      fm.Name,
		Phone:     fm.Phone,
		Email:     fm.Email,
		Status:    status,
		Tags:      models.NormalizeTags(fm.Tags),
		Remark:    body,
		CreatedAt: fm.Created.UTC(),
	}
	if p.ID == "" {
		return models.Person{}, errors.New("contactfile: missing id")
	}
	if err := p.Validate(); err != nil {
		return models.Person{}, fmt.Errorf("contactfile: %w", err)
	}
	return p, nil
}

// split separates the YAML block between the leading --- fences from the body.
func split(data []byte) ([]byte, string, error) {
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, "", ErrNoFrontmatter
	}

	rest := trimmed[len(delim):]
	idx := bytes.Index(rest, []byte("\n"+delim))
	if idx < 0 {
		return nil, "", ErrNoFrontmatter
	}

	head := rest[:idx]
	after := rest[idx+1+len(delim):]
	body := strings.Trim(string(after), "\r\n")
	return head, body, nil
}
