package api

import (
	"github.com/starford/rolodex/internal/index"
	"github.com/starford/rolodex/internal/models"
)

// Person is the person payload (aliased from the domain layer).
type Person = models.Person

// CommandRequest is the request body for running a command line.
type CommandRequest struct {
	Command string `json:"command" example:"find n:alice" validate:"required"`
}

// CommandResponse reports a successful command and the list it left displayed.
type CommandResponse struct {
	Feedback string   `json:"feedback" example:"1 persons listed!" validate:"required"`
	Persons  []Person `json:"persons" validate:"required"`
	ShowHelp bool     `json:"show_help,omitempty"`
	Exit     bool     `json:"exit,omitempty"`
}

// PersonListResponse wraps a person listing.
type PersonListResponse struct {
	Persons []Person `json:"persons" validate:"required"`
	Total   int      `json:"total" example:"5" validate:"required"`
}

// SearchResult is a single search hit (aliased from the index layer).
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// HelpResponse carries the command reference.
type HelpResponse struct {
	Help string `json:"help" validate:"required"`
}

func nonNilPersons(ps []Person) []Person {
	if ps == nil {
		return []Person{}
	}
	return ps
}
