package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/rolodex/internal/apperr"
	"github.com/starford/rolodex/internal/command"
	"github.com/starford/rolodex/internal/index"
	"github.com/starford/rolodex/internal/models"
)

// Service is what the handlers need from the address book.
type Service interface {
	Execute(ctx context.Context, line string) (command.Result, error)
	Persons() []models.Person
	Filtered() []models.Person
	Search(ctx context.Context, query string, limit int) ([]index.SearchResult, error)
}

// Handler holds API route handlers.
type Handler struct {
	svc Service
}

// NewHandler creates a new Handler.
func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// ListPersons handles GET /api/persons.
//
//	@Summary		List persons
//	@Tags			persons
//	@Produce		json
//	@Param			view	query		string	false	"Which list to return"	Enums(all, filtered)
//	@Success		200		{object}	PersonListResponse
//	@Security		BearerAuth
//	@Router			/persons [get]
func (h *Handler) ListPersons(w http.ResponseWriter, r *http.Request) {
	var persons []Person
	switch r.URL.Query().Get("view") {
	case "", "all":
		persons = h.svc.Persons()
	case "filtered":
		persons = h.svc.Filtered()
	default:
		writeJSON(w, http.StatusBadRequest, errorBody("view must be 'all' or 'filtered'"))
		return
	}
	writeJSON(w, http.StatusOK, PersonListResponse{
		Persons: nonNilPersons(persons),
		Total:   len(persons),
	})
}

// GetPerson handles GET /api/persons/{id}.
//
//	@Summary		Get a single person by id
//	@Tags			persons
//	@Produce		json
//	@Param			id	path		string	true	"Person id"
//	@Success		200	{object}	Person
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/persons/{id} [get]
func (h *Handler) GetPerson(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	for _, p := range h.svc.Persons() {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, errResponse{Error: "not found", Kind: apperr.KindName(apperr.ErrNotFound)})
}

// RunCommand handles POST /api/commands.
//
//	@Summary		Run one command line
//	@Tags			commands
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CommandRequest	true	"Command line"
//	@Success		200		{object}	CommandResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/commands [post]
func (h *Handler) RunCommand(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64<<10)
	var req CommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Command == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("command is required"))
		return
	}

	res, err := h.svc.Execute(r.Context(), req.Command)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			writeJSON(w, http.StatusBadRequest, errResponse{Error: ae.Msg, Kind: apperr.KindName(ae.Kind)})
			return
		}
		slog.Error("command failed", slog.String("command", req.Command), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}

	writeJSON(w, http.StatusOK, CommandResponse{
		Feedback: res.Feedback,
		Persons:  nonNilPersons(h.svc.Filtered()),
		ShowHelp: res.ShowHelp,
		Exit:     res.Exit,
	})
}

// Help handles GET /api/commands/help.
//
//	@Summary		Command language reference
//	@Tags			commands
//	@Produce		json
//	@Success		200	{object}	HelpResponse
//	@Security		BearerAuth
//	@Router			/commands/help [get]
func (h *Handler) Help(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HelpResponse{Help: command.HelpText()})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across contacts
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}
