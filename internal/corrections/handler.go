package corrections

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/identiflora/identiflora/pkg/handlers"
	"github.com/identiflora/identiflora/pkg/pagination"
	"github.com/identiflora/identiflora/pkg/routes"
)

// Handler exposes correction operations over HTTP.
type Handler struct {
	system   System
	logger   *slog.Logger
	pages    pagination.Config
	validate *validator.Validate
}

func NewHandler(system System, logger *slog.Logger, pages pagination.Config) *Handler {
	return &Handler{
		system:   system,
		logger:   logger,
		pages:    pages,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/incorrect-identifications",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: h.Create},
			{Method: http.MethodGet, Pattern: "", Handler: h.List},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find},
		},
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var cmd CreateCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	if err := h.validate.Struct(cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("%w: %w", ErrInvalidRequest, err))
		return
	}

	c, err := h.system.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CreateResult{
		IdentificationID:   c.IdentificationID,
		CorrectSpeciesID:   c.CorrectSpeciesID,
		IncorrectSpeciesID: c.IncorrectSpeciesID,
		Message:            RecordedMessage,
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pages)

	filters := Filters{}
	if id, err := strconv.Atoi(r.URL.Query().Get("identification_id")); err == nil {
		filters.IdentificationID = &id
	}
	if id, err := strconv.Atoi(r.URL.Query().Get("correct_species_id")); err == nil {
		filters.CorrectSpeciesID = &id
	}
	if id, err := strconv.Atoi(r.URL.Query().Get("incorrect_species_id")); err == nil {
		filters.IncorrectSpeciesID = &id
	}

	result, err := h.system.List(r.Context(), page, filters)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	c, err := h.system.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, c)
}
