package submissions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/identiflora/identiflora/pkg/handlers"
	"github.com/identiflora/identiflora/pkg/routes"
)

// Handler exposes submission lookups over HTTP.
type Handler struct {
	system System
	logger *slog.Logger
}

func NewHandler(system System, logger *slog.Logger) *Handler {
	return &Handler{
		system: system,
		logger: logger,
	}
}

func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/identification-submissions",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find},
		},
	}
}

func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidRequest)
		return
	}

	sub, err := h.system.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sub)
}
