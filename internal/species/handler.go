package species

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/identiflora/identiflora/pkg/handlers"
	"github.com/identiflora/identiflora/pkg/pagination"
	"github.com/identiflora/identiflora/pkg/routes"
)

// Handler exposes species operations over HTTP.
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

// Routes returns the species catalog route group.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/plant-species",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.List},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: h.Find},
			{Method: http.MethodPost, Pattern: "", Handler: h.Create},
		},
	}
}

// URLRoutes returns the image URL lookup route group.
func (h *Handler) URLRoutes() routes.Group {
	return routes.Group{
		Prefix: "/plant-species-url",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: h.ResolveImageURL},
		},
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	page := pagination.PageRequestFromQuery(r.URL.Query(), h.pages)

	filters := Filters{}
	if genus := r.URL.Query().Get("genus"); genus != "" {
		filters.Genus = &genus
	}
	if name := r.URL.Query().Get("scientific_name"); name != "" {
		filters.ScientificName = &name
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

	sp, err := h.system.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, sp)
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

	sp, err := h.system.Create(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, sp)
}

// ResolveImageURL returns the image address for a species as plain text.
// Host, port, and image path default to the values of the incoming request
// when not supplied.
func (h *Handler) ResolveImageURL(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	sp, err := h.system.FindByScientificName(r.Context(), q.Get("scientific_name"))
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	host := q.Get("host")
	portValue := q.Get("port")
	if host == "" || portValue == "" {
		reqHost, reqPort := splitRequestHost(r.Host)
		if host == "" {
			host = reqHost
		}
		if portValue == "" {
			portValue = reqPort
		}
	}

	port, err := strconv.Atoi(portValue)
	if err != nil || port < 1 || port > 65535 {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, ErrInvalidPort)
		return
	}

	imgPath := q.Get("img_path")
	if imgPath == "" {
		imgPath = "plant-images"
	}

	handlers.RespondText(w, http.StatusOK, ImageURL(host, port, imgPath, sp.ImageFile))
}

func splitRequestHost(requestHost string) (host, port string) {
	host, port, err := net.SplitHostPort(requestHost)
	if err != nil {
		return requestHost, "80"
	}
	return host, port
}
