// Package api assembles the HTTP modules: the domain API under its base
// path and the plant image store under its container path.
package api

import (
	"net/http"

	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/internal/infrastructure"
	"github.com/identiflora/identiflora/pkg/middleware"
	"github.com/identiflora/identiflora/pkg/module"
	"github.com/identiflora/identiflora/pkg/openapi"
	"github.com/identiflora/identiflora/pkg/routes"
)

// NewModule builds the domain API module mounted at the configured base path.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure, domain *Domain) (*module.Module, error) {
	mux := http.NewServeMux()

	routes.Register(mux,
		domain.Corrections.Handler().Routes(),
		domain.Species.Handler().Routes(),
		domain.Species.Handler().URLRoutes(),
		domain.Submissions.Handler().Routes(),
	)

	doc, err := buildSpec(cfg)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(doc))

	m := module.New(cfg.API.BasePath, mux)
	applyMiddleware(m, cfg, infra)
	return m, nil
}

func applyMiddleware(m *module.Module, cfg *config.Config, infra *infrastructure.Infrastructure) {
	m.Use(middleware.RequestID())
	m.Use(middleware.Logger(infra.Logger))
	m.Use(middleware.CORS(&cfg.API.CORS))
}
