package main

import (
	"encoding/json"
	"net/http"

	"github.com/identiflora/identiflora/internal/api"
	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/internal/infrastructure"
	"github.com/identiflora/identiflora/pkg/module"
)

type Modules struct {
	API    *module.Module
	Images *module.Module
}

func NewModules(cfg *config.Config, infra *infrastructure.Infrastructure, domain *api.Domain) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra, domain)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		Images: api.NewImagesModule(cfg, infra),
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Images)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
