package api

import (
	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/internal/corrections"
	"github.com/identiflora/identiflora/internal/infrastructure"
	"github.com/identiflora/identiflora/internal/species"
	"github.com/identiflora/identiflora/internal/submissions"
)

// Domain aggregates the systems served by the API module.
type Domain struct {
	Species     species.System
	Submissions submissions.System
	Corrections corrections.System
}

// NewDomain constructs the domain systems over the shared database
// connection. Corrections delegates its referential lookups to the
// species and submissions systems.
func NewDomain(infra *infrastructure.Infrastructure, cfg *config.APIConfig) *Domain {
	db := infra.Database.Connection()

	sp := species.New(db, infra.Logger, cfg.Pagination)
	subs := submissions.New(db, infra.Logger)
	corr := corrections.New(db, infra.Logger, cfg.Pagination, subs, sp)

	return &Domain{
		Species:     sp,
		Submissions: subs,
		Corrections: corr,
	}
}
