package corrections

import (
	"github.com/identiflora/identiflora/pkg/query"
	"github.com/identiflora/identiflora/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "incorrect_identification", "ii").
		Project("identification_id", "IdentificationID").
		Project("correct_species_id", "CorrectSpeciesID").
		Project("incorrect_species_id", "IncorrectSpeciesID").
		Project("reported_at", "ReportedAt")
}

func defaultSort() []query.SortField {
	return []query.SortField{{Field: "ReportedAt", Descending: true}}
}

// Filters narrows correction list queries.
type Filters struct {
	IdentificationID   *int
	CorrectSpeciesID   *int
	IncorrectSpeciesID *int
}

func applyFilters(b *query.Builder, f Filters) *query.Builder {
	return b.
		WhereEquals("IdentificationID", f.IdentificationID).
		WhereEquals("CorrectSpeciesID", f.CorrectSpeciesID).
		WhereEquals("IncorrectSpeciesID", f.IncorrectSpeciesID)
}

func scanCorrection(s repository.Scanner) (Correction, error) {
	var c Correction
	err := s.Scan(&c.IdentificationID, &c.CorrectSpeciesID, &c.IncorrectSpeciesID, &c.ReportedAt)
	return c, err
}
