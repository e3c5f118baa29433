package species

import (
	"github.com/identiflora/identiflora/pkg/query"
	"github.com/identiflora/identiflora/pkg/repository"
)

func projection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "plant_species", "ps").
		Project("species_id", "ID").
		Project("common_name", "CommonName").
		Project("scientific_name", "ScientificName").
		Project("genus", "Genus").
		Project("img_url", "ImageFile")
}

func defaultSort() []query.SortField {
	return []query.SortField{{Field: "ScientificName"}}
}

// Filters narrows species list queries.
type Filters struct {
	Genus          *string
	ScientificName *string
}

func applyFilters(b *query.Builder, f Filters) *query.Builder {
	return b.
		WhereEquals("ScientificName", f.ScientificName).
		WhereContains("Genus", f.Genus)
}

func scanSpecies(s repository.Scanner) (Species, error) {
	var sp Species
	err := s.Scan(&sp.ID, &sp.CommonName, &sp.ScientificName, &sp.Genus, &sp.ImageFile)
	return sp, err
}
