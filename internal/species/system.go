// Package species manages the plant species catalog and image URL resolution.
package species

import (
	"context"

	"github.com/identiflora/identiflora/pkg/pagination"
)

// System defines the plant species operations.
type System interface {
	Handler() *Handler
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Species], error)
	Find(ctx context.Context, id int) (*Species, error)
	FindByScientificName(ctx context.Context, name string) (*Species, error)
	Create(ctx context.Context, cmd CreateCommand) (*Species, error)
}
