package corrections

import (
	"context"

	"github.com/identiflora/identiflora/pkg/pagination"
)

// System defines the misidentification correction operations.
type System interface {
	Handler() *Handler
	Create(ctx context.Context, cmd CreateCommand) (*Correction, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Correction], error)
	Find(ctx context.Context, identificationID int) (*Correction, error)
}
