package submissions

import "context"

// System defines the submission lookups used by the API and the
// corrections workflow.
type System interface {
	Handler() *Handler
	Find(ctx context.Context, id int) (*Submission, error)
	HasOption(ctx context.Context, id, speciesID int) (bool, error)
}
