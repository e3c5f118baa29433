package submissions

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/identiflora/identiflora/pkg/query"
	"github.com/identiflora/identiflora/pkg/repository"
)

type repo struct {
	db      *sql.DB
	logger  *slog.Logger
	handler *Handler
}

// New creates the submissions System backed by the given database.
func New(db *sql.DB, logger *slog.Logger) System {
	r := &repo{
		db:     db,
		logger: logger.With("system", "submissions"),
	}
	r.handler = NewHandler(r, r.logger)
	return r
}

func (r *repo) Handler() *Handler {
	return r.handler
}

func (r *repo) Find(ctx context.Context, id int) (*Submission, error) {
	stmt, args := query.NewBuilder(projection()).BuildSingle("ID", id)

	sub, err := repository.QueryOne(ctx, r.db, stmt, args, scanSubmission)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, err)
	}

	const optStmt = `
		SELECT species_id FROM public.identification_option
		WHERE identification_id = $1
		ORDER BY species_id`

	optionIDs, err := repository.QueryMany(ctx, r.db, optStmt, []any{id}, scanOptionID)
	if err != nil {
		return nil, err
	}

	sub.OptionIDs = optionIDs
	return &sub, nil
}

func (r *repo) HasOption(ctx context.Context, id, speciesID int) (bool, error) {
	const stmt = `
		SELECT EXISTS (
			SELECT 1 FROM public.identification_option
			WHERE identification_id = $1 AND species_id = $2
		)`

	return repository.Exists(ctx, r.db, stmt, id, speciesID)
}
