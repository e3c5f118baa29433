package corrections

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/identiflora/identiflora/internal/species"
	"github.com/identiflora/identiflora/internal/submissions"
	"github.com/identiflora/identiflora/pkg/pagination"
	"github.com/identiflora/identiflora/pkg/query"
	"github.com/identiflora/identiflora/pkg/repository"
)

type repo struct {
	db          *sql.DB
	logger      *slog.Logger
	pages       pagination.Config
	submissions submissions.System
	species     species.System
	handler     *Handler
}

// New creates the corrections System. Submission and species lookups are
// delegated to their owning systems.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pages pagination.Config,
	subs submissions.System,
	sp species.System,
) System {
	r := &repo{
		db:          db,
		logger:      logger.With("system", "corrections"),
		pages:       pages,
		submissions: subs,
		species:     sp,
	}
	r.handler = NewHandler(r, r.logger, pages)
	return r
}

func (r *repo) Handler() *Handler {
	return r.handler
}

// Create validates and records a misidentification report. Referential
// checks run against live data; the duplicate check and insert share a
// transaction so concurrent reports for the same submission cannot both
// land.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Correction, error) {
	if cmd.CorrectSpeciesID == cmd.IncorrectSpeciesID {
		return nil, ErrSameSpecies
	}

	if _, err := r.submissions.Find(ctx, cmd.IdentificationID); err != nil {
		if errors.Is(err, submissions.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, err
	}

	var correct *species.Species

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sp, err := r.species.Find(gctx, cmd.CorrectSpeciesID)
		if err != nil {
			return err
		}
		correct = sp
		return nil
	})
	g.Go(func() error {
		_, err := r.species.Find(gctx, cmd.IncorrectSpeciesID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, species.ErrNotFound) {
			return nil, ErrSpeciesNotFound
		}
		return nil, err
	}

	offered, err := r.submissions.HasOption(ctx, cmd.IdentificationID, cmd.IncorrectSpeciesID)
	if err != nil {
		return nil, err
	}
	if !offered {
		return nil, ErrOptionNotFound
	}

	created, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Correction, error) {
		const existsStmt = `
			SELECT EXISTS (
				SELECT 1 FROM public.incorrect_identification
				WHERE identification_id = $1
			)`

		exists, err := repository.Exists(ctx, tx, existsStmt, cmd.IdentificationID)
		if err != nil {
			return Correction{}, err
		}
		if exists {
			return Correction{}, ErrDuplicate
		}

		if correct.ImageFile == "" {
			return Correction{}, ErrMissingImage
		}

		const insertStmt = `
			INSERT INTO public.incorrect_identification
				(identification_id, correct_species_id, incorrect_species_id, reported_at)
			VALUES ($1, $2, $3, now())
			RETURNING identification_id, correct_species_id, incorrect_species_id, reported_at`

		args := []any{cmd.IdentificationID, cmd.CorrectSpeciesID, cmd.IncorrectSpeciesID}

		c, err := repository.QueryOne(ctx, tx, insertStmt, args, scanCorrection)
		if err != nil {
			return Correction{}, repository.MapError(err, ErrNotFound, ErrDuplicate)
		}

		return c, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info("correction recorded",
		"identification_id", created.IdentificationID,
		"correct_species_id", created.CorrectSpeciesID,
		"incorrect_species_id", created.IncorrectSpeciesID,
	)

	return &created, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Correction], error) {
	page.Normalize(r.pages)

	builder := applyFilters(query.NewBuilder(projection(), defaultSort()...), filters).
		OrderByFields(page.Sort)

	countSQL, countArgs := builder.BuildCount()

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	pageSQL, pageArgs := builder.BuildPage(page.Page, page.PageSize)

	data, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCorrection)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, identificationID int) (*Correction, error) {
	stmt, args := query.NewBuilder(projection()).BuildSingle("IdentificationID", identificationID)

	c, err := repository.QueryOne(ctx, r.db, stmt, args, scanCorrection)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &c, nil
}
