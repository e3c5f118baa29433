package species

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/identiflora/identiflora/pkg/pagination"
	"github.com/identiflora/identiflora/pkg/query"
	"github.com/identiflora/identiflora/pkg/repository"
)

type repo struct {
	db      *sql.DB
	logger  *slog.Logger
	pages   pagination.Config
	handler *Handler
}

// New creates the species System backed by the given database.
func New(db *sql.DB, logger *slog.Logger, pages pagination.Config) System {
	r := &repo{
		db:     db,
		logger: logger.With("system", "species"),
		pages:  pages,
	}
	r.handler = NewHandler(r, r.logger, pages)
	return r
}

func (r *repo) Handler() *Handler {
	return r.handler
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Species], error) {
	page.Normalize(r.pages)

	builder := applyFilters(query.NewBuilder(projection(), defaultSort()...), filters).
		WhereSearch(page.Search, "CommonName", "ScientificName").
		OrderByFields(page.Sort)

	countSQL, countArgs := builder.BuildCount()

	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, err
	}

	pageSQL, pageArgs := builder.BuildPage(page.Page, page.PageSize)

	data, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSpecies)
	if err != nil {
		return nil, err
	}

	result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id int) (*Species, error) {
	stmt, args := query.NewBuilder(projection()).BuildSingle("ID", id)

	sp, err := repository.QueryOne(ctx, r.db, stmt, args, scanSpecies)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &sp, nil
}

func (r *repo) FindByScientificName(ctx context.Context, name string) (*Species, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	stmt, args := query.NewBuilder(projection()).
		WhereEquals("ScientificName", &name).
		BuildSingleOrNull()

	sp, err := repository.QueryOne(ctx, r.db, stmt, args, scanSpecies)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &sp, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Species, error) {
	const stmt = `
		INSERT INTO public.plant_species (common_name, scientific_name, genus, img_url)
		VALUES ($1, $2, $3, $4)
		RETURNING species_id, common_name, scientific_name, genus, img_url`

	args := []any{cmd.CommonName, cmd.ScientificName, cmd.Genus, cmd.ImageFile}

	sp, err := repository.QueryOne(ctx, r.db, stmt, args, scanSpecies)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("species registered", "species_id", sp.ID, "scientific_name", sp.ScientificName)
	return &sp, nil
}
