// Package infrastructure wires shared service dependencies: logging,
// lifecycle coordination, database, and image storage.
package infrastructure

import (
	"log/slog"
	"os"

	"github.com/identiflora/identiflora/internal/config"
	"github.com/identiflora/identiflora/pkg/database"
	"github.com/identiflora/identiflora/pkg/lifecycle"
	"github.com/identiflora/identiflora/pkg/storage"
)

// Infrastructure holds the shared dependencies injected into domain systems.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Database  database.System
	Storage   storage.System
}

// New constructs the infrastructure from configuration. Nothing connects
// until Start registers the subsystem hooks and the coordinator runs them.
func New(cfg *config.Config) (*Infrastructure, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).
		With("version", cfg.Version)

	coordinator := lifecycle.New()

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.New(&cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	return &Infrastructure{
		Lifecycle: coordinator,
		Logger:    logger,
		Database:  db,
		Storage:   store,
	}, nil
}

// Start registers database and storage startup and shutdown hooks with the
// lifecycle coordinator.
func (i *Infrastructure) Start() error {
	if err := i.Database.Start(i.Lifecycle); err != nil {
		return err
	}
	return i.Storage.Start(i.Lifecycle)
}
