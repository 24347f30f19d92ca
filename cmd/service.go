package cmd

import (
	"context"
	"fmt"

	"persistence-setup/core/config"
	"persistence-setup/core/database"
	"persistence-setup/core/filemanager"
	"persistence-setup/core/journal"
	"persistence-setup/core/storage"
	"persistence-setup/feature/jpa"
	"persistence-setup/feature/jpa/templates"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// newService wires the persistence setup service from configuration.
func newService(ctx context.Context, cfg *config.Config, logg *zap.Logger) (*jpa.Service, error) {
	fs := afero.NewOsFs()

	var client storage.Client
	if cfg.Project.Backend == filemanager.BackendStorage {
		c, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		client = c
	}

	fm, err := filemanager.New(ctx, cfg.Project, fs, client, cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to open project files: %w", err)
	}

	bundle := templates.Default()
	matrix, dialects, err := jpa.LoadResources(bundle, fs, cfg.Rules.File)
	if err != nil {
		return nil, fmt.Errorf("failed to load rules: %w", err)
	}

	return jpa.NewService(fm, bundle, matrix, dialects, openJournal(cfg.Database, logg), logg), nil
}

// openJournal connects the change journal. The journal is optional: any
// failure is logged and nil is returned.
func openJournal(cfg database.Config, logg *zap.Logger) *journal.Store {
	if !cfg.Enabled {
		return nil
	}
	db, err := database.Connect(cfg)
	if err != nil {
		logg.Warn("Optional journal database connection failed", zap.Error(err))
		return nil
	}
	store := journal.NewStore(db, logg)
	if err := store.Migrate(); err != nil {
		logg.Warn("Journal migration failed", zap.Error(err))
		return nil
	}
	logg.Debug("Connected to journal database", zap.String("driver", cfg.Driver))
	return store
}
