package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/robby/mosaic/internal/projects"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// openStore is replaced in tests.
var openStore = func(dsn string, logger *log.Logger) (*projects.Store, error) {
	return projects.Open(dsn, logger)
}

// store opens the database at database.url, creating the table first when
// migrate is set.
func (a *app) store(migrate bool) (*projects.Store, error) {
	if a.cfg.Database.URL == "" {
		return nil, errors.New("database.url is not set: pass it in the config file or MOSAIC_DATABASE_URL")
	}

	store, err := openStore(a.cfg.Database.URL, a.logger)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := store.Migrate(); err != nil {
			return nil, fmt.Errorf("failed to migrate: %w", err)
		}
	}
	return store, nil
}

func (a *app) newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage stored project configs",
	}
	cmd.AddCommand(a.newProjectsPutCmd())
	return cmd
}

func (a *app) newProjectsPutCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "put <project-id> <file>",
		Short: "Store a local mosaic.toml as a project's config",
		Long: `put reads a TOML project config and stores it under project-id in the
projects table, replacing any config already there. The stored config is
what serve returns for that project.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid project id %q: %w", args[0], err)
			}
			cfg, err := projects.LoadFile(afero.NewOsFs(), args[1])
			if err != nil {
				return err
			}

			store, err := a.store(migrate)
			if err != nil {
				return err
			}
			if err := store.Put(cmd.Context(), id, cfg); err != nil {
				return err
			}

			a.logger.Info("Stored project config", "id", id, "file", args[1])
			return nil
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Create the projects table before storing.")
	return cmd
}
