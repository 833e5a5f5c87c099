package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/robby/mosaic/internal/projects"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func (a *app) newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve stored project configs over HTTP",
		Long: `serve exposes GET /api/v1/projects/{projectID}/config backed by the
projects table of the database at database.url (MOSAIC_DATABASE_URL).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.store(migrate)
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), projects.NewRouter(projects.NewHandler(store, a.logger)))
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "Create the projects table before serving.")
	return cmd
}

// serve runs the HTTP server until ctx is done.
func (a *app) serve(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              a.cfg.Server.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
