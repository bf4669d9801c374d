package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"pet-adoption/internal/adapters/auth/jwtauth"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/adapters/storage/s3images"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/ports/auth"
	"pet-adoption/internal/router"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	var db *sql.DB
	if cfg.DatabaseDSN != "" {
		opened, err := pg.Open(cfg.DatabaseDSN)
		if err != nil {
			return err
		}
		defer opened.Close()
		if err := pg.Migrate(ctx, opened); err != nil {
			return err
		}
		db = opened
	}

	var images pets.ImageStore
	if cfg.S3.Enabled() {
		store, err := s3images.New(ctx, cfg.S3)
		if err != nil {
			return err
		}
		images = store
	}

	tokens := jwtauth.New(cfg.JWTSecret, cfg.TokenTTL)
	var verifier auth.AuthVerifier = tokens
	if cfg.DevAuth {
		log.Warn("dev auth enabled: X-Debug-User-ID is trusted", nil)
		verifier = nil
	}

	handler := router.NewRouter(router.Options{
		AuthVerifier:          verifier,
		Issuer:                tokens,
		DB:                    db,
		Images:                images,
		Logger:                log,
		SeedModeratorEmail:    cfg.SeedModeratorEmail,
		SeedModeratorPassword: cfg.SeedModeratorPassword,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":     srv.Addr,
			"storage":  storageName(db),
			"images":   cfg.S3.Enabled(),
			"dev_auth": cfg.DevAuth,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func storageName(db *sql.DB) string {
	if db != nil {
		return "postgres"
	}
	return "memory"
}
