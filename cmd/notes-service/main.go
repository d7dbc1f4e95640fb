// notes-service is the HTTP backend for the personal notes app.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sradha-notes/backend/internal/api"
	"github.com/sradha-notes/backend/internal/auth"
	"github.com/sradha-notes/backend/internal/config"
	"github.com/sradha-notes/backend/internal/media"
	"github.com/sradha-notes/backend/internal/platform/factory"
	"github.com/sradha-notes/backend/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.DebugLogging)

	st, err := factory.NewStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	uploader := media.NewCloudinary(media.CloudinaryConfig{
		CloudName: cfg.MediaCloudName,
		APIKey:    cfg.MediaAPIKey,
		APISecret: cfg.MediaAPISecret,
		Folder:    cfg.MediaFolder,
	}, log)

	server := api.NewServer(st, api.Options{
		Auth:          auth.New(cfg.JWTSecret),
		Media:         uploader,
		Log:           log,
		DevMode:       cfg.IsDevelopment(),
		AllowedOrigin: cfg.AllowedOrigin,
	})

	httpSrv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Int("port", cfg.HTTPPort).Str("driver", cfg.DBDriver).Msg("notes-service listening")
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
