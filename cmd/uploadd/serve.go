package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yourname/upload_lite/internal/app/uploadhttp"
	"github.com/yourname/upload_lite/internal/config"
	"github.com/yourname/upload_lite/internal/logging"
	"github.com/yourname/upload_lite/internal/usecase/uploadsvc"
)

const shutdownTimeout = 15 * time.Second

func newServeCmd() *cobra.Command {
	var configPath, addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if configPath != "" {
				if err := os.Setenv("CONFIG_PATH", configPath); err != nil {
					return err
				}
			}
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}

			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config.yaml (overrides CONFIG_PATH)")
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}

// serve поднимает HTTP-сервер и фоновую очистку, корректно завершаясь по SIGINT/SIGTERM.
func serve(parent context.Context, cfg *config.Config) error {
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	maxSize, err := cfg.MaxFileSizeBytes()
	if err != nil {
		return err
	}

	files := uploadsvc.New(uploadsvc.Deps{
		Fs:                afero.NewOsFs(),
		Dir:               cfg.UploadDir,
		MaxFileSize:       maxSize,
		AllowedExtensions: cfg.AllowedExtensions,
		UniqueKeys:        cfg.UniqueKeys,
		Logger:            logger,
	})

	stopSweep := files.StartSweeper(cfg.PartialTTL, cfg.SweepInterval)
	defer stopSweep()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           uploadhttp.New(files, logger, uploadhttp.WithGCTTL(cfg.PartialTTL)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", cfg.ListenAddr, "upload_dir", cfg.UploadDir, "max_file_size", cfg.MaxFileSize, "unique_keys", cfg.UniqueKeys)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении сервера.
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("shutdown", "err", err)
			return err
		}
		logger.Info("server stopped")
		return nil
	})

	return g.Wait()
}
