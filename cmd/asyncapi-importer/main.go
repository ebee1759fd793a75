package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/davseby/asyncapi-importer/internal/capture"
	"github.com/davseby/asyncapi-importer/internal/catalog"
	"github.com/davseby/asyncapi-importer/internal/config"
	"github.com/davseby/asyncapi-importer/internal/importer"
	"github.com/davseby/asyncapi-importer/internal/request/process/stdout"
	"github.com/davseby/asyncapi-importer/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"
)

// _restartDelay is the delay between server restarts.
const _restartDelay = time.Second

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:           "asyncapi-importer",
		Short:         "REST service importing AsyncAPI documents into the event catalog",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML configuration file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads the configuration, starts the services and blocks until a
// termination signal is received.
func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	base, err := cfg.Log.Handler()
	if err != nil {
		return err
	}

	level, err := cfg.Capture.CaptureLevel()
	if err != nil {
		return err
	}

	// NOTE: The router logs its own failures through the base handler,
	// otherwise a failing sink would be fed its own failure reports.
	router := capture.NewRouter(slog.New(base))

	logger := slog.New(capture.NewHandler(router, base, level))
	defer logger.Info("application shutdown")

	stop, err := startServices(logger, router, cfg)
	if err != nil {
		logger.With("error", err).
			Error("starting services")
		return err
	}
	defer stop()

	trapInstance(logger)

	return nil
}

// startServices starts the application services.
func startServices(logger *slog.Logger, router *capture.Router, cfg config.Config) (func(), error) {
	ctx, cancel := context.WithCancel(context.Background())

	gin.SetMode(gin.ReleaseMode)

	srv, err := server.NewServer(logger, cfg.Server, server.Dependencies{
		Router:        router,
		Capture:       cfg.Capture,
		Catalog:       catalog.NewAPI(logger, cfg.Catalog),
		DefaultRegion: cfg.Catalog.DefaultRegion,
		Importer:      importer.NewImporter(logger, importer.NewLogApplier(logger), cfg.Importer),
		Recorder:      stdout.NewProcessor(logger),
	})
	if err != nil {
		cancel()
		return nil, err
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for ctx.Err() == nil {
			err := srv.ListenAndServe(ctx)
			if err == nil {
				continue
			}

			logger.With("error", err).
				Error("starting server")

			select {
			case <-ctx.Done():
			case <-time.After(_restartDelay):
			}
		}
	}()

	logger.With("addr", cfg.Server.Addr).
		Info("server started")

	return func() {
		cancel()
		wg.Wait()
	}, nil
}

// trapInstance blocks until a termination signal is received.
func trapInstance(logger *slog.Logger) {
	terminationCh := make(chan os.Signal, 1)

	signal.Notify(terminationCh, syscall.SIGINT, syscall.SIGTERM)

	<-terminationCh

	logger.Info("initiating shutdown")
}
