// Command tma-report serves the team alignment survey report API: upload a
// survey workbook, get back statistics plus narrative as JSON, CSV or text.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/SethFaerber/tma-report/internal/config"
	"github.com/SethFaerber/tma-report/internal/infrastructure"
	"github.com/SethFaerber/tma-report/internal/narrative"
	"github.com/SethFaerber/tma-report/internal/services"
	transporthttp "github.com/SethFaerber/tma-report/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tma-report: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}

	taxonomy, err := config.LoadTaxonomy(cfg.Survey)
	if err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}
	vocab, err := config.LoadVocabulary(cfg.Survey)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	var generator narrative.Generator = narrative.Static{}
	if cfg.Narrative.APIKey != "" {
		generator = narrative.NewClient(cfg.Narrative, logger)
	} else {
		logger.Warn("no narrative API key configured, using static narrative")
	}

	registry := prometheus.NewRegistry()
	metrics := infrastructure.NewMetrics(registry)

	service := services.NewReportService(taxonomy, vocab, generator, metrics, logger)
	reportHandler := transporthttp.NewReportHandler(service, cfg.Server.MaxUploadBytes, logger)
	router := transporthttp.NewRouter(reportHandler, registry, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server",
			slog.Int("port", cfg.Server.Port),
			slog.Int("questions", taxonomy.Len()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
