package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/FedericoMusa/incident-data-etl/internal/adapter/http"
	kafkaadapter "github.com/FedericoMusa/incident-data-etl/internal/adapter/kafka"
	"github.com/FedericoMusa/incident-data-etl/internal/adapter/postgres"
	"github.com/FedericoMusa/incident-data-etl/internal/config"
	"github.com/FedericoMusa/incident-data-etl/internal/extract"
	"github.com/FedericoMusa/incident-data-etl/internal/observability"
	"github.com/FedericoMusa/incident-data-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	extract.SetLogger(logger)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(logger, metrics)

	// The Kafka sink always runs; Postgres joins the fanout when configured
	// (POSTGRES_DSN / POSTGRES_ENABLED).
	loaders := pipeline.Fanout{writer}
	var sink *postgres.Sink
	if cfg.PostgresEnabled {
		sink, err = postgres.NewSink(ctx, cfg, logger, metrics)
		if err != nil {
			logger.Error("failed to start postgres sink", "error", err)
			os.Exit(1)
		}
		loaders = append(loaders, sink)
		logger.Info("postgres sink enabled")
	} else {
		logger.Info("postgres sink disabled")
	}

	p := pipeline.New(reader, transformer, loaders, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}
	if sink != nil {
		sink.Close()
	}

	logger.Info("shutdown complete")
}
