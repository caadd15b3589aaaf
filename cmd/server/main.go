package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sheikh-saqib/household-payoff-planner/internal/api"
	"github.com/sheikh-saqib/household-payoff-planner/internal/config"
	"github.com/sheikh-saqib/household-payoff-planner/internal/events/kafka"
	"github.com/sheikh-saqib/household-payoff-planner/internal/events/logging"
	interfaces "github.com/sheikh-saqib/household-payoff-planner/internal/interfaces"
	"github.com/sheikh-saqib/household-payoff-planner/internal/logger"
	"github.com/sheikh-saqib/household-payoff-planner/internal/planner"
	"github.com/sheikh-saqib/household-payoff-planner/internal/storage/memory"
	"github.com/sheikh-saqib/household-payoff-planner/internal/storage/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store interfaces.PlanStore = memory.NewMemoryPlanStore()
	if cfg.UsesPostgres() {
		pg, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("opening postgres: %w", err)
		}
		defer pg.Close()
		store = pg
		log.Info("using postgres store")
	} else {
		log.Info("using in-memory store")
	}

	var publisher interfaces.EventPublisher = logging.NewPublisher(log)
	if cfg.UsesKafka() {
		kp := kafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
		log.Info("publishing events to kafka", zap.Strings("brokers", cfg.KafkaBrokers))
	}

	planService := planner.NewPlanner(store, publisher, log)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewHandler(planService, log).Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
