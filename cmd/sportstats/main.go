package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/burenotti/sportstats/internal/adapter/storage"
	"github.com/burenotti/sportstats/internal/adapter/storage/memory"
	statisticstorage "github.com/burenotti/sportstats/internal/adapter/storage/statistics"
	"github.com/burenotti/sportstats/internal/app/athletequery"
	"github.com/burenotti/sportstats/internal/app/demo"
	"github.com/burenotti/sportstats/internal/app/eventquery"
	"github.com/burenotti/sportstats/internal/app/messagebus"
	"github.com/burenotti/sportstats/internal/app/registry"
	"github.com/burenotti/sportstats/internal/app/unitofwork"
	"github.com/burenotti/sportstats/internal/config"
	"github.com/burenotti/sportstats/internal/domain"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	var (
		configPath string
		skipDemo   bool
	)
	flag.StringVar(&configPath, "config", "config/config.yaml", "path to config file")
	flag.BoolVar(&skipDemo, "skip-demo", false, "prepare the storage and exit")
	flag.Parse()

	envErr := godotenv.Load()

	cfg := config.MustLoad(configPath)
	logger := initLogger(cfg)
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.Warn("failed to load .env file", "error", envErr)
	}

	if err := run(cfg, skipDemo || cfg.Demo.Skip, logger); err != nil {
		logger.Error("sportstats failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, skipDemo bool, logger *slog.Logger) error {
	bus := messagebus.New(logger)
	defer bus.Close()
	registerHandlers(bus, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps, closeStorage, err := wire(ctx, cfg, bus, logger)
	if err != nil {
		return fmt.Errorf("prepare %s storage: %w", cfg.Storage.Driver, err)
	}
	defer closeStorage()

	if skipDemo {
		logger.Info("demo skipped")
		return nil
	}

	if _, err := demo.Run(ctx, deps, cfg.Demo.Since, os.Stdout); err != nil {
		return err
	}
	logger.Info("demo finished")
	return nil
}

func wire(
	ctx context.Context,
	cfg *config.Config,
	bus *messagebus.MessageBus,
	logger *slog.Logger,
) (demo.Deps, func(), error) {
	var (
		begin      unitofwork.Begin[*registry.AtomicContext]
		statistics interface {
			athletequery.StatisticFinder
			eventquery.StatisticFinder
		}
		closeFn = func() {}
	)

	switch cfg.Storage.Driver {
	case config.Postgres:
		db, err := storage.Open(ctx, cfg.DB.DSN)
		if err != nil {
			return demo.Deps{}, nil, err
		}
		if err := db.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return demo.Deps{}, nil, err
		}
		begin = registry.NewPostgresContext(db)
		statistics = statisticstorage.NewPostgresStorage(db)
		closeFn = func() {
			if err := db.Close(); err != nil {
				logger.Warn("failed to close database", "error", err)
			}
		}
	default:
		store := memory.New()
		begin = registry.NewMemoryContext(store)
		statistics = store.Statistics()
	}
	logger.Info("storage ready", "driver", cfg.Storage.Driver)

	return demo.Deps{
		Registry:     registry.New(logger, clockwork.NewRealClock()),
		UoW:          unitofwork.New(begin, bus, logger),
		AthleteQuery: athletequery.New(statistics, logger),
		EventQuery:   eventquery.New(statistics),
		Logger:       logger,
	}, closeFn, nil
}

func registerHandlers(bus *messagebus.MessageBus, logger *slog.Logger) {
	bus.Register(athlete.EventRegistered, func(e domain.Event) error {
		if ev, ok := e.(athlete.RegisteredEvent); ok {
			logger.Debug("processed athlete registered event", "athlete_id", ev.AthleteID, "sport", ev.Sport)
		}
		return nil
	})
	bus.Register(athlete.EventUpdated, func(e domain.Event) error {
		logger.Debug("processed athlete updated event", "published_at", e.PublishedAt())
		return nil
	})
	bus.Register(event.EventScheduled, func(e domain.Event) error {
		logger.Debug("processed event scheduled event", "published_at", e.PublishedAt())
		return nil
	})
	bus.Register(statistic.EventRecorded, func(e domain.Event) error {
		if ev, ok := e.(statistic.RecordedEvent); ok {
			logger.Debug("processed statistic recorded event",
				"statistic_id", ev.StatisticID,
				"athlete_id", ev.AthleteID,
				"event_id", ev.EventID,
			)
		}
		return nil
	})
}

func initLogger(cfg *config.Config) *slog.Logger {
	var handler slog.Handler
	switch cfg.App.Env {
	case config.Development:
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: true,
			Level:     slog.LevelDebug,
		})
	case config.Production:
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: false,
			Level:     slog.LevelInfo,
		})
	default:
		panic("invalid env")
	}

	return slog.New(handler)
}
