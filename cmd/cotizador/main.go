package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hidrocoding/cotizador/internal/cli"
	"github.com/hidrocoding/cotizador/internal/config"
	"github.com/hidrocoding/cotizador/internal/db"
	"github.com/hidrocoding/cotizador/internal/logging"
	"github.com/hidrocoding/cotizador/internal/repository"
	"github.com/hidrocoding/cotizador/internal/service"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var closers []func() error
	defer func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}()

	boot := func(ctx context.Context, cfg *config.Config) (*cli.App, error) {
		logger, err := logging.New(logging.Options{
			Level: cfg.Log.Level,
			File:  cfg.Log.File,
			Debug: cfg.Debug,
		})
		if err != nil {
			return nil, err
		}
		closers = append(closers, func() error { return logger.Sync() })

		database, err := db.OpenDB(cfg.DB.Driver, cfg.DB.DSN)
		if err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, database.Close)
		logger.Debug("database ready", zap.String("driver", cfg.DB.Driver), zap.String("owner", cfg.Owner))

		quotationRepo := repository.NewSQLQuotationRepo(database)
		clientRepo := repository.NewSQLClientRepo(database)
		configRepo := repository.NewSQLConfigRepo(database)
		sequenceRepo := repository.NewSQLSequenceRepo(database)
		uow := db.NewUnitOfWork(database)

		observer := service.NewZapUseCaseObserver(logger)
		retry := service.RetryPolicy{
			MaxAttempts: cfg.Sequence.MaxAttempts,
			Backoff:     cfg.Sequence.Backoff,
		}

		return &cli.App{
			Quotations: service.NewQuotationService(quotationRepo, configRepo, sequenceRepo, uow, retry, observer),
			Clients:    service.NewClientService(clientRepo, observer),
			Config:     service.NewConfigService(configRepo, observer),
			Share:      service.NewShareService(quotationRepo, configRepo, cfg.Locale, observer),
			Backup:     service.NewBackupService(quotationRepo, clientRepo, configRepo, uow, observer),
			Owner:      cfg.Owner,
			Locale:     cfg.Locale,
		}, nil
	}

	return cli.NewRootCmd(config.New(), boot).ExecuteContext(ctx)
}
