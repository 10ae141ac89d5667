package backend

import (
	"context"
	"errors"
	"fmt"

	"spendwise/internal/amqp"
	"spendwise/internal/log"
	"spendwise/internal/services"
	"spendwise/internal/store"
	"spendwise/internal/store/memory"
	"spendwise/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *log.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger) Factory {
	if logger == nil {
		logger = log.FromContext(context.Background())
	}
	return &DefaultFactory{
		logger: logger.WithComponent(log.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SQLiteBackend:
		return f.createSQLiteBackend(ctx, config)
	case MemoryBackend:
		return f.createMemoryBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSQLiteBackend(ctx context.Context, config Config) (*BackendResult, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	if config.Seed {
		if err := repo.SeedIfEmpty(ctx, store.DemoSeed()); err != nil {
			repo.Close()
			return nil, fmt.Errorf("failed to seed SQLite repository: %w", err)
		}
	}

	result := &BackendResult{
		Ledger:  repo,
		Ready:   repo.Ping,
		Cleanup: repo.Close,
	}

	// The worker writes activity into the same database, so the broker is
	// only used when both processes can share it.
	var amqpClient *amqp.Client
	if config.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, recording activity in-process", log.FieldError, err)
		} else {
			f.logger.Info("Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	if amqpClient != nil {
		result.Publisher = amqpClient
		result.Cleanup = func() error {
			return errors.Join(amqpClient.Close(), repo.Close())
		}
	} else {
		result.Publisher = services.ActivityRecorder{Log: repo.Activity()}
	}

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath,
		"amqp_enabled", amqpClient != nil)

	return result, nil
}

func (f *DefaultFactory) createMemoryBackend(config Config) (*BackendResult, error) {
	if config.AMQPURL != "" {
		f.logger.Warn("AMQP is ignored with the memory backend; activity is recorded in-process")
	}

	var st *memory.Store
	if config.Seed {
		st = memory.NewSeeded()
	} else {
		st = memory.New(store.Seed{})
	}

	f.logger.Info("Initialized memory backend", "seeded", config.Seed)

	return &BackendResult{
		Ledger:    st,
		Publisher: services.ActivityRecorder{Log: st.Activity()},
		Ready:     func(context.Context) error { return nil },
		Cleanup:   func() error { return nil },
	}, nil
}
