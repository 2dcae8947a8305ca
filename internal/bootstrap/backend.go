package bootstrap

import (
	"context"
	"fmt"
	"log"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/notify"
	"github.com/labomak/dashboard/internal/application/offerno"
	"github.com/labomak/dashboard/internal/application/validation"
	"github.com/labomak/dashboard/internal/config"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/infrastructure/cache"
	"github.com/labomak/dashboard/internal/infrastructure/database"
	"github.com/labomak/dashboard/internal/infrastructure/messaging"
	"github.com/labomak/dashboard/internal/infrastructure/repository"
)

// Backend is everything the API server and the terminal dashboard share.
type Backend struct {
	Gateway     *gateway.Gateway
	Tables      domainRepo.TableRepository
	Users       domainRepo.UserRepository
	Idempotency domainRepo.IdempotencyRepository
	Numbers     *offerno.Generator
	Prober      *validation.ImageProber

	closers []func()
}

// Open connects to PostgreSQL, or keeps every table in memory when offline
// is set, and blocks until the backend answers.
func Open(ctx context.Context, cfg *config.Config, offline bool) (*Backend, error) {
	b := &Backend{Prober: validation.NewImageProber(cfg.Image.ProbeTimeout)}

	var activities domainRepo.ActivityRepository
	if offline {
		log.Println("[bootstrap] offline mode, tables are kept in memory")
		b.Tables = repository.NewMemoryTableRepository()
		b.Users = repository.NewMemoryUserRepository()
		b.Idempotency = repository.NewMemoryIdempotencyRepository()
		activities = repository.NewMemoryActivityRepository()
	} else {
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := database.AutoMigrate(db); err != nil {
				return nil, err
			}
		}
		if err := database.SeedAdmin(db); err != nil {
			log.Printf("Warning: Failed to seed admin user: %v", err)
		}
		b.Tables = repository.NewTableRepository(db)
		b.Users = repository.NewUserRepository(db)
		b.Idempotency = repository.NewIdempotencyRepository(db)
		activities = repository.NewActivityRepository(db)
	}

	b.Gateway = gateway.New(b.Tables,
		gateway.WithActivityLog(activities),
		gateway.WithNotifier(b.notifier(cfg, offline), cfg.Notifier.WebhookTimeout),
	)
	if err := b.Gateway.WaitReady(ctx, cfg.Gateway.WaitInterval, cfg.Gateway.WaitAttempts); err != nil {
		b.Close()
		return nil, fmt.Errorf("backend not ready: %w", err)
	}

	registry := domainRepo.OfferNumberRegistry(cache.NewMemoryOfferNumberRegistry(cfg.Redis.TTL))
	if !offline {
		registry = cache.NewOfferNumberRegistry(ctx, cfg.Redis)
		if r, ok := registry.(*cache.RedisOfferNumberRegistry); ok {
			b.closers = append(b.closers, func() { _ = r.Close() })
		}
	}
	b.Numbers = offerno.NewGenerator(b.Tables, registry)
	return b, nil
}

// notifier connects to RabbitMQ only when the driver asks for it.
func (b *Backend) notifier(cfg *config.Config, offline bool) notify.Notifier {
	if offline {
		return notify.Noop{}
	}
	var publisher messaging.Publisher
	if cfg.Notifier.Driver == "amqp" || cfg.Notifier.Driver == "both" {
		mq, err := messaging.NewRabbitMQ(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Printf("Warning: RabbitMQ unavailable: %v", err)
		} else {
			if err := mq.DeclareQueue(cfg.AMQP.Queue); err != nil {
				log.Printf("Warning: Failed to declare queue %s: %v", cfg.AMQP.Queue, err)
			}
			b.closers = append(b.closers, mq.Close)
			publisher = mq
		}
	}
	return notify.New(cfg.Notifier, publisher, cfg.AMQP.Queue)
}

// Close releases broker and cache connections.
func (b *Backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}
