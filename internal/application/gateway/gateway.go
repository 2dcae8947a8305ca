// Package gateway mediates every backend read and write of the dashboard.
//
// Reads are forgiving: a failed list is logged and comes back empty, a failed
// lookup is reported as not found. Writes are strict and return the backend
// error so the caller can keep the form open. Unknown table names always fail.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/labomak/dashboard/internal/application/notify"
	"github.com/labomak/dashboard/internal/domain/entity"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/internal/infrastructure/database"
	"github.com/labomak/dashboard/pkg/apperror"
)

const defaultNotifyTimeout = 10 * time.Second

// Gateway is constructed once at startup and handed to every controller.
type Gateway struct {
	tables        domainRepo.TableRepository
	activities    domainRepo.ActivityRepository
	notifier      notify.Notifier
	notifyTimeout time.Duration
	now           func() time.Time
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithActivityLog records every successful mutation.
func WithActivityLog(repo domainRepo.ActivityRepository) Option {
	return func(g *Gateway) { g.activities = repo }
}

// WithNotifier announces created offers, bounded by timeout.
func WithNotifier(n notify.Notifier, timeout time.Duration) Option {
	return func(g *Gateway) {
		g.notifier = n
		if timeout > 0 {
			g.notifyTimeout = timeout
		}
	}
}

func New(tables domainRepo.TableRepository, opts ...Option) *Gateway {
	g := &Gateway{
		tables:        tables,
		notifier:      notify.Noop{},
		notifyTimeout: defaultNotifyTimeout,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WaitReady blocks until the backend answers or the attempts run out.
func (g *Gateway) WaitReady(ctx context.Context, interval time.Duration, attempts int) error {
	return database.WaitReady(ctx, g.tables, interval, attempts)
}

// List returns every row of table, newest first. Backend failures are logged
// and yield an empty slice; only an unknown table is an error.
func (g *Gateway) List(ctx context.Context, table string) ([]domainRepo.Record, error) {
	if _, err := domainRepo.LookupTable(table); err != nil {
		return nil, err
	}
	rows, err := g.tables.List(ctx, table)
	if err != nil {
		log.Printf("[gateway] %s listesi alınamadı: %v", table, err)
		return []domainRepo.Record{}, nil
	}
	return rows, nil
}

// GetOne returns one row. Missing rows and backend failures are both reported as not found.
func (g *Gateway) GetOne(ctx context.Context, table string, key any) (domainRepo.Record, error) {
	if _, err := domainRepo.LookupTable(table); err != nil {
		return nil, err
	}
	rec, err := g.tables.Get(ctx, table, key)
	if err != nil {
		log.Printf("[gateway] %s #%v alınamadı: %v", table, key, err)
		return nil, notFound(table)
	}
	if rec == nil {
		return nil, notFound(table)
	}
	return rec, nil
}

func (g *Gateway) Create(ctx context.Context, table string, rec domainRepo.Record) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}
	rec, err = g.prepare(spec, rec, true)
	if err != nil {
		return nil, err
	}

	created, err := g.tables.Create(ctx, table, rec)
	if err != nil {
		log.Printf("[gateway] %s oluşturulamadı: %v", table, err)
		return nil, mutationError(labelOf(table)+" oluşturulamadı", err)
	}

	g.record(ctx, spec, created, entity.ActivityCreated)
	if table == domainRepo.TableOffers {
		g.notifyOffer(ctx, created)
	}
	return created, nil
}

// mutationError answers 409 for a unique column collision and 502 for
// anything else the backend reports.
func mutationError(op string, err error) error {
	if errors.Is(err, domainRepo.ErrDuplicate) {
		return apperror.NewConflictError(op + ": kayıt zaten mevcut")
	}
	return apperror.NewBackendError(op, err)
}

func (g *Gateway) Update(ctx context.Context, table string, key any, rec domainRepo.Record) (domainRepo.Record, error) {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return nil, err
	}
	rec, err = g.prepare(spec, rec, false)
	if err != nil {
		return nil, err
	}

	updated, err := g.tables.Update(ctx, table, key, rec)
	if err != nil {
		log.Printf("[gateway] %s #%v güncellenemedi: %v", table, key, err)
		return nil, mutationError(labelOf(table)+" güncellenemedi", err)
	}
	if updated == nil {
		return nil, notFound(table)
	}

	g.record(ctx, spec, updated, entity.ActivityUpdated)
	return updated, nil
}

func (g *Gateway) Delete(ctx context.Context, table string, key any) error {
	spec, err := domainRepo.LookupTable(table)
	if err != nil {
		return err
	}

	deleted, err := g.tables.Delete(ctx, table, key)
	if err != nil {
		log.Printf("[gateway] %s #%v silinemedi: %v", table, key, err)
		return apperror.NewBackendError(labelOf(table)+" silinemedi", err)
	}
	if !deleted {
		return notFound(table)
	}

	g.record(ctx, spec, domainRepo.Record{spec.KeyColumn: key}, entity.ActivityDeleted)
	return nil
}

// Count is strict: unlike List it returns backend errors.
func (g *Gateway) Count(ctx context.Context, table string, where domainRepo.Record) (int64, error) {
	return g.tables.Count(ctx, table, where)
}

// Exists reports whether a row of table has column = value.
func (g *Gateway) Exists(ctx context.Context, table, column string, value any) (bool, error) {
	return g.tables.Exists(ctx, table, column, value)
}

// Tables exposes the repository for collaborators such as the offer number generator.
func (g *Gateway) Tables() domainRepo.TableRepository {
	return g.tables
}

// RecentActivities returns the newest activity rows; without an activity log it is empty.
func (g *Gateway) RecentActivities(ctx context.Context, limit int) ([]entity.Activity, error) {
	if g.activities == nil {
		return nil, nil
	}
	return g.activities.Recent(ctx, limit)
}

// IsNotFound reports whether err means the row does not exist.
func IsNotFound(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.Code == 404
}

func notFound(table string) error {
	return apperror.NewNotFoundError(labelOf(table))
}

func (g *Gateway) prepare(spec domainRepo.TableSpec, rec domainRepo.Record, creating bool) (domainRepo.Record, error) {
	filtered, dropped := spec.Filter(rec)
	if len(dropped) > 0 {
		log.Printf("[gateway] %s: yazılamayan alanlar yok sayıldı: %v", spec.Name, dropped)
	}
	if spec.Name == domainRepo.TableOffers {
		if err := prepareOffer(filtered, creating, g.now()); err != nil {
			return nil, apperror.NewBadRequestError(fmt.Sprintf("Geçersiz teklif: %v", err))
		}
	}
	return filtered, nil
}

func (g *Gateway) notifyOffer(ctx context.Context, rec domainRepo.Record) {
	offer, err := decode[entity.Offer](rec)
	if err != nil {
		log.Printf("[gateway] webhook için teklif çözümlenemedi: %v", err)
		return
	}

	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), g.notifyTimeout)
	defer cancel()

	if err := g.notifier.NotifyOfferCreated(nctx, notify.NewOfferCreated(*offer)); err != nil {
		log.Printf("[gateway] webhook gönderme hatası (%s): %v", offer.Number, err)
	}
}
