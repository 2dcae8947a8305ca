package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
)

// Table is the typed view of one registered table.
type Table[E any] struct {
	g    *Gateway
	name string
}

func (g *Gateway) Customers() Table[entity.Customer] { return Table[entity.Customer]{g, domainRepo.TableCustomers} }
func (g *Gateway) Products() Table[entity.Product]   { return Table[entity.Product]{g, domainRepo.TableProducts} }
func (g *Gateway) Offers() Table[entity.Offer]       { return Table[entity.Offer]{g, domainRepo.TableOffers} }

// Users lists kullanici rows with password hashes removed.
func (g *Gateway) Users(ctx context.Context) []entity.User {
	users := Table[entity.User]{g, domainRepo.TableUsers}.List(ctx)
	for i := range users {
		users[i] = users[i].Public()
	}
	return users
}

// Name is the persisted table name.
func (t Table[E]) Name() string { return t.name }

// List decodes every row; rows that do not decode are logged and skipped.
func (t Table[E]) List(ctx context.Context) []E {
	rows, err := t.g.List(ctx, t.name)
	if err != nil {
		log.Printf("[gateway] %v", err)
		return []E{}
	}
	out := make([]E, 0, len(rows))
	for _, rec := range rows {
		e, err := decode[E](rec)
		if err != nil {
			log.Printf("[gateway] %s satırı çözümlenemedi: %v", t.name, err)
			continue
		}
		out = append(out, *e)
	}
	return out
}

func (t Table[E]) Get(ctx context.Context, key any) (*E, error) {
	rec, err := t.g.GetOne(ctx, t.name, key)
	if err != nil {
		return nil, err
	}
	return decode[E](rec)
}

func (t Table[E]) Create(ctx context.Context, payload domainRepo.Record) (*E, error) {
	rec, err := t.g.Create(ctx, t.name, payload)
	if err != nil {
		return nil, err
	}
	return decode[E](rec)
}

func (t Table[E]) Update(ctx context.Context, key any, payload domainRepo.Record) (*E, error) {
	rec, err := t.g.Update(ctx, t.name, key, payload)
	if err != nil {
		return nil, err
	}
	return decode[E](rec)
}

func (t Table[E]) Delete(ctx context.Context, key any) error {
	return t.g.Delete(ctx, t.name, key)
}

// decode maps a record onto an entity through the entity's json tags, which
// carry the persisted column names.
func decode[E any](rec domainRepo.Record) (*E, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var e E
	if err := json.Unmarshal(b, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Encode maps an entity back to a record keyed by column names.
func Encode[E any](e E) (domainRepo.Record, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	rec := domainRepo.Record{}
	if err := json.Unmarshal(b, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// prepareOffer validates line items and recomputes toplamlar from them, so
// the stored totals always equal the sum of quantity x unit price.
func prepareOffer(rec domainRepo.Record, creating bool, now time.Time) error {
	if raw, ok := rec["kalemler"]; ok {
		items, err := toLineItems(raw)
		if err != nil {
			return err
		}
		rec["kalemler"] = items
		rec["toplamlar"] = items.Totals()
	} else if creating {
		rec["kalemler"] = entity.LineItems{}
		rec["toplamlar"] = entity.Totals{}
	} else {
		delete(rec, "toplamlar")
	}

	if raw, ok := rec["durum"]; ok && raw != nil {
		status, err := enum.ParseOfferStatus(fmt.Sprint(raw))
		if err != nil {
			return err
		}
		rec["durum"] = status
	} else if creating {
		rec["durum"] = enum.OfferStatusDraft
	}

	if creating {
		if v, ok := rec["tarih"]; !ok || v == nil || v == "" {
			rec["tarih"] = now
		}
	}
	return nil
}

func toLineItems(raw any) (entity.LineItems, error) {
	var items entity.LineItems
	switch v := raw.(type) {
	case entity.LineItems:
		items = v
	case []entity.LineItem:
		items = v
	case nil:
		items = entity.LineItems{}
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("kalemler okunamadı: %w", err)
		}
	}

	var errs []error
	for i, li := range items {
		if li.Quantity < 1 {
			errs = append(errs, fmt.Errorf("kalem %d: miktar en az 1 olmalıdır", i+1))
		}
		if !li.UnitPrice.IsPositive() {
			errs = append(errs, fmt.Errorf("kalem %d: birim fiyat 0'dan büyük olmalıdır", i+1))
		}
		if !li.Currency.Valid() {
			errs = append(errs, fmt.Errorf("kalem %d: geçersiz döviz %q", i+1, li.Currency))
		}
	}
	if items == nil {
		items = entity.LineItems{}
	}
	return items, errors.Join(errs...)
}
