package gateway

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
)

var labels = map[string]string{
	domainRepo.TableCustomers: "Müşteri",
	domainRepo.TableProducts:  "Ürün",
	domainRepo.TableOffers:    "Teklif",
	domainRepo.TableUsers:     "Kullanıcı",
}

func labelOf(table string) string {
	if l, ok := labels[table]; ok {
		return l
	}
	return table
}

// titleColumn is the column that names a row in activity texts.
var titleColumn = map[string]string{
	domainRepo.TableCustomers: "sirket_adi",
	domainRepo.TableProducts:  "urun_adi",
	domainRepo.TableOffers:    "teklif_no",
	domainRepo.TableUsers:     "kullanici_adi",
}

// describe renders the Turkish feed line for a mutation.
func describe(spec domainRepo.TableSpec, rec domainRepo.Record, action entity.ActivityAction) string {
	label := labelOf(spec.Name)
	title := strings.TrimSpace(fmt.Sprint(valueOr(rec[titleColumn[spec.Name]], "")))

	var text string
	switch action {
	case entity.ActivityCreated:
		text = "Yeni " + strings.ToLower(label) + " eklendi"
		if spec.Name == domainRepo.TableOffers {
			text = "Yeni teklif oluşturuldu"
			if fmt.Sprint(rec["durum"]) == enum.OfferStatusSent.String() {
				text = "Teklif gönderildi"
			}
		}
	case entity.ActivityUpdated:
		text = label + " bilgisi güncellendi"
		if spec.Name == domainRepo.TableOffers && fmt.Sprint(rec["durum"]) == enum.OfferStatusSent.String() {
			text = "Teklif gönderildi"
		}
	case entity.ActivityDeleted:
		text = label + " silindi"
		title = "#" + fmt.Sprint(rec[spec.KeyColumn])
	}

	if title != "" {
		text += ": " + title
	}
	return text
}

func valueOr(v any, fallback any) any {
	if v == nil {
		return fallback
	}
	return v
}

func (g *Gateway) record(ctx context.Context, spec domainRepo.TableSpec, rec domainRepo.Record, action entity.ActivityAction) {
	if g.activities == nil {
		return
	}
	activity := &entity.Activity{
		Table:       spec.Name,
		RecordKey:   fmt.Sprint(valueOr(rec[spec.KeyColumn], "")),
		Action:      action,
		Description: describe(spec, rec, action),
		CreatedAt:   g.now(),
	}
	if err := g.activities.Create(ctx, activity); err != nil {
		log.Printf("[gateway] aktivite kaydedilemedi (%s %s): %v", spec.Name, action, err)
	}
}
