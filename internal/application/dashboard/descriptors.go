package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/labomak/dashboard/internal/application/gateway"
	"github.com/labomak/dashboard/internal/application/offerno"
	"github.com/labomak/dashboard/internal/application/validation"
	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/labomak/dashboard/pkg/apperror"
	"github.com/shopspring/decimal"
)

const (
	ModuleHome      = "dashboard"
	ModuleOffers    = "teklifler"
	ModuleProducts  = "urunler"
	ModuleCustomers = "musteriler"
)

func currencyOptions() []string {
	out := make([]string, len(enum.Currencies))
	for i, c := range enum.Currencies {
		out[i] = c.String()
	}
	return out
}

func statusOptions() []string {
	out := make([]string, len(enum.OfferStatuses))
	for i, s := range enum.OfferStatuses {
		out[i] = s.String()
	}
	return out
}

// CustomerDescriptor describes musteri_listesi.
func CustomerDescriptor(gw *gateway.Gateway) *Descriptor[entity.Customer] {
	return &Descriptor[entity.Customer]{
		Module: ModuleCustomers,
		Label:  "Müşteri",
		Table:  gw.Customers(),
		Fields: []Field{
			{Name: "musteriKodu", Column: "musteri_kodu", Label: "Müşteri Kodu", Key: true},
			{Name: "sirketAdi", Column: "sirket_adi", Label: "Şirket Adı", Rule: validation.Rule{Kind: validation.KindText, Required: true}},
			{Name: "sirketAdres", Column: "sirket_adres", Label: "Adres", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "sirketSehir", Column: "sirket_sehir", Label: "Şehir", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "sirketUlke", Column: "sirket_ulke", Label: "Ülke", Rule: validation.Rule{Kind: validation.KindChoice, Options: entity.CountryOptions}},
			{Name: "sirketTelefon", Column: "sirket_telefon", Label: "Şirket Telefonu", Rule: validation.Rule{Kind: validation.KindPhone}},
			{Name: "sirketMail", Column: "sirket_mail", Label: "Şirket E-posta", Rule: validation.Rule{Kind: validation.KindEmail}},
			{Name: "kisiAdi", Column: "kisi_adi", Label: "Yetkili Kişi", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "kisiUnvan", Column: "kisi_unvan", Label: "Ünvan", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "kisiTelefonDahili", Column: "kisi_telefon_dahili", Label: "Dahili", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "kisiTelefonMobil", Column: "kisi_telefon_mobil", Label: "Cep Telefonu", Rule: validation.Rule{Kind: validation.KindPhone}},
			{Name: "kisiMail", Column: "kisi_mail", Label: "Kişi E-posta", Rule: validation.Rule{Kind: validation.KindEmail}},
		},
		Key: func(c entity.Customer) int64 { return c.Code },
		Columns: []Column[entity.Customer]{
			{Header: "Kod", Width: 6, Value: func(c entity.Customer) string { return strconv.FormatInt(c.Code, 10) }},
			{Header: "Şirket", Width: 28, Value: func(c entity.Customer) string { return c.CompanyName }},
			{Header: "Konum", Width: 20, Value: func(c entity.Customer) string {
				return strings.Trim(c.City+", "+c.Country, ", ")
			}},
			{Header: "Yetkili", Width: 20, Value: func(c entity.Customer) string { return orDash(c.ContactName) }},
			{Header: "Telefon", Width: 16, Value: func(c entity.Customer) string { return orDash(c.ContactMobile, c.CompanyPhone) }},
			{Header: "E-posta", Width: 26, Value: func(c entity.Customer) string { return orDash(c.ContactEmail, c.CompanyEmail) }},
		},
		Search: []string{"sirket_adi", "kisi_adi", "sirket_sehir", "sirket_mail", "kisi_mail"},
		Filters: []Filter{
			{Column: "sirket_sehir", Label: "Şehir", Kind: FilterText},
			{Column: "sirket_ulke", Label: "Ülke", Kind: FilterEnum, Options: entity.CountryOptions},
		},
	}
}

// ProductDescriptor describes urun_listesi. The image is either an uploaded
// file (gorselDosya, a data URI) or an external URL (gorselUrl), never both.
func ProductDescriptor(gw *gateway.Gateway) *Descriptor[entity.Product] {
	return &Descriptor[entity.Product]{
		Module: ModuleProducts,
		Label:  "Ürün",
		Table:  gw.Products(),
		Fields: []Field{
			{Name: "urunKodu", Column: "urun_kodu", Label: "Ürün Kodu", Key: true},
			{Name: "urunAdi", Column: "urun_adi", Label: "Ürün Adı", Rule: validation.Rule{Kind: validation.KindText, Required: true, MinLen: 2}},
			{Name: "aciklama", Column: "urun_aciklama", Label: "Açıklama", Rule: validation.Rule{Kind: validation.KindText, Required: true, MinLen: 10}},
			{Name: "fiyat", Column: "fiyat", Label: "Fiyat", Rule: validation.Rule{Kind: validation.KindPrice, Required: true}},
			{Name: "doviz", Column: "doviz_cinsi", Label: "Döviz", Rule: validation.Rule{Kind: validation.KindChoice, Required: true, Options: currencyOptions(), Strict: true}},
			{Name: "gorselUrl", Label: "Görsel URL", Rule: validation.Rule{Kind: validation.KindURL}},
			{Name: "gorselDosya", Label: "Görsel Dosyası", Rule: validation.Rule{Kind: validation.KindImage}},
		},
		ImageField: "gorselUrl",
		Key:        func(p entity.Product) int64 { return p.Code },
		Columns: []Column[entity.Product]{
			{Header: "Kod", Width: 6, Value: func(p entity.Product) string { return strconv.FormatInt(p.Code, 10) }},
			{Header: "Ürün", Width: 28, Value: func(p entity.Product) string { return p.Name }},
			{Header: "Açıklama", Width: 32, Value: func(p entity.Product) string { return orDash(p.Description) }},
			{Header: "Fiyat", Width: 18, Value: func(p entity.Product) string { return FormatAmount(p.Price, p.Currency) }},
			{Header: "Görsel", Width: 8, Value: func(p entity.Product) string {
				switch {
				case p.HasUploadedImage():
					return "Dosya"
				case p.ImageURL != "":
					return "URL"
				}
				return "-"
			}},
		},
		Search: []string{"urun_adi", "urun_aciklama"},
		Defaults: func(context.Context) (map[string]string, error) {
			return map[string]string{"doviz": enum.CurrencyTRY.String()}, nil
		},
		Filters: []Filter{
			{Column: "doviz_cinsi", Label: "Döviz", Kind: FilterEnum, Options: currencyOptions()},
			{Column: "fiyat", Label: "Fiyat", Kind: FilterRange},
		},
		Check: func(values map[string]string) []apperror.FieldError {
			url, file := strings.TrimSpace(values["gorselUrl"]), strings.TrimSpace(values["gorselDosya"])
			switch {
			case url != "" && file != "":
				return []apperror.FieldError{{Field: "gorselDosya", Message: "Görsel için dosya veya URL seçiniz, ikisi birden olamaz"}}
			case file != "" && !validation.IsDataURI(file):
				return []apperror.FieldError{{Field: "gorselDosya", Message: validation.ErrImage.Error()}}
			}
			return nil
		},
		Extend: func(values map[string]string, rec domainRepo.Record) error {
			if file := strings.TrimSpace(values["gorselDosya"]); file != "" {
				rec["urun_gorseli_url"] = file
			} else if url := strings.TrimSpace(values["gorselUrl"]); url != "" {
				rec["urun_gorseli_url"] = url
			}
			return nil
		},
		Load: func(p entity.Product, values map[string]string) {
			if p.HasUploadedImage() {
				values["gorselDosya"] = p.ImageURL
			} else if p.ImageURL != "" {
				values["gorselUrl"] = p.ImageURL
			}
		},
	}
}

var lineItemGroup = &Group{
	Name:  "kalemler",
	Label: "Kalemler",
	Fields: []Field{
		{Name: "urunAdi", Label: "Ürün", Rule: validation.Rule{Kind: validation.KindText, Required: true}},
		{Name: "miktar", Label: "Miktar", Rule: validation.Rule{Kind: validation.KindQuantity, Required: true}},
		{Name: "birimFiyat", Label: "Birim Fiyat", Rule: validation.Rule{Kind: validation.KindPrice, Required: true}},
		{Name: "doviz", Label: "Döviz", Rule: validation.Rule{Kind: validation.KindChoice, Required: true, Options: currencyOptions(), Strict: true}},
	},
}

// OfferDescriptor describes teklifler. Create forms are pre-filled with a
// reserved TK number from numbers.
func OfferDescriptor(gw *gateway.Gateway, numbers *offerno.Generator) *Descriptor[entity.Offer] {
	return &Descriptor[entity.Offer]{
		Module: ModuleOffers,
		Label:  "Teklif",
		Table:  gw.Offers(),
		Fields: []Field{
			{Name: "teklifId", Column: "teklif_id", Label: "Teklif", Key: true},
			{Name: "teklifNo", Column: "teklif_no", Label: "Teklif No", Immutable: true, Rule: validation.Rule{Kind: validation.KindText, Required: true}},
			{Name: "musteriKodu", Label: "Müşteri Kodu", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "sirketAdi", Column: "sirket_adi", Label: "Şirket Adı", Rule: validation.Rule{Kind: validation.KindText, Required: true}},
			{Name: "kisiAdi", Column: "kisi_adi", Label: "Müşteri Adı", Rule: validation.Rule{Kind: validation.KindText}},
			{Name: "durum", Column: "durum", Label: "Durum", Rule: validation.Rule{Kind: validation.KindChoice, Required: true, Options: statusOptions(), Strict: true}},
			{Name: "teklifHazirlayan", Column: "teklifi_hazirlayan", Label: "Hazırlayan", Rule: validation.Rule{Kind: validation.KindText}},
		},
		Group: lineItemGroup,
		Key:   func(o entity.Offer) int64 { return o.ID },
		Columns: []Column[entity.Offer]{
			{Header: "Teklif No", Width: 15, Value: func(o entity.Offer) string { return o.Number }},
			{Header: "Şirket", Width: 26, Value: func(o entity.Offer) string { return orDash(o.CompanyName) }},
			{Header: "Tarih", Width: 17, Value: func(o entity.Offer) string { return FormatDate(o.Date) }},
			{Header: "Kalem", Width: 6, Value: func(o entity.Offer) string { return strconv.Itoa(len(o.Items)) }},
			{Header: "Toplam", Width: 30, Value: func(o entity.Offer) string { return FormatTotals(o.Totals) }},
			{Header: "Durum", Width: 11, Value: func(o entity.Offer) string { return o.Status.String() }},
		},
		Search: []string{"teklif_no", "sirket_adi", "kisi_adi", "teklifi_hazirlayan"},
		Filters: []Filter{
			{Column: "durum", Label: "Durum", Kind: FilterEnum, Options: statusOptions()},
			{Column: "sirket_adi", Label: "Şirket", Kind: FilterText},
		},
		Defaults: func(ctx context.Context) (map[string]string, error) {
			number, err := numbers.Next(ctx)
			if err != nil {
				return nil, fmt.Errorf("teklif numarası üretilemedi: %w", err)
			}
			return map[string]string{
				"teklifNo": number,
				"durum":    enum.OfferStatusDraft.String(),
			}, nil
		},
		Abandon: func(ctx context.Context, values map[string]string) {
			numbers.Release(ctx, values["teklifNo"])
		},
		Check: func(values map[string]string) []apperror.FieldError {
			var errs []apperror.FieldError
			if n := strings.TrimSpace(values["teklifNo"]); n != "" && !offerno.Pattern.MatchString(n) {
				errs = append(errs, apperror.FieldError{Field: "teklifNo", Message: "Teklif numarası TKyyyymmddnnn biçiminde olmalıdır"})
			}
			if code := strings.TrimSpace(values["musteriKodu"]); code != "" {
				if _, err := strconv.ParseInt(code, 10, 64); err != nil {
					errs = append(errs, apperror.FieldError{Field: "musteriKodu", Message: "Müşteri kodu sayı olmalıdır"})
				}
			}
			return errs
		},
		Extend: func(values map[string]string, rec domainRepo.Record) error {
			if code := strings.TrimSpace(values["musteriKodu"]); code != "" {
				id, err := strconv.ParseInt(code, 10, 64)
				if err != nil {
					return fmt.Errorf("musteriKodu: %w", err)
				}
				rec["musteri_kodu"] = id
			}
			items, err := lineItemsFrom(values)
			if err != nil {
				return err
			}
			rec["kalemler"] = items
			return nil
		},
		Load: func(o entity.Offer, values map[string]string) {
			if o.CustomerCode != nil {
				values["musteriKodu"] = strconv.FormatInt(*o.CustomerCode, 10)
			}
			for i, li := range o.Items {
				values[lineItemGroup.ItemName(i, "urunAdi")] = li.ProductName
				values[lineItemGroup.ItemName(i, "miktar")] = strconv.Itoa(li.Quantity)
				values[lineItemGroup.ItemName(i, "birimFiyat")] = li.UnitPrice.String()
				values[lineItemGroup.ItemName(i, "doviz")] = li.Currency.String()
			}
		},
	}
}

// lineItemsFrom parses the kalemler[i].* values of an offer form.
func lineItemsFrom(values map[string]string) (entity.LineItems, error) {
	count, _ := strconv.Atoi(values[itemCountKey])
	items := make(entity.LineItems, 0, count)
	for i := 0; i < count; i++ {
		get := func(field string) string { return strings.TrimSpace(values[lineItemGroup.ItemName(i, field)]) }
		q, err := validation.ParseQuantity(get("miktar"))
		if err != nil {
			return nil, fmt.Errorf("kalem %d: %w", i+1, err)
		}
		price, err := validation.ParsePrice(get("birimFiyat"))
		if err != nil {
			return nil, fmt.Errorf("kalem %d: %w", i+1, err)
		}
		currency, err := enum.ParseCurrency(get("doviz"))
		if err != nil {
			return nil, fmt.Errorf("kalem %d: %w", i+1, err)
		}
		items = append(items, entity.LineItem{ProductName: get("urunAdi"), Quantity: q, UnitPrice: price, Currency: currency})
	}
	return items, nil
}

// PreviewTotals sums the valid line items currently on an offer form.
func PreviewTotals(f *FormController[entity.Offer]) entity.Totals {
	values := f.Values()
	totals := entity.Totals{}
	for i := 0; i < f.Items(); i++ {
		get := func(field string) string { return values[lineItemGroup.ItemName(i, field)] }
		q, qerr := validation.ParseQuantity(get("miktar"))
		price, perr := validation.ParsePrice(get("birimFiyat"))
		currency, cerr := enum.ParseCurrency(get("doviz"))
		if qerr != nil || perr != nil || cerr != nil {
			continue
		}
		totals[currency] = totals[currency].Add(price.Mul(decimal.NewFromInt(int64(q))))
	}
	return totals
}
