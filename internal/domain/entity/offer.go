package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/labomak/dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Offer is a row of teklifler. ID (teklif_id) is the backend identity; Number is
// the human-facing TK reference.
type Offer struct {
	ID           int64            `gorm:"column:teklif_id;primaryKey;autoIncrement" json:"teklif_id"`
	Number       string           `gorm:"column:teklif_no;size:32;uniqueIndex" json:"teklif_no"`
	CustomerCode *int64           `gorm:"column:musteri_kodu;index" json:"musteri_kodu,omitempty"`
	CompanyName  string           `gorm:"column:sirket_adi;size:255" json:"sirket_adi"`
	ContactName  string           `gorm:"column:kisi_adi;size:255" json:"kisi_adi,omitempty"`
	Date         time.Time        `gorm:"column:tarih;not null" json:"tarih"`
	Items        LineItems        `gorm:"column:kalemler;type:jsonb" json:"kalemler"`
	Totals       Totals           `gorm:"column:toplamlar;type:jsonb" json:"toplamlar"`
	Status       enum.OfferStatus `gorm:"column:durum;size:20;not null;default:Taslak" json:"durum"`
	PreparedBy   string           `gorm:"column:teklifi_hazirlayan;size:255" json:"teklifi_hazirlayan,omitempty"`
}

// TableName returns the table name for the Offer model
func (Offer) TableName() string {
	return "teklifler"
}

// LineItem is one product row of an offer with its own price and currency.
type LineItem struct {
	ProductName string          `json:"urun_adi"`
	Quantity    int             `json:"miktar"`
	UnitPrice   decimal.Decimal `json:"birim_fiyat"`
	Currency    enum.Currency   `json:"doviz"`
}

// Subtotal is quantity x unit price, exact.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// LineItems is stored as a jsonb array in kalemler.
type LineItems []LineItem

// Totals sums the subtotals per currency. Amounts in different currencies are never added together.
func (items LineItems) Totals() Totals {
	totals := Totals{}
	for _, li := range items {
		totals[li.Currency] = totals[li.Currency].Add(li.Subtotal())
	}
	return totals
}

func (items LineItems) Value() (driver.Value, error) {
	if items == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]LineItem(items))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (items *LineItems) Scan(value interface{}) error {
	return scanJSON(value, items)
}

// UnmarshalJSON accepts the array itself or the array encoded as a JSON string,
// which is how some drivers hand jsonb columns back.
func (items *LineItems) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		data = []byte(raw)
		if raw == "" {
			*items = nil
			return nil
		}
	}
	var list []LineItem
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*items = list
	return nil
}

// Totals maps a currency to the summed amount of the line items in it.
type Totals map[enum.Currency]decimal.Decimal

// Currencies returns the currencies present, in a stable order.
func (t Totals) Currencies() []enum.Currency {
	out := make([]enum.Currency, 0, len(t))
	for c := range t {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return currencyRank(out[i]) < currencyRank(out[j]) })
	return out
}

// Equal compares amounts numerically, ignoring trailing zeros.
func (t Totals) Equal(other Totals) bool {
	if len(t) != len(other) {
		return false
	}
	for c, amount := range t {
		o, ok := other[c]
		if !ok || !amount.Equal(o) {
			return false
		}
	}
	return true
}

func (t Totals) Value() (driver.Value, error) {
	if t == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[enum.Currency]decimal.Decimal(t))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (t *Totals) Scan(value interface{}) error {
	return scanJSON(value, t)
}

func (t *Totals) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		data = []byte(raw)
		if raw == "" {
			*t = Totals{}
			return nil
		}
	}
	m := map[enum.Currency]decimal.Decimal{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*t = m
	return nil
}

func currencyRank(c enum.Currency) int {
	for i, known := range enum.Currencies {
		if c == known {
			return i
		}
	}
	return len(enum.Currencies)
}

func scanJSON(value interface{}, dst json.Unmarshaler) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return dst.UnmarshalJSON(v)
	case string:
		return dst.UnmarshalJSON([]byte(v))
	default:
		return fmt.Errorf("cannot scan %T into %T", value, dst)
	}
}
