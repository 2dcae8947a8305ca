package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownTable is returned for any table name outside the registry.
	ErrUnknownTable = errors.New("unknown table")
	// ErrDuplicate is returned when a write collides with a unique column.
	ErrDuplicate = errors.New("duplicate value")
)

// Record is one row keyed by its persisted column names.
type Record map[string]any

// TableSpec describes how a registered table is keyed, ordered and written.
type TableSpec struct {
	Name        string
	KeyColumn   string
	OrderColumn string
	// Columns that a create or update may write. The key column is never writable.
	Writable    []string
	// JSON holds the jsonb columns.
	JSON        []string
	Unique      []string
}

const (
	TableCustomers = "musteri_listesi"
	TableProducts  = "urun_listesi"
	TableOffers    = "teklifler"
	TableUsers     = "kullanici"
)

var tables = map[string]TableSpec{
	TableCustomers: {
		Name:        TableCustomers,
		KeyColumn:   "musteri_kodu",
		OrderColumn: "musteri_kodu",
		Writable: []string{
			"sirket_adi", "sirket_adres", "sirket_sehir", "sirket_ulke", "sirket_telefon", "sirket_mail",
			"kisi_adi", "kisi_unvan", "kisi_telefon_dahili", "kisi_telefon_mobil", "kisi_mail", "referans_pdf",
		},
	},
	TableProducts: {
		Name:        TableProducts,
		KeyColumn:   "urun_kodu",
		OrderColumn: "urun_kodu",
		Writable:    []string{"urun_adi", "urun_aciklama", "fiyat", "doviz_cinsi", "urun_gorseli_url"},
	},
	TableOffers: {
		Name:        TableOffers,
		KeyColumn:   "teklif_id",
		OrderColumn: "teklif_id",
		Writable: []string{
			"teklif_no", "musteri_kodu", "sirket_adi", "kisi_adi", "tarih",
			"kalemler", "toplamlar", "durum", "teklifi_hazirlayan",
		},
		JSON:   []string{"kalemler", "toplamlar"},
		Unique: []string{"teklif_no"},
	},
	TableUsers: {
		Name:        TableUsers,
		KeyColumn:   "kullanici_id",
		OrderColumn: "kullanici_id",
		Writable:    []string{"kullanici_adi", "email", "sifre_hash", "rol", "aktif"},
		Unique:      []string{"kullanici_adi", "email"},
	},
}

// LookupTable returns the registry entry for name or ErrUnknownTable.
func LookupTable(name string) (TableSpec, error) {
	spec, ok := tables[name]
	if !ok {
		return TableSpec{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
	}
	return spec, nil
}

// TableNames lists the registered tables.
func TableNames() []string {
	return []string{TableCustomers, TableProducts, TableOffers, TableUsers}
}

// CanWrite reports whether column is in the writable whitelist.
func (s TableSpec) CanWrite(column string) bool {
	for _, c := range s.Writable {
		if c == column {
			return true
		}
	}
	return false
}

// IsJSON reports whether column holds jsonb.
func (s TableSpec) IsJSON(column string) bool {
	for _, c := range s.JSON {
		if c == column {
			return true
		}
	}
	return false
}

// Knows reports whether column is the key or a writable column.
func (s TableSpec) Knows(column string) bool {
	return column == s.KeyColumn || s.CanWrite(column)
}

// Filter drops every column the table does not allow writing, including the key.
func (s TableSpec) Filter(rec Record) (Record, []string) {
	out := make(Record, len(rec))
	var dropped []string
	for k, v := range rec {
		if s.CanWrite(k) {
			out[k] = v
			continue
		}
		dropped = append(dropped, k)
	}
	return out, dropped
}
