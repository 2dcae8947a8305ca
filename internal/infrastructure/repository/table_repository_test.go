package repository

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
	domainRepo "github.com/labomak/dashboard/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func spec(t *testing.T, table string) domainRepo.TableSpec {
	t.Helper()
	s, err := domainRepo.LookupTable(table)
	require.NoError(t, err)
	return s
}

// dryRun compiles statements for PostgreSQL without a server.
func dryRun(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=labomak dbname=labomak sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true, Logger: logger.Discard})
	require.NoError(t, err)
	return db
}

func TestInsertRow(t *testing.T) {
	row, tx := insertRow(dryRun(t), spec(t, domainRepo.TableProducts), domainRepo.Record{
		"urun_adi":    "Pompa",
		"fiyat":       decimal.RequireFromString("12.50"),
		"doviz_cinsi": enum.CurrencyEUR,
		"urun_kodu":   99,
	})
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, `INSERT INTO "urun_listesi"`)
	assert.Contains(t, sql, "RETURNING *")
	assert.NotContains(t, sql, "urun_kodu", "the key is never written")
	assert.ElementsMatch(t, []interface{}{"EUR", "12.5", "Pompa"}, tx.Statement.Vars)
	assert.Equal(t, map[string]interface{}{"urun_adi": "Pompa", "fiyat": "12.5", "doviz_cinsi": "EUR"}, row)
}

func TestUpdateRow(t *testing.T) {
	tx, ok := updateRow(dryRun(t), spec(t, domainRepo.TableCustomers), int64(7), domainRepo.Record{
		"sirket_adi":   "Test A.Ş.",
		"kisi_mail":    nil,
		"musteri_kodu": 8,
	})
	require.True(t, ok)
	require.NoError(t, tx.Error)

	sql := tx.Statement.SQL.String()
	assert.Contains(t, sql, `UPDATE "musteri_listesi" SET`)
	assert.Contains(t, sql, `"sirket_adi"`)
	assert.Contains(t, sql, `"kisi_mail"`)
	assert.Contains(t, sql, `WHERE "musteri_kodu" =`)
	assert.ElementsMatch(t, []interface{}{nil, "Test A.Ş.", int64(7)}, tx.Statement.Vars)

	_, ok = updateRow(dryRun(t), spec(t, domainRepo.TableCustomers), 7, domainRepo.Record{"musteri_kodu": 8})
	assert.False(t, ok)
}

func TestDeleteRow(t *testing.T) {
	tx := deleteRow(dryRun(t), spec(t, domainRepo.TableOffers), int64(3))
	require.NoError(t, tx.Error)
	assert.Contains(t, tx.Statement.SQL.String(), `DELETE FROM "teklifler" WHERE "teklif_id" =`)
	assert.Equal(t, []interface{}{int64(3)}, tx.Statement.Vars)
}

func TestTranslateDuplicate(t *testing.T) {
	assert.ErrorIs(t, translate(gorm.ErrDuplicatedKey), domainRepo.ErrDuplicate)
	assert.NoError(t, translate(nil))
	other := errors.New("connection reset")
	assert.Equal(t, other, translate(other))
}

func TestEncodeValue(t *testing.T) {
	code := int64(12)
	now := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)
	items := entity.LineItems{{ProductName: "Vana", Quantity: 2, UnitPrice: decimal.NewFromInt(3), Currency: enum.CurrencyTRY}}

	assert.Equal(t, int64(12), encodeValue(&code))
	assert.Nil(t, encodeValue((*int64)(nil)))
	assert.Equal(t, now, encodeValue(now))
	assert.Equal(t, `{"a":1}`, encodeValue(json.RawMessage(`{"a":1}`)))
	assert.Equal(t, `["x","y"]`, encodeValue([]string{"x", "y"}))
	assert.JSONEq(t, `[{"urun_adi":"Vana","miktar":2,"birim_fiyat":"3","doviz":"TRY"}]`, encodeValue(items).(string))
}

func TestNormalizeRow(t *testing.T) {
	row := normalizeRow(spec(t, domainRepo.TableOffers), map[string]interface{}{
		"teklif_id": int64(3),
		"kalemler":  []byte(`[]`),
		"toplamlar": `{"TRY":"5"}`,
		"durum":     []byte("Taslak"),
	})

	assert.Equal(t, int64(3), row["teklif_id"])
	assert.Equal(t, json.RawMessage(`[]`), row["kalemler"])
	assert.Equal(t, json.RawMessage(`{"TRY":"5"}`), row["toplamlar"])
	assert.Equal(t, "Taslak", row["durum"])
}
