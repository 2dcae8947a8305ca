package entity

import (
	"encoding/json"
	"testing"

	"github.com/labomak/dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineItemsTotalsPerCurrency(t *testing.T) {
	items := LineItems{
		{ProductName: "Pompa", Quantity: 3, UnitPrice: dec("1250.50"), Currency: enum.CurrencyTRY},
		{ProductName: "Vana", Quantity: 2, UnitPrice: dec("19.99"), Currency: enum.CurrencyUSD},
		{ProductName: "Conta", Quantity: 10, UnitPrice: dec("0.10"), Currency: enum.CurrencyTRY},
		{ProductName: "Filtre", Quantity: 1, UnitPrice: dec("7.05"), Currency: enum.CurrencyUSD},
	}

	// recompute independently of Subtotal
	want := map[enum.Currency]decimal.Decimal{}
	for _, li := range items {
		sum := decimal.Zero
		for i := 0; i < li.Quantity; i++ {
			sum = sum.Add(li.UnitPrice)
		}
		want[li.Currency] = want[li.Currency].Add(sum)
	}

	totals := items.Totals()
	assert.True(t, totals.Equal(Totals(want)))
	assert.True(t, totals[enum.CurrencyTRY].Equal(dec("3752.50")))
	assert.True(t, totals[enum.CurrencyUSD].Equal(dec("47.03")))
	assert.Equal(t, []enum.Currency{enum.CurrencyTRY, enum.CurrencyUSD}, totals.Currencies())
}

func TestLineItemsScanAcceptsStringEncodedJSON(t *testing.T) {
	raw := `[{"urun_adi":"Pompa","miktar":2,"birim_fiyat":"10.25","doviz":"EUR"}]`

	var fromBytes LineItems
	require.NoError(t, fromBytes.Scan([]byte(raw)))

	var fromQuoted LineItems
	quoted, err := json.Marshal(raw)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(quoted, &fromQuoted))

	assert.Equal(t, fromBytes, fromQuoted)
	require.Len(t, fromBytes, 1)
	assert.Equal(t, 2, fromBytes[0].Quantity)
	assert.True(t, fromBytes[0].Subtotal().Equal(dec("20.5")))
}

func TestOfferRecordRoundTrip(t *testing.T) {
	record := map[string]any{
		"teklif_id":  int64(4),
		"teklif_no":  "TK20250908047",
		"sirket_adi": "Test A.Ş.",
		"tarih":      "2025-09-08T10:00:00Z",
		"kalemler":   json.RawMessage(`[{"urun_adi":"Pompa","miktar":1,"birim_fiyat":5,"doviz":"TRY"}]`),
		"toplamlar":  `{"TRY":"5"}`,
		"durum":      "Gönderildi",
	}
	b, err := json.Marshal(record)
	require.NoError(t, err)

	var offer Offer
	require.NoError(t, json.Unmarshal(b, &offer))

	assert.Equal(t, int64(4), offer.ID)
	assert.Equal(t, enum.OfferStatusSent, offer.Status)
	assert.True(t, offer.Totals.Equal(offer.Items.Totals()))
	assert.Nil(t, offer.CustomerCode)
}

func TestTotalsValue(t *testing.T) {
	v, err := Totals{enum.CurrencyEUR: dec("12.5")}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"EUR":"12.5"}`, v.(string))

	v, err = Totals(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "{}", v)
}

func TestUserPublic(t *testing.T) {
	u := User{ID: 1, Username: "admin", PasswordHash: "$2a$10$x"}
	assert.Empty(t, u.Public().PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
}
