package enum

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOfferStatus(t *testing.T) {
	for in, want := range map[string]OfferStatus{
		"Taslak":     OfferStatusDraft,
		"draft":      OfferStatusDraft,
		"Gönderildi": OfferStatusSent,
		"gonderildi": OfferStatusSent,
		" SENT ":     OfferStatusSent,
	} {
		got, err := ParseOfferStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOfferStatus("Onaylandı")
	assert.Error(t, err)
}

func TestOfferStatusJSON(t *testing.T) {
	var s OfferStatus
	require.NoError(t, json.Unmarshal([]byte(`"sent"`), &s))
	assert.Equal(t, OfferStatusSent, s)

	out, err := json.Marshal(OfferStatusSent)
	require.NoError(t, err)
	assert.JSONEq(t, `"Gönderildi"`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`"Arşiv"`), &s))
	assert.False(t, s.Valid())
}

func TestParseCurrency(t *testing.T) {
	c, err := ParseCurrency("usd")
	require.NoError(t, err)
	assert.Equal(t, CurrencyUSD, c)

	c, err = ParseCurrency("TL")
	require.NoError(t, err)
	assert.Equal(t, CurrencyTRY, c)

	_, err = ParseCurrency("GBP")
	assert.Error(t, err)
}

func TestCurrencyScan(t *testing.T) {
	var c Currency
	require.NoError(t, c.Scan([]byte("EUR")))
	assert.Equal(t, CurrencyEUR, c)
	assert.Equal(t, "€", c.Symbol())

	require.NoError(t, c.Scan(nil))
	assert.Equal(t, CurrencyTRY, c)
	assert.Error(t, c.Scan(12))
}
