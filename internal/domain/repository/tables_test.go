package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupTable(t *testing.T) {
	for _, name := range TableNames() {
		spec, err := LookupTable(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, spec.Name)
		assert.False(t, spec.CanWrite(spec.KeyColumn), "%s key must not be writable", name)
	}

	offers, err := LookupTable("teklifler")
	require.NoError(t, err)
	assert.Equal(t, "teklif_id", offers.KeyColumn)

	_, err = LookupTable("siparisler")
	assert.True(t, errors.Is(err, ErrUnknownTable))
}

func TestTableSpecFilter(t *testing.T) {
	spec, err := LookupTable(TableProducts)
	require.NoError(t, err)

	out, dropped := spec.Filter(Record{
		"urun_kodu": 9,
		"urun_adi":  "Pompa",
		"fiyat":     "12.50",
		"id":        1,
	})

	assert.Equal(t, Record{"urun_adi": "Pompa", "fiyat": "12.50"}, out)
	assert.ElementsMatch(t, []string{"urun_kodu", "id"}, dropped)
}
