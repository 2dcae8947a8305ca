package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Currency is the doviz_cinsi of a product or the doviz of a line item.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// Currencies lists the accepted codes in display order.
var Currencies = []Currency{CurrencyTRY, CurrencyUSD, CurrencyEUR}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) Valid() bool {
	switch c {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR:
		return true
	}
	return false
}

// Symbol returns the sign shown next to amounts.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyTRY:
		return "₺"
	case CurrencyUSD:
		return "$"
	case CurrencyEUR:
		return "€"
	}
	return string(c)
}

// ParseCurrency accepts a code in any case; TL is an alias for TRY.
func ParseCurrency(raw string) (Currency, error) {
	code := Currency(strings.ToUpper(strings.TrimSpace(raw)))
	if code == "TL" {
		return CurrencyTRY, nil
	}
	if !code.Valid() {
		return "", fmt.Errorf("invalid currency %q", raw)
	}
	return code, nil
}

func (c Currency) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Currency) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if parsed, err := ParseCurrency(str); err == nil {
		*c = parsed
		return nil
	}
	*c = Currency(str)
	return nil
}

func (c Currency) Value() (driver.Value, error) {
	return string(c), nil
}

func (c *Currency) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = CurrencyTRY
	case string:
		*c = Currency(v)
	case []byte:
		*c = Currency(v)
	default:
		return fmt.Errorf("cannot scan %T into Currency", value)
	}
	return nil
}
