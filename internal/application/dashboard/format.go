package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/labomak/dashboard/internal/domain/entity"
	"github.com/labomak/dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var trPrinter = message.NewPrinter(language.Turkish)

// FormatAmount renders an amount the way tr-TR locale does, followed by the
// currency code: 1250.5 TRY -> "1.250,5 TRY".
func FormatAmount(d decimal.Decimal, c enum.Currency) string {
	f, _ := d.Round(2).Float64()
	s := trPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
	if c == "" {
		return s
	}
	return s + " " + c.String()
}

// FormatTotals lists per-currency totals, never adding currencies together.
func FormatTotals(t entity.Totals) string {
	if len(t) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(t))
	for _, c := range t.Currencies() {
		parts = append(parts, FormatAmount(t[c], c))
	}
	return strings.Join(parts, " + ")
}

// FormatCount renders a whole number with tr-TR grouping.
func FormatCount(n int64) string {
	return trPrinter.Sprint(number.Decimal(n))
}

func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006 15:04")
}

// RelativeTime renders how long ago t was: "Az önce", "5 dakika önce", ...
// Anything older than a week is shown as a date.
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "Az önce"
	case d < time.Hour:
		return fmt.Sprintf("%d dakika önce", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d saat önce", int(d/time.Hour))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%d gün önce", int(d/(24*time.Hour)))
	}
	return t.Format("02.01.2006")
}

func orDash(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return "-"
}
