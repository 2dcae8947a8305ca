// Package validation holds the field rules shared by every form: required
// text, prices and quantities, e-mail, Turkish phone numbers, URLs and images.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Kind selects how a raw field value is checked and normalised.
type Kind int

const (
	KindText Kind = iota
	KindPrice
	KindQuantity
	KindEmail
	KindPhone
	KindURL
	KindImage // URL or data URI
	KindChoice
)

// Rule describes one form field.
type Rule struct {
	Kind     Kind
	Required bool
	MinLen   int
	// Options restricts KindChoice values; with Strict unset other values pass.
	Options []string
	Strict  bool
}

var (
	ErrRequired = errors.New("Bu alan zorunludur")
	ErrPrice    = errors.New("Geçerli bir fiyat giriniz (0'dan büyük)")
	ErrCents    = errors.New("Fiyat en fazla 2 ondalık basamak içerebilir")
	ErrQuantity = errors.New("Miktar en az 1 olmalıdır")
	ErrEmail    = errors.New("Geçerli bir e-posta adresi giriniz")
	ErrPhone    = errors.New("Geçerli bir telefon numarası giriniz")
	ErrURL      = errors.New("Geçerli bir URL giriniz")
	ErrImage    = errors.New("Geçerli bir görsel giriniz")
	ErrChoice   = errors.New("Listeden bir değer seçiniz")
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	validate     = validator.New()
)

// Check validates raw and returns the normalised value that should be
// written back into the field (for example a reformatted phone number).
// An empty optional field is always valid.
func (r Rule) Check(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if r.Required {
			return value, ErrRequired
		}
		return value, nil
	}

	switch r.Kind {
	case KindText:
		if r.MinLen > 0 && utf8.RuneCountInString(value) < r.MinLen {
			return value, fmt.Errorf("En az %d karakter olmalıdır", r.MinLen)
		}
		return value, nil
	case KindPrice:
		price, err := ParsePrice(value)
		if err != nil {
			return value, err
		}
		return price.String(), nil
	case KindQuantity:
		q, err := ParseQuantity(value)
		if err != nil {
			return value, err
		}
		return strconv.Itoa(q), nil
	case KindEmail:
		if !IsEmail(value) {
			return value, ErrEmail
		}
		return value, nil
	case KindPhone:
		formatted, ok := FormatPhone(value)
		if !ok {
			return value, ErrPhone
		}
		return formatted, nil
	case KindURL:
		if !IsHTTPURL(value) {
			return value, ErrURL
		}
		return value, nil
	case KindImage:
		if IsDataURI(value) {
			if _, err := DecodeImageDataURI(value); err != nil {
				return value, ErrImage
			}
			return value, nil
		}
		if !IsHTTPURL(value) {
			return value, ErrURL
		}
		return value, nil
	case KindChoice:
		for _, opt := range r.Options {
			if strings.EqualFold(opt, value) {
				return opt, nil
			}
		}
		if r.Strict {
			return value, ErrChoice
		}
		return value, nil
	}
	return value, nil
}

// maxPrice is the first amount a numeric(15,2) column cannot hold.
var maxPrice = decimal.New(1, 13)

// ParsePrice parses a positive amount exactly. A comma is accepted as the
// decimal separator; thousands separators are not. Amounts must fit the
// numeric(15,2) price columns without rounding.
func ParsePrice(raw string) (decimal.Decimal, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	if strings.Count(normalized, ".") > 1 {
		return decimal.Zero, ErrPrice
	}
	price, err := decimal.NewFromString(normalized)
	if err != nil || !price.IsPositive() || price.GreaterThanOrEqual(maxPrice) {
		return decimal.Zero, ErrPrice
	}
	if !price.Equal(price.Truncate(2)) {
		return decimal.Zero, ErrCents
	}
	return price, nil
}

// ParseQuantity parses a whole quantity of at least one.
func ParseQuantity(raw string) (int, error) {
	q, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || q < 1 {
		return 0, ErrQuantity
	}
	return q, nil
}

func IsEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// IsHTTPURL reports whether value is an absolute http or https URL with a host.
func IsHTTPURL(value string) bool {
	if err := validate.Var(value, "required,url"); err != nil {
		return false
	}
	u, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
