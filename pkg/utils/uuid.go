package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewRequestID returns the id stamped on every API response.
func NewRequestID() string {
	return uuid.New().String()
}

var turkishASCII = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "I", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
)

var (
	nonSlug   = regexp.MustCompile("[^a-z0-9-]")
	multiDash = regexp.MustCompile("-+")
)

// Slugify converts a string to a file-name friendly slug, folding Turkish letters to ASCII.
func Slugify(s string) string {
	s = turkishASCII.Replace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = nonSlug.ReplaceAllString(s, "")
	s = multiDash.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
