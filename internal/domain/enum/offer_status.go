package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// OfferStatus is the durum column of an offer, persisted as its Turkish label.
type OfferStatus string

const (
	OfferStatusDraft OfferStatus = "Taslak"
	OfferStatusSent  OfferStatus = "Gönderildi"
)

// OfferStatuses lists every accepted durum value in display order.
var OfferStatuses = []OfferStatus{OfferStatusDraft, OfferStatusSent}

func (s OfferStatus) String() string {
	return string(s)
}

func (s OfferStatus) Valid() bool {
	return s == OfferStatusDraft || s == OfferStatusSent
}

// ParseOfferStatus accepts the label or the english alias (draft, sent).
func ParseOfferStatus(raw string) (OfferStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "taslak", "draft":
		return OfferStatusDraft, nil
	case "gönderildi", "gonderildi", "sent":
		return OfferStatusSent, nil
	}
	return "", fmt.Errorf("invalid offer status %q", raw)
}

func (s OfferStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON keeps unknown labels as-is so a foreign row never breaks a list load.
func (s *OfferStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if parsed, err := ParseOfferStatus(str); err == nil {
		*s = parsed
		return nil
	}
	*s = OfferStatus(str)
	return nil
}

func (s OfferStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *OfferStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = OfferStatusDraft
	case string:
		*s = OfferStatus(v)
	case []byte:
		*s = OfferStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into OfferStatus", value)
	}
	return nil
}
