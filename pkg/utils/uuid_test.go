package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Teklif İşlemleri":        "teklif-islemleri",
		"Müşteri  Listesi":        "musteri-listesi",
		"Ürün kataloğu / 2025":    "urun-katalogu-2025",
		"--Şirket Çalışanları--":  "sirket-calisanlari",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestNewRequestID(t *testing.T) {
	id := NewRequestID()
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.NotEqual(t, id, NewRequestID())
}
