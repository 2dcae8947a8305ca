package entity

import (
	"strings"
	"time"

	"github.com/labomak/dashboard/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Product is a row of urun_listesi. Price and Currency always travel together.
type Product struct {
	Code        int64           `gorm:"column:urun_kodu;primaryKey;autoIncrement" json:"urun_kodu"`
	Name        string          `gorm:"column:urun_adi;size:255;not null" json:"urun_adi"`
	Description string          `gorm:"column:urun_aciklama;type:text" json:"urun_aciklama"`
	Price       decimal.Decimal `gorm:"column:fiyat;type:numeric(15,2);not null" json:"fiyat"`
	Currency    enum.Currency   `gorm:"column:doviz_cinsi;size:3;not null;default:TRY" json:"doviz_cinsi"`
	ImageURL    string          `gorm:"column:urun_gorseli_url;type:text" json:"urun_gorseli_url,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "urun_listesi"
}

// HasUploadedImage reports whether the image reference is an inline data URI rather than a link.
func (p *Product) HasUploadedImage() bool {
	return strings.HasPrefix(p.ImageURL, "data:")
}
