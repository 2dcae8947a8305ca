package entity

import "time"

// Customer is a row of musteri_listesi. Code is assigned by the backend.
type Customer struct {
	Code            int64     `gorm:"column:musteri_kodu;primaryKey;autoIncrement" json:"musteri_kodu"`
	CompanyName     string    `gorm:"column:sirket_adi;size:255;not null" json:"sirket_adi"`
	CompanyAddress  string    `gorm:"column:sirket_adres;type:text" json:"sirket_adres,omitempty"`
	City            string    `gorm:"column:sirket_sehir;size:100" json:"sirket_sehir,omitempty"`
	Country         string    `gorm:"column:sirket_ulke;size:100" json:"sirket_ulke,omitempty"`
	CompanyPhone    string    `gorm:"column:sirket_telefon;size:50" json:"sirket_telefon,omitempty"`
	CompanyEmail    string    `gorm:"column:sirket_mail;size:255" json:"sirket_mail,omitempty"`
	ContactName     string    `gorm:"column:kisi_adi;size:255" json:"kisi_adi,omitempty"`
	ContactTitle    string    `gorm:"column:kisi_unvan;size:255" json:"kisi_unvan,omitempty"`
	ContactPhoneExt string    `gorm:"column:kisi_telefon_dahili;size:50" json:"kisi_telefon_dahili,omitempty"`
	ContactMobile   string    `gorm:"column:kisi_telefon_mobil;size:50" json:"kisi_telefon_mobil,omitempty"`
	ContactEmail    string    `gorm:"column:kisi_mail;size:255" json:"kisi_mail,omitempty"`
	ReferencePDF    string    `gorm:"column:referans_pdf;type:text" json:"referans_pdf,omitempty"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "musteri_listesi"
}

// CountryOptions is the free list offered by the customer form. Other values are accepted.
var CountryOptions = []string{"Türkiye", "ABD", "Almanya", "İngiltere", "Fransa"}
