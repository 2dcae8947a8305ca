package entity

import "time"

// ActivityAction is the islem column of the activity log.
type ActivityAction string

const (
	ActivityCreated ActivityAction = "olusturma"
	ActivityUpdated ActivityAction = "guncelleme"
	ActivityDeleted ActivityAction = "silme"
)

// Activity records one successful mutation for the dashboard feed.
type Activity struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Table       string         `gorm:"column:tablo;size:64;not null;index" json:"tablo"`
	RecordKey   string         `gorm:"column:kayit_kodu;size:64" json:"kayit_kodu"`
	Action      ActivityAction `gorm:"column:islem;size:20;not null" json:"islem"`
	Description string         `gorm:"column:aciklama;size:255" json:"aciklama"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

// TableName returns the table name for the Activity model
func (Activity) TableName() string {
	return "aktiviteler"
}
