package entity

// User is a row of kullanici. PasswordHash is a bcrypt hash and is cleared
// before a user leaves the application layer.
type User struct {
	ID           int64  `gorm:"column:kullanici_id;primaryKey;autoIncrement" json:"kullanici_id"`
	Username     string `gorm:"column:kullanici_adi;size:100;uniqueIndex;not null" json:"kullanici_adi"`
	Email        string `gorm:"column:email;size:255;uniqueIndex" json:"email,omitempty"`
	PasswordHash string `gorm:"column:sifre_hash;size:255" json:"sifre_hash,omitempty"`
	Role         string `gorm:"column:rol;size:50;default:kullanici" json:"rol,omitempty"`
	Active       bool   `gorm:"column:aktif;default:true" json:"aktif"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "kullanici"
}

// Public returns a copy without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}
