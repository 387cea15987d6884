package models

import (
	"time"
)

// QRCode represents a time-boxed visitor access grant
// QRData是二维码中嵌入的不透明载荷，唯一性由应用层约定保证，数据库不加唯一约束
type QRCode struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null" json:"user_id"`
	ResidentialID uint      `gorm:"not null" json:"residential_id"`
	QRData        string    `gorm:"type:varchar(512);not null" json:"qr_data"`
	Note          string    `gorm:"type:varchar(255)" json:"note"`
	VisitorName   string    `gorm:"type:varchar(100)" json:"visitor_name"`
	ExpiresAt     time.Time `json:"expires_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`
	Apartment     string    `gorm:"type:varchar(50)" json:"apartment"`
	ResidentName  string    `gorm:"type:varchar(100)" json:"resident_name"`

	// Relations
	User        *User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Residential *Residential `gorm:"foreignKey:ResidentialID" json:"residential,omitempty"`
}

// IsExpired 按墙上时钟判断二维码是否已过期
func (q *QRCode) IsExpired(now time.Time) bool {
	return !q.ExpiresAt.After(now)
}
