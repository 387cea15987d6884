package models

import (
	"time"
)

// Residential represents a residential complex managed by an owner
// 注册时其ID与业主的用户ID相同，创建后不可变更
type Residential struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null" json:"owner_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Users       []User       `gorm:"foreignKey:ResidentialID" json:"users,omitempty"`
	Invitations []Invitation `gorm:"foreignKey:ResidentialID" json:"invitations,omitempty"`
	QRCodes     []QRCode     `gorm:"foreignKey:ResidentialID" json:"qr_codes,omitempty"`
}
