package models

import (
	"time"
)

// InvitationStatus 表示邀请的状态
type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusExpired  InvitationStatus = "expired"
)

// Invitation represents an invitation sent by an owner to a future resident
// 过期与否在读取时按当前时间判断，存储的状态字段不会自动翻转为expired
type Invitation struct {
	ID            uint             `gorm:"primaryKey" json:"id"`
	ResidentialID uint             `gorm:"not null" json:"residential_id"`
	Email         string           `gorm:"type:varchar(100);not null" json:"email"`
	Token         string           `gorm:"type:varchar(64);not null;uniqueIndex" json:"token"`
	Status        InvitationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ExpiresAt     time.Time        `json:"expires_at"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`

	// Relations
	Residential *Residential `gorm:"foreignKey:ResidentialID" json:"residential,omitempty"`
}

// IsExpired 按墙上时钟判断邀请是否已过期
func (i *Invitation) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}
