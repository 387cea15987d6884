package models

import (
	"time"

	"gorm.io/gorm"
)

// UserRole 表示用户在小区中的角色
type UserRole string

const (
	RoleOwner    UserRole = "owner"
	RoleResident UserRole = "resident"
)

// User represents owners and residents of a residential complex
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"type:varchar(100);not null;uniqueIndex" json:"email"`
	Password      string    `gorm:"type:varchar(100);not null" json:"-"` // 不在JSON中暴露密码
	Role          UserRole  `gorm:"type:varchar(20);not null" json:"role"`
	ResidentialID uint      `json:"residential_id"`
	Apartment     string    `gorm:"type:varchar(50)" json:"apartment"`
	Name          string    `gorm:"type:varchar(100);not null" json:"name"`
	Active        bool      `gorm:"default:true" json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Residential *Residential `gorm:"foreignKey:ResidentialID" json:"residential,omitempty"`
	QRCodes     []QRCode     `gorm:"foreignKey:UserID" json:"qr_codes,omitempty"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// 如果提供了密码，对其进行哈希处理
	if u.Password != "" {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}

// BeforeSave 是一个GORM钩子，在保存记录前运行
func (u *User) BeforeSave(tx *gorm.DB) error {
	// 如果提供了密码且不是已哈希的，对其进行哈希处理
	if u.Password != "" && len(u.Password) < 60 {
		hashedPassword, err := HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashedPassword
	}
	return nil
}
