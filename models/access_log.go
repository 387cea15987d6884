package models

import (
	"time"
)

// UnknownID 在无法解析载荷时作为访问日志的标识占位值
const UnknownID = "unknown"

// AccessLog represents the audit trail of QR validation attempts
// 只追加，永不修改或删除。标识字段使用字符串列：
// 无法解析的扫描记录占位值"unknown"，二维码被硬删除后日志也不受外键牵连
type AccessLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	QRCodeID      string    `gorm:"type:varchar(64);not null" json:"qr_code_id"`
	UserID        string    `gorm:"type:varchar(64);not null" json:"user_id"`
	ResidentialID string    `gorm:"type:varchar(64);not null" json:"residential_id"`
	ScannedAt     time.Time `json:"scanned_at"`
	IsValid       bool      `json:"is_valid"`
	Reason        string    `gorm:"type:varchar(100)" json:"reason,omitempty"`
}
