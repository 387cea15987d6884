package services

import (
	"net/http"
	"strconv"
	"time"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/models"
	"github.com/denilsonbarahona/residencia/utils"
)

// InterfaceValidationService defines the QR validation service interface
type InterfaceValidationService interface {
	ValidateQRCode(qrData string) *ValidationResult
	CheckQRCode(qrData string) (bool, int)
}

// ValidationData 表示验证通过时返回给门卫的投影数据
type ValidationData struct {
	ResidentName string `json:"residentName"`
	Apartment    string `json:"apartment"`
	Note         string `json:"note"`
	ExpiresAt    string `json:"expiresAt"`
}

// ValidationResult 表示一次验证的裁决
type ValidationResult struct {
	Valid      bool
	StatusCode int
	Message    string
	Data       *ValidationData
}

// ValidationService 实现扫码验证的判定级联
// 每个分支(包括载荷无法解析和记录不存在)都恰好写入一条审计日志
type ValidationService struct {
	Config           *config.Config
	QRCodeService    InterfaceQRCodeService
	AccessLogService InterfaceAccessLogService
}

// NewValidationService 创建一个新的验证服务
func NewValidationService(cfg *config.Config, qrCodeService InterfaceQRCodeService, accessLogService InterfaceAccessLogService) InterfaceValidationService {
	return &ValidationService{
		Config:           cfg,
		QRCodeService:    qrCodeService,
		AccessLogService: accessLogService,
	}
}

// ValidateQRCode 按严格顺序评估载荷，首个命中的分支决定裁决:
// 1. 无法解析 -> 400  2. 记录不存在 -> 404  3. 已停用 -> 403
// 4. 已过期 -> 置is_active为false(惰性过期)并403  5. 有效 -> 200
func (s *ValidationService) ValidateQRCode(qrData string) *ValidationResult {
	// 1 载荷无法解析: 用占位标识记录日志
	parsed := utils.ParseQRData(qrData)
	if parsed == nil {
		if err := s.AccessLogService.CreateAccessLog(&models.AccessLog{
			QRCodeID:      models.UnknownID,
			UserID:        models.UnknownID,
			ResidentialID: models.UnknownID,
			ScannedAt:     time.Now(),
			IsValid:       false,
			Reason:        "Invalid QR format",
		}); err != nil {
			return s.internalError(err)
		}

		return &ValidationResult{
			Valid:      false,
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid QR format",
		}
	}

	// 2 数据库中不存在匹配记录: 记录已解码出的标识
	qrCode, err := s.QRCodeService.GetQRCodeByData(qrData)
	if err != nil {
		if err.Error() != "qr code not found" {
			return s.internalError(err)
		}

		if err := s.AccessLogService.CreateAccessLog(&models.AccessLog{
			QRCodeID:      parsed.ID,
			UserID:        strconv.FormatUint(uint64(parsed.UserID), 10),
			ResidentialID: models.UnknownID,
			ScannedAt:     time.Now(),
			IsValid:       false,
			Reason:        "QR code not found in database",
		}); err != nil {
			return s.internalError(err)
		}

		return &ValidationResult{
			Valid:      false,
			StatusCode: http.StatusNotFound,
			Message:    "QR code not found",
		}
	}

	// 3 记录已被停用
	if !qrCode.IsActive {
		if err := s.logAttempt(qrCode, false, "QR code is inactive"); err != nil {
			return s.internalError(err)
		}

		return &ValidationResult{
			Valid:      false,
			StatusCode: http.StatusForbidden,
			Message:    "QR code is inactive",
		}
	}

	// 4 已过期: 惰性过期，只有在有人扫码检查时才把is_active落为false
	if qrCode.IsExpired(time.Now()) {
		if err := s.QRCodeService.UpdateQRCode(qrCode.ID, map[string]interface{}{
			"is_active": false,
		}); err != nil {
			return s.internalError(err)
		}

		if err := s.logAttempt(qrCode, false, "QR code expired"); err != nil {
			return s.internalError(err)
		}

		return &ValidationResult{
			Valid:      false,
			StatusCode: http.StatusForbidden,
			Message:    "QR code has expired",
		}
	}

	// 5 有效: 放行
	if err := s.logAttempt(qrCode, true, ""); err != nil {
		return s.internalError(err)
	}

	return &ValidationResult{
		Valid:      true,
		StatusCode: http.StatusOK,
		Message:    "Access granted",
		Data: &ValidationData{
			ResidentName: qrCode.ResidentName,
			Apartment:    qrCode.Apartment,
			Note:         qrCode.Note,
			ExpiresAt:    qrCode.ExpiresAt.UTC().Format(time.RFC3339),
		},
	}
}

// CheckQRCode 轻量布尔校验(门禁闸机的GET形式):
// 解码 -> 存在 -> 启用 -> 未过期，不写审计日志也不落惰性过期
func (s *ValidationService) CheckQRCode(qrData string) (bool, int) {
	parsed := utils.ParseQRData(qrData)
	if parsed == nil {
		return false, http.StatusBadRequest
	}

	qrCode, err := s.QRCodeService.GetQRCodeByData(qrData)
	if err != nil {
		if err.Error() == "qr code not found" {
			return false, http.StatusForbidden
		}
		return false, http.StatusInternalServerError
	}

	if !qrCode.IsActive || qrCode.IsExpired(time.Now()) {
		return false, http.StatusForbidden
	}

	return true, http.StatusOK
}

// logAttempt 为一条已解析到的二维码记录写入审计日志
func (s *ValidationService) logAttempt(qrCode *models.QRCode, isValid bool, reason string) error {
	return s.AccessLogService.CreateAccessLog(&models.AccessLog{
		QRCodeID:      strconv.FormatUint(uint64(qrCode.ID), 10),
		UserID:        strconv.FormatUint(uint64(qrCode.UserID), 10),
		ResidentialID: strconv.FormatUint(uint64(qrCode.ResidentialID), 10),
		ScannedAt:     time.Now(),
		IsValid:       isValid,
		Reason:        reason,
	})
}

// internalError 记录诊断日志并返回500裁决
func (s *ValidationService) internalError(err error) *ValidationResult {
	config.Error("验证二维码时发生内部错误: %v", err)
	return &ValidationResult{
		Valid:      false,
		StatusCode: http.StatusInternalServerError,
		Message:    "Internal server error",
	}
}
