package services

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/denilsonbarahona/residencia/models"
	"github.com/denilsonbarahona/residencia/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newValidationFixture(t *testing.T) (*gorm.DB, InterfaceQRCodeService, InterfaceValidationService) {
	t.Helper()

	db := newTestDB(t)
	cfg := newTestConfig()
	qrService := NewQRCodeService(db, cfg)
	accessLogService := NewAccessLogService(db, cfg)
	validationService := NewValidationService(cfg, qrService, accessLogService)
	return db, qrService, validationService
}

func countAccessLogs(t *testing.T, db *gorm.DB) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&models.AccessLog{}).Count(&count).Error)
	return count
}

func lastAccessLog(t *testing.T, db *gorm.DB) *models.AccessLog {
	t.Helper()

	var log models.AccessLog
	require.NoError(t, db.Order("id DESC").First(&log).Error)
	return &log
}

func TestValidateQRCodeMalformedPayload(t *testing.T) {
	db, _, validationService := newValidationFixture(t)

	result := validationService.ValidateQRCode("not-json")

	assert.False(t, result.Valid)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "Invalid QR format", result.Message)
	assert.Nil(t, result.Data)

	// 无法解析时也要落一条审计日志，标识全部为占位值
	assert.Equal(t, int64(1), countAccessLogs(t, db))
	log := lastAccessLog(t, db)
	assert.Equal(t, models.UnknownID, log.QRCodeID)
	assert.Equal(t, models.UnknownID, log.UserID)
	assert.Equal(t, models.UnknownID, log.ResidentialID)
	assert.False(t, log.IsValid)
	assert.Equal(t, "Invalid QR format", log.Reason)
}

func TestValidateQRCodeNotFound(t *testing.T) {
	db, _, validationService := newValidationFixture(t)

	// 格式合法但库中不存在的载荷
	qrData := utils.GenerateQRData(42, "4B", "Jane Roe")
	result := validationService.ValidateQRCode(qrData)

	assert.False(t, result.Valid)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, "QR code not found", result.Message)

	// 已解码的标识要写进日志，小区未知用占位值
	log := lastAccessLog(t, db)
	assert.Equal(t, "42", log.UserID)
	assert.Equal(t, models.UnknownID, log.ResidentialID)
	assert.NotEqual(t, models.UnknownID, log.QRCodeID)
	assert.Equal(t, "QR code not found in database", log.Reason)
}

func TestValidateQRCodeInactive(t *testing.T) {
	db, qrService, validationService := newValidationFixture(t)

	user := seedResident(t, db, 1, "resident@example.com")
	qrCode, err := qrService.CreateQRCode(user, "Carlos Mendoza", "")
	require.NoError(t, err)
	require.NoError(t, qrService.UpdateQRCode(qrCode.ID, map[string]interface{}{"is_active": false}))

	result := validationService.ValidateQRCode(qrCode.QRData)

	assert.False(t, result.Valid)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.Equal(t, "QR code is inactive", result.Message)

	log := lastAccessLog(t, db)
	assert.Equal(t, strconv.FormatUint(uint64(qrCode.ID), 10), log.QRCodeID)
	assert.Equal(t, "QR code is inactive", log.Reason)
}

func TestValidateQRCodeLazyExpiry(t *testing.T) {
	db, qrService, validationService := newValidationFixture(t)

	user := seedResident(t, db, 1, "resident@example.com")
	qrCode, err := qrService.CreateQRCode(user, "Carlos Mendoza", "")
	require.NoError(t, err)

	// 回拨过期时间，记录仍是启用状态
	require.NoError(t, qrService.UpdateQRCode(qrCode.ID, map[string]interface{}{
		"expires_at": time.Now().Add(-time.Minute),
	}))

	result := validationService.ValidateQRCode(qrCode.QRData)
	assert.False(t, result.Valid)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.Equal(t, "QR code has expired", result.Message)

	// 惰性过期: 第一次扫码把is_active落为false
	stored, err := qrService.GetQRCodeByID(qrCode.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	log := lastAccessLog(t, db)
	assert.Equal(t, "QR code expired", log.Reason)

	// 第二次扫码走的是停用分支而不是过期分支
	result = validationService.ValidateQRCode(qrCode.QRData)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.Equal(t, "QR code is inactive", result.Message)
}

func TestValidateQRCodeGranted(t *testing.T) {
	db, qrService, validationService := newValidationFixture(t)

	user := seedResident(t, db, 1, "resident@example.com")
	qrCode, err := qrService.CreateQRCode(user, "Carlos Mendoza", "Entrega de paquete")
	require.NoError(t, err)

	result := validationService.ValidateQRCode(qrCode.QRData)

	assert.True(t, result.Valid)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "Access granted", result.Message)
	require.NotNil(t, result.Data)
	assert.Equal(t, "Jane Roe", result.Data.ResidentName)
	assert.Equal(t, "4B", result.Data.Apartment)
	assert.Equal(t, "Entrega de paquete", result.Data.Note)
	assert.Equal(t, qrCode.ExpiresAt.UTC().Format(time.RFC3339), result.Data.ExpiresAt)

	log := lastAccessLog(t, db)
	assert.True(t, log.IsValid)
	assert.Empty(t, log.Reason)
	assert.Equal(t, strconv.FormatUint(uint64(user.ID), 10), log.UserID)
	assert.Equal(t, "1", log.ResidentialID)
}

func TestValidateQRCodeEveryBranchWritesOneLog(t *testing.T) {
	db, qrService, validationService := newValidationFixture(t)

	user := seedResident(t, db, 1, "resident@example.com")
	qrCode, err := qrService.CreateQRCode(user, "Carlos Mendoza", "")
	require.NoError(t, err)

	validationService.ValidateQRCode("garbage")
	validationService.ValidateQRCode(utils.GenerateQRData(99, "1A", "Nobody"))
	validationService.ValidateQRCode(qrCode.QRData)

	assert.Equal(t, int64(3), countAccessLogs(t, db))
}

func TestCheckQRCode(t *testing.T) {
	db, qrService, validationService := newValidationFixture(t)

	user := seedResident(t, db, 1, "resident@example.com")
	qrCode, err := qrService.CreateQRCode(user, "Carlos Mendoza", "")
	require.NoError(t, err)

	// 格式错误
	valid, status := validationService.CheckQRCode("not-json")
	assert.False(t, valid)
	assert.Equal(t, http.StatusBadRequest, status)

	// 不存在
	valid, status = validationService.CheckQRCode(utils.GenerateQRData(99, "1A", "Nobody"))
	assert.False(t, valid)
	assert.Equal(t, http.StatusForbidden, status)

	// 有效
	valid, status = validationService.CheckQRCode(qrCode.QRData)
	assert.True(t, valid)
	assert.Equal(t, http.StatusOK, status)

	// 布尔校验不写审计日志
	assert.Equal(t, int64(0), countAccessLogs(t, db))

	// 已过期: 拒绝但不落惰性过期
	require.NoError(t, qrService.UpdateQRCode(qrCode.ID, map[string]interface{}{
		"expires_at": time.Now().Add(-time.Minute),
	}))
	valid, status = validationService.CheckQRCode(qrCode.QRData)
	assert.False(t, valid)
	assert.Equal(t, http.StatusForbidden, status)

	stored, err := qrService.GetQRCodeByID(qrCode.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}
