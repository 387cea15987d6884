package services

import (
	"strconv"
	"testing"
	"time"

	"github.com/denilsonbarahona/residencia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessLogPagination(t *testing.T) {
	db := newTestDB(t)
	accessLogService := NewAccessLogService(db, newTestConfig())

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, accessLogService.CreateAccessLog(&models.AccessLog{
			QRCodeID:      strconv.Itoa(i + 1),
			UserID:        "2",
			ResidentialID: "1",
			ScannedAt:     base.Add(time.Duration(i) * time.Minute),
			IsValid:       true,
		}))
	}
	// 其他小区的记录不应出现
	require.NoError(t, accessLogService.CreateAccessLog(&models.AccessLog{
		QRCodeID:      "99",
		UserID:        "9",
		ResidentialID: "2",
		ScannedAt:     time.Now(),
		IsValid:       false,
	}))

	logs, total, err := accessLogService.GetAccessLogsByResidential(1, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 2)

	// 按扫描时间降序，第一页是最新的两条
	assert.Equal(t, "5", logs[0].QRCodeID)
	assert.Equal(t, "4", logs[1].QRCodeID)

	// 最后一页只剩一条
	logs, total, err = accessLogService.GetAccessLogsByResidential(1, 3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "1", logs[0].QRCodeID)

	// 超出范围的页返回空
	logs, _, err = accessLogService.GetAccessLogsByResidential(1, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestAccessLogDefaultScannedAt(t *testing.T) {
	db := newTestDB(t)
	accessLogService := NewAccessLogService(db, newTestConfig())

	log := &models.AccessLog{
		QRCodeID:      models.UnknownID,
		UserID:        models.UnknownID,
		ResidentialID: models.UnknownID,
		IsValid:       false,
		Reason:        "Invalid QR format",
	}
	require.NoError(t, accessLogService.CreateAccessLog(log))
	assert.WithinDuration(t, time.Now(), log.ScannedAt, 5*time.Second)
}

func TestAccessLogsByUser(t *testing.T) {
	db := newTestDB(t)
	accessLogService := NewAccessLogService(db, newTestConfig())

	require.NoError(t, accessLogService.CreateAccessLog(&models.AccessLog{
		QRCodeID: "1", UserID: "2", ResidentialID: "1", ScannedAt: time.Now(), IsValid: true,
	}))
	require.NoError(t, accessLogService.CreateAccessLog(&models.AccessLog{
		QRCodeID: "2", UserID: "3", ResidentialID: "1", ScannedAt: time.Now(), IsValid: true,
	}))

	logs, total, err := accessLogService.GetAccessLogsByUser(2, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, logs, 1)
	assert.Equal(t, "2", logs[0].UserID)
}
