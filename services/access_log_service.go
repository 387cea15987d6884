package services

import (
	"strconv"
	"time"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/models"

	"gorm.io/gorm"
)

// InterfaceAccessLogService defines the audit log interface
type InterfaceAccessLogService interface {
	CreateAccessLog(log *models.AccessLog) error
	GetAccessLogsByResidential(residentialID uint, page, pageSize int) ([]models.AccessLog, int64, error)
	GetAccessLogsByUser(userID uint, page, pageSize int) ([]models.AccessLog, int64, error)
}

// AccessLogService 提供访问审计日志相关的服务
// 日志只追加，任何接口都不提供修改或删除
type AccessLogService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAccessLogService 创建一个新的访问日志服务
func NewAccessLogService(db *gorm.DB, cfg *config.Config) InterfaceAccessLogService {
	return &AccessLogService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateAccessLog 追加一条验证尝试记录
func (s *AccessLogService) CreateAccessLog(log *models.AccessLog) error {
	if log.ScannedAt.IsZero() {
		log.ScannedAt = time.Now()
	}
	return s.DB.Create(log).Error
}

// 2 GetAccessLogsByResidential 分页获取小区的扫描历史，按扫描时间降序
func (s *AccessLogService) GetAccessLogsByResidential(residentialID uint, page, pageSize int) ([]models.AccessLog, int64, error) {
	return s.listLogs("residential_id = ?", strconv.FormatUint(uint64(residentialID), 10), page, pageSize)
}

// 3 GetAccessLogsByUser 分页获取用户相关的扫描历史，按扫描时间降序
func (s *AccessLogService) GetAccessLogsByUser(userID uint, page, pageSize int) ([]models.AccessLog, int64, error) {
	return s.listLogs("user_id = ?", strconv.FormatUint(uint64(userID), 10), page, pageSize)
}

func (s *AccessLogService) listLogs(condition, value string, page, pageSize int) ([]models.AccessLog, int64, error) {
	var logs []models.AccessLog
	var total int64

	if err := s.DB.Model(&models.AccessLog{}).Where(condition, value).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := s.DB.Where(condition, value).
		Order("scanned_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
