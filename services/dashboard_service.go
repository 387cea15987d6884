package services

import (
	"sync"
	"time"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/models"
)

// 统计结果缓存1分钟
const dashboardStatsTTL = time.Minute

// InterfaceDashboardService defines the dashboard service interface
type InterfaceDashboardService interface {
	GetStats(user *models.User) (*DashboardStats, error)
}

// DashboardStats 表示控制台首页的统计数据
type DashboardStats struct {
	TotalQR        int `json:"total_qr"`
	ActiveQR       int `json:"active_qr"`
	TotalResidents int `json:"total_residents"`
}

// DashboardService 聚合控制台首页统计
type DashboardService struct {
	Config        *config.Config
	QRCodeService InterfaceQRCodeService
	UserService   InterfaceUserService
	RedisService  InterfaceRedisService
}

// NewDashboardService 创建一个新的控制台服务
func NewDashboardService(cfg *config.Config, qrCodeService InterfaceQRCodeService, userService InterfaceUserService, redisService InterfaceRedisService) InterfaceDashboardService {
	return &DashboardService{
		Config:        cfg,
		QRCodeService: qrCodeService,
		UserService:   userService,
		RedisService:  redisService,
	}
}

// GetStats 获取统计数据，优先读Redis缓存，缓存不可用时直接查库
// 业主视图的两次独立列表查询并行执行，这是整个系统里唯一并行化的操作
func (s *DashboardService) GetStats(user *models.User) (*DashboardStats, error) {
	if s.RedisService != nil {
		var cached DashboardStats
		if err := s.RedisService.GetDashboardStats(user.ID, &cached); err == nil {
			return &cached, nil
		}
	}

	var stats *DashboardStats
	var err error
	if user.Role == models.RoleOwner {
		stats, err = s.ownerStats(user)
	} else {
		stats, err = s.residentStats(user)
	}
	if err != nil {
		return nil, err
	}

	if s.RedisService != nil {
		if cacheErr := s.RedisService.CacheDashboardStats(user.ID, stats, dashboardStatsTTL); cacheErr != nil {
			config.Warning("缓存控制台统计失败: %v", cacheErr)
		}
	}
	return stats, nil
}

// ownerStats 业主视图: 小区全部二维码与住户数
func (s *DashboardService) ownerStats(user *models.User) (*DashboardStats, error) {
	var (
		wg           sync.WaitGroup
		qrCodes      []models.QRCode
		residents    []models.User
		qrErr, rsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		qrCodes, qrErr = s.QRCodeService.GetQRCodesByResidential(user.ResidentialID)
	}()
	go func() {
		defer wg.Done()
		residents, rsErr = s.UserService.GetResidentsByResidential(user.ResidentialID)
	}()
	wg.Wait()

	if qrErr != nil {
		return nil, qrErr
	}
	if rsErr != nil {
		return nil, rsErr
	}

	return &DashboardStats{
		TotalQR:        len(qrCodes),
		ActiveQR:       countActive(qrCodes),
		TotalResidents: len(residents),
	}, nil
}

// residentStats 住户视图: 只统计自己签发的二维码
func (s *DashboardService) residentStats(user *models.User) (*DashboardStats, error) {
	qrCodes, err := s.QRCodeService.GetQRCodesByUser(user.ID)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalQR:  len(qrCodes),
		ActiveQR: countActive(qrCodes),
	}, nil
}

// countActive 统计启用且未过期的二维码数量，有效性在读取时计算
func countActive(qrCodes []models.QRCode) int {
	now := time.Now()
	count := 0
	for _, qr := range qrCodes {
		if qr.IsActive && !qr.IsExpired(now) {
			count++
		}
	}
	return count
}
