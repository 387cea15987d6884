package services

import (
	"errors"
	"sort"
	"time"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/models"
	"github.com/denilsonbarahona/residencia/utils"

	"gorm.io/gorm"
)

// 二维码签发后固定4小时有效
const qrCodeValidity = 4 * time.Hour

// InterfaceQRCodeService defines the access record store interface
type InterfaceQRCodeService interface {
	CreateQRCode(user *models.User, visitorName, note string) (*models.QRCode, error)
	GetQRCodeByID(id uint) (*models.QRCode, error)
	GetQRCodeByData(qrData string) (*models.QRCode, error)
	GetQRCodesByUser(userID uint) ([]models.QRCode, error)
	GetQRCodesByResidential(residentialID uint) ([]models.QRCode, error)
	UpdateQRCode(id uint, updates map[string]interface{}) error
	DeleteQRCode(id uint, requesterID uint, requesterRole string, requesterResidentialID uint) error
}

// QRCodeService 提供二维码访问记录相关的服务
type QRCodeService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewQRCodeService 创建一个新的二维码服务
func NewQRCodeService(db *gorm.DB, cfg *config.Config) InterfaceQRCodeService {
	return &QRCodeService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateQRCode 签发二维码: 生成载荷并持久化记录，有效期固定为签发起4小时
func (s *QRCodeService) CreateQRCode(user *models.User, visitorName, note string) (*models.QRCode, error) {
	if visitorName == "" {
		return nil, errors.New("visitor name is required")
	}

	qrData := utils.GenerateQRData(user.ID, user.Apartment, user.Name)

	qrCode := &models.QRCode{
		UserID:        user.ID,
		ResidentialID: user.ResidentialID,
		QRData:        qrData,
		Note:          note,
		VisitorName:   visitorName,
		ExpiresAt:     time.Now().Add(qrCodeValidity),
		IsActive:      true,
		Apartment:     user.Apartment,
		ResidentName:  user.Name,
	}

	if err := s.DB.Create(qrCode).Error; err != nil {
		return nil, err
	}
	return qrCode, nil
}

// 2 GetQRCodeByID 根据ID获取二维码
func (s *QRCodeService) GetQRCodeByID(id uint) (*models.QRCode, error) {
	var qrCode models.QRCode
	if err := s.DB.First(&qrCode, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("qr code not found")
		}
		return nil, err
	}
	return &qrCode, nil
}

// 3 GetQRCodeByData 按载荷字符串精确匹配，最多返回一条
// 载荷唯一性是应用层约定，数据库不加唯一约束
func (s *QRCodeService) GetQRCodeByData(qrData string) (*models.QRCode, error) {
	var qrCode models.QRCode
	if err := s.DB.Where("qr_data = ?", qrData).Limit(1).First(&qrCode).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("qr code not found")
		}
		return nil, err
	}
	return &qrCode, nil
}

// 4 GetQRCodesByUser 获取用户签发的所有二维码
// 查询不带排序，在服务层按创建时间降序手动排序(避免组合索引的既定策略)
func (s *QRCodeService) GetQRCodesByUser(userID uint) ([]models.QRCode, error) {
	var qrCodes []models.QRCode
	if err := s.DB.Where("user_id = ?", userID).Find(&qrCodes).Error; err != nil {
		return nil, err
	}

	sort.Slice(qrCodes, func(i, j int) bool {
		return qrCodes[i].CreatedAt.After(qrCodes[j].CreatedAt)
	})
	return qrCodes, nil
}

// 5 GetQRCodesByResidential 获取小区内的所有二维码
func (s *QRCodeService) GetQRCodesByResidential(residentialID uint) ([]models.QRCode, error) {
	var qrCodes []models.QRCode
	if err := s.DB.Where("residential_id = ?", residentialID).Find(&qrCodes).Error; err != nil {
		return nil, err
	}

	sort.Slice(qrCodes, func(i, j int) bool {
		return qrCodes[i].CreatedAt.After(qrCodes[j].CreatedAt)
	})
	return qrCodes, nil
}

// 6 UpdateQRCode 部分字段合并更新(实践中只用于将is_active置为false)
func (s *QRCodeService) UpdateQRCode(id uint, updates map[string]interface{}) error {
	return s.DB.Model(&models.QRCode{}).Where("id = ?", id).Updates(updates).Error
}

// 7 DeleteQRCode 硬删除二维码，不可恢复
// 仅签发者本人或同小区的业主可以删除
func (s *QRCodeService) DeleteQRCode(id uint, requesterID uint, requesterRole string, requesterResidentialID uint) error {
	qrCode, err := s.GetQRCodeByID(id)
	if err != nil {
		return err
	}

	isIssuer := qrCode.UserID == requesterID
	isOwner := requesterRole == string(models.RoleOwner) && qrCode.ResidentialID == requesterResidentialID
	if !isIssuer && !isOwner {
		return errors.New("permission denied")
	}

	return s.DB.Delete(qrCode).Error
}
