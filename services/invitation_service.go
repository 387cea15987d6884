package services

import (
	"errors"
	"sort"
	"time"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 邀请有效期为7天
const invitationValidity = 7 * 24 * time.Hour

// InterfaceInvitationService defines the invitation service interface
type InterfaceInvitationService interface {
	CreateInvitation(residentialID uint, email string) (*models.Invitation, string, error)
	GetInvitationByID(id uint) (*models.Invitation, error)
	GetInvitationByToken(token string) (*models.Invitation, error)
	GetInvitationsByResidential(residentialID uint) ([]models.Invitation, error)
	UpdateInvitation(id uint, updates map[string]interface{}) error
	VerifyInvitation(token string) (*models.Invitation, error)
	AcceptInvitation(input *AcceptInvitationInput) (*models.User, error)
}

// AcceptInvitationInput 表示接受邀请所需的数据
type AcceptInvitationInput struct {
	Token     string
	Name      string
	Password  string
	Apartment string
}

// InvitationService 提供邀请相关的服务
type InvitationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewInvitationService 创建一个新的邀请服务
func NewInvitationService(db *gorm.DB, cfg *config.Config) InterfaceInvitationService {
	return &InvitationService{
		DB:     db,
		Config: cfg,
	}
}

// 1 CreateInvitation 创建新邀请，返回邀请记录和接受链接
func (s *InvitationService) CreateInvitation(residentialID uint, email string) (*models.Invitation, string, error) {
	invitation := &models.Invitation{
		ResidentialID: residentialID,
		Email:         email,
		Token:         uuid.NewString(),
		Status:        models.InvitationStatusPending,
		ExpiresAt:     time.Now().Add(invitationValidity),
	}

	if err := s.DB.Create(invitation).Error; err != nil {
		return nil, "", err
	}

	link := s.Config.AppBaseURL + "/invitation/accept?token=" + invitation.Token
	return invitation, link, nil
}

// 2 GetInvitationByID 根据ID获取邀请
func (s *InvitationService) GetInvitationByID(id uint) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.DB.First(&invitation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invitation not found")
		}
		return nil, err
	}
	return &invitation, nil
}

// 3 GetInvitationByToken 根据令牌获取邀请，令牌是接受邀请的唯一查找键
func (s *InvitationService) GetInvitationByToken(token string) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := s.DB.Where("token = ?", token).First(&invitation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("invitation not found")
		}
		return nil, err
	}
	return &invitation, nil
}

// 4 GetInvitationsByResidential 获取小区的所有邀请
// 查询不带排序，在服务层按创建时间降序手动排序
func (s *InvitationService) GetInvitationsByResidential(residentialID uint) ([]models.Invitation, error) {
	var invitations []models.Invitation
	if err := s.DB.Where("residential_id = ?", residentialID).Find(&invitations).Error; err != nil {
		return nil, err
	}

	sort.Slice(invitations, func(i, j int) bool {
		return invitations[i].CreatedAt.After(invitations[j].CreatedAt)
	})
	return invitations, nil
}

// 5 UpdateInvitation 更新邀请(实践中只用于状态转换)
func (s *InvitationService) UpdateInvitation(id uint, updates map[string]interface{}) error {
	return s.DB.Model(&models.Invitation{}).Where("id = ?", id).Updates(updates).Error
}

// 6 VerifyInvitation 校验邀请是否可被接受: 必须是pending状态且未过期
// 过期按墙上时钟判断，存储的状态字段不做自动翻转
func (s *InvitationService) VerifyInvitation(token string) (*models.Invitation, error) {
	invitation, err := s.GetInvitationByToken(token)
	if err != nil {
		return nil, err
	}

	if invitation.Status != models.InvitationStatusPending {
		return nil, errors.New("invitation already used or expired")
	}

	if invitation.IsExpired(time.Now()) {
		return nil, errors.New("invitation has expired")
	}

	return invitation, nil
}

// 7 AcceptInvitation 接受邀请并注册住户
// 复合操作: 校验邀请 -> 注册身份(邮箱唯一性) -> 创建住户用户 -> 标记邀请为accepted
// 各步骤独立写入，不在同一事务中，后续步骤失败不做补偿回滚
func (s *InvitationService) AcceptInvitation(input *AcceptInvitationInput) (*models.User, error) {
	invitation, err := s.VerifyInvitation(input.Token)
	if err != nil {
		return nil, err
	}

	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", invitation.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("email already in use")
	}

	apartment := input.Apartment
	if apartment == "" {
		apartment = "N/A"
	}

	user := &models.User{
		Email:         invitation.Email,
		Password:      input.Password,
		Role:          models.RoleResident,
		ResidentialID: invitation.ResidentialID,
		Apartment:     apartment,
		Name:          input.Name,
		Active:        true,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}

	if err := s.UpdateInvitation(invitation.ID, map[string]interface{}{
		"status": models.InvitationStatusAccepted,
	}); err != nil {
		return nil, err
	}

	return user, nil
}
