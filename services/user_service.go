package services

import (
	"errors"
	"sort"

	"github.com/denilsonbarahona/residencia/config"
	"github.com/denilsonbarahona/residencia/models"

	"gorm.io/gorm"
)

// InterfaceUserService defines the user service interface
type InterfaceUserService interface {
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	RegisterOwner(input *RegisterOwnerInput) (*models.User, error)
	GetResidentsByResidential(residentialID uint) ([]models.User, error)
	SetResidentActive(id uint, residentialID uint, active bool) (*models.User, error)
	GetResidential(id uint) (*models.Residential, error)
}

// RegisterOwnerInput 表示业主注册所需的数据
type RegisterOwnerInput struct {
	Name               string
	Email              string
	Password           string
	ResidentialName    string
	ResidentialAddress string
	Apartment          string
}

// UserService 提供用户相关的服务
type UserService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewUserService 创建一个新的用户服务
func NewUserService(db *gorm.DB, cfg *config.Config) InterfaceUserService {
	return &UserService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetUserByID 根据ID获取用户
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// 2 GetUserByEmail 根据邮箱获取用户
func (s *UserService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// 3 RegisterOwner 注册业主并创建其小区
// 复合操作: 创建用户 -> 创建小区(ID与业主用户ID相同) -> 回填用户的小区ID
// 各步骤独立写入，不在同一事务中，中途失败会留下部分状态
func (s *UserService) RegisterOwner(input *RegisterOwnerInput) (*models.User, error) {
	// 验证邮箱唯一性
	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&count).Error; err != nil {
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
		Email:     input.Email,
		Password:  input.Password,
		Role:      models.RoleOwner,
		Apartment: apartment,
		Name:      input.Name,
		Active:    true,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}

	// 小区ID与业主用户ID相同
	residential := &models.Residential{
		ID:      user.ID,
		OwnerID: user.ID,
		Name:    input.ResidentialName,
		Address: input.ResidentialAddress,
	}
	if err := s.DB.Create(residential).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(user).Update("residential_id", residential.ID).Error; err != nil {
		return nil, err
	}
	user.ResidentialID = residential.ID

	return user, nil
}

// 4 GetResidentsByResidential 获取小区内的所有住户
// 查询不带排序，在服务层按创建时间降序手动排序(沿用避免组合索引的既定策略)
func (s *UserService) GetResidentsByResidential(residentialID uint) ([]models.User, error) {
	var residents []models.User
	if err := s.DB.Where("residential_id = ? AND role = ?", residentialID, models.RoleResident).
		Find(&residents).Error; err != nil {
		return nil, err
	}

	sort.Slice(residents, func(i, j int) bool {
		return residents[i].CreatedAt.After(residents[j].CreatedAt)
	})
	return residents, nil
}

// 5 SetResidentActive 设置住户的启用状态(撤销或恢复访问权)
// 不会级联停用该住户已签发的二维码，二维码独立受自身is_active/expires_at约束
func (s *UserService) SetResidentActive(id uint, residentialID uint, active bool) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ? AND residential_id = ? AND role = ?", id, residentialID, models.RoleResident).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("resident not found")
		}
		return nil, err
	}

	if err := s.DB.Model(&user).Update("active", active).Error; err != nil {
		return nil, err
	}
	user.Active = active
	return &user, nil
}

// 6 GetResidential 获取小区信息
func (s *UserService) GetResidential(id uint) (*models.Residential, error) {
	var residential models.Residential
	if err := s.DB.First(&residential, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("residential not found")
		}
		return nil, err
	}
	return &residential, nil
}
