package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"
)

// CreateUserInput 创建用户输入
type CreateUserInput struct {
	Username string `validate:"required,max=150"`
	Email    string `validate:"omitempty,email,max=254"`
}

// UserService 用户服务（买家与卖家仅作为引用对象）
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Create 创建用户
func (s *UserService) Create(input CreateUserInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	username := strings.TrimSpace(input.Username)
	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}
	user := models.User{Username: username, Email: strings.TrimSpace(input.Email)}
	if err := s.userRepo.Create(&user); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrUsernameExists
		}
		return nil, err
	}
	return &user, nil
}

// Get 获取用户
func (s *UserService) Get(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByUsername 根据用户名获取用户
func (s *UserService) GetByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Delete 删除用户，商品、订单、评价等引用置空保留
func (s *UserService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("user_deleted", "user_id", id)
	return nil
}
