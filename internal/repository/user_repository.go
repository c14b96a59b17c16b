package repository

import (
	"errors"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ListByIDs(ids []uint) ([]models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// ListByIDs 批量获取用户
func (r *GormUserRepository) ListByIDs(ids []uint) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return translateError(r.db.Create(user).Error)
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return translateError(r.db.Save(user).Error)
}

// userReferenceColumns 用户删除时需要置空的引用列
var userReferenceColumns = []struct {
	model  interface{}
	column string
}{
	{&models.Product{}, "vendor_id"},
	{&models.Cart{}, "user_id"},
	{&models.Coupon{}, "vendor_id"},
	{&models.Order{}, "customer_id"},
	{&models.OrderItem{}, "vendor_id"},
	{&models.Review{}, "user_id"},
}

// Delete 删除用户：所有引用置空，订单卖家关联移除
func (r *GormUserRepository) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		for _, ref := range userReferenceColumns {
			if err := tx.Model(ref.model).Where(ref.column+" = ?", id).Update(ref.column, nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM order_vendors WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, id).Error
	}))
}
