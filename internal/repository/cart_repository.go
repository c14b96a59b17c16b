package repository

import (
	"errors"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByCartID(cartID string) ([]models.Cart, error)
	ListByUser(userID uint) ([]models.Cart, error)
	GetByID(id uint) (*models.Cart, error)
	FindLine(cartID string, productID uint, size, color *string) (*models.Cart, error)
	Create(cart *models.Cart) error
	Update(cart *models.Cart) error
	Delete(id uint) error
	ClearByCartID(cartID string) error
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByCartID 获取会话购物车行（按创建时间倒序）
func (r *GormCartRepository) ListByCartID(cartID string) ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.db.Preload("Product").Where("cart_id = ?", cartID).Order("date DESC, id DESC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// ListByUser 获取用户购物车行（按创建时间倒序）
func (r *GormCartRepository) ListByUser(userID uint) ([]models.Cart, error) {
	var carts []models.Cart
	if err := r.db.Preload("Product").Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&carts).Error; err != nil {
		return nil, err
	}
	return carts, nil
}

// GetByID 根据 ID 获取购物车行
func (r *GormCartRepository) GetByID(id uint) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Product").First(&cart, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// FindLine 按会话、商品与规格查找已有购物车行
func (r *GormCartRepository) FindLine(cartID string, productID uint, size, color *string) (*models.Cart, error) {
	query := r.db.Where("cart_id = ? AND product_id = ?", cartID, productID)
	query = whereNullable(query, "size", size)
	query = whereNullable(query, "color", color)

	var cart models.Cart
	if err := query.Order("id ASC").First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cart, nil
}

// Create 创建购物车行
func (r *GormCartRepository) Create(cart *models.Cart) error {
	return translateError(r.db.Omit("Product", "User").Create(cart).Error)
}

// Update 更新购物车行
func (r *GormCartRepository) Update(cart *models.Cart) error {
	return translateError(r.db.Omit("Product", "User").Save(cart).Error)
}

// Delete 删除购物车行
func (r *GormCartRepository) Delete(id uint) error {
	return translateError(r.db.Delete(&models.Cart{}, id).Error)
}

// ClearByCartID 清空会话购物车
func (r *GormCartRepository) ClearByCartID(cartID string) error {
	return translateError(r.db.Where("cart_id = ?", cartID).Delete(&models.Cart{}).Error)
}

func whereNullable(query *gorm.DB, column string, value *string) *gorm.DB {
	if value == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", *value)
}
