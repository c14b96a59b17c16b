package repository

import (
	"errors"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// VariantRepository 商品规格数据访问接口
type VariantRepository interface {
	ListByProduct(productID uint) ([]models.Variant, error)
	GetByID(id uint) (*models.Variant, error)
	Create(variant *models.Variant) error
	Update(variant *models.Variant) error
	Delete(id uint) error
	ListItems(variantID uint) ([]models.VariantItem, error)
	GetItem(id uint) (*models.VariantItem, error)
	CreateItem(item *models.VariantItem) error
	UpdateItem(item *models.VariantItem) error
	DeleteItem(id uint) error
	WithTx(tx *gorm.DB) VariantRepository
}

// GormVariantRepository GORM 实现
type GormVariantRepository struct {
	db *gorm.DB
}

// NewVariantRepository 创建规格仓库
func NewVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// WithTx 绑定事务
func (r *GormVariantRepository) WithTx(tx *gorm.DB) VariantRepository {
	if tx == nil {
		return r
	}
	return &GormVariantRepository{db: tx}
}

// ListByProduct 获取商品的规格（含规格项）
func (r *GormVariantRepository) ListByProduct(productID uint) ([]models.Variant, error) {
	var variants []models.Variant
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("product_id = ?", productID).Order("id ASC").Find(&variants).Error; err != nil {
		return nil, err
	}
	return variants, nil
}

// GetByID 根据 ID 获取规格
func (r *GormVariantRepository) GetByID(id uint) (*models.Variant, error) {
	var variant models.Variant
	if err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&variant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &variant, nil
}

// Create 创建规格
func (r *GormVariantRepository) Create(variant *models.Variant) error {
	return translateError(r.db.Create(variant).Error)
}

// Update 更新规格
func (r *GormVariantRepository) Update(variant *models.Variant) error {
	return translateError(r.db.Omit("Items").Save(variant).Error)
}

// Delete 删除规格并级联删除规格项
func (r *GormVariantRepository) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("variant_id = ?", id).Delete(&models.VariantItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Variant{}, id).Error
	}))
}

// ListItems 获取规格下的全部规格项
func (r *GormVariantRepository) ListItems(variantID uint) ([]models.VariantItem, error) {
	var items []models.VariantItem
	if err := r.db.Where("variant_id = ?", variantID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 根据 ID 获取规格项
func (r *GormVariantRepository) GetItem(id uint) (*models.VariantItem, error) {
	var item models.VariantItem
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// CreateItem 创建规格项
func (r *GormVariantRepository) CreateItem(item *models.VariantItem) error {
	return translateError(r.db.Create(item).Error)
}

// UpdateItem 更新规格项
func (r *GormVariantRepository) UpdateItem(item *models.VariantItem) error {
	return translateError(r.db.Save(item).Error)
}

// DeleteItem 删除规格项
func (r *GormVariantRepository) DeleteItem(id uint) error {
	return translateError(r.db.Delete(&models.VariantItem{}, id).Error)
}
