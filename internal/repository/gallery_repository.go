package repository

import (
	"errors"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// GalleryRepository 商品图集数据访问接口
type GalleryRepository interface {
	ListByProduct(productID uint) ([]models.Gallery, error)
	GetByID(id uint) (*models.Gallery, error)
	Create(gallery *models.Gallery) error
	Delete(id uint) error
}

// GormGalleryRepository GORM 实现
type GormGalleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository 创建图集仓库
func NewGalleryRepository(db *gorm.DB) *GormGalleryRepository {
	return &GormGalleryRepository{db: db}
}

// ListByProduct 获取商品图集
func (r *GormGalleryRepository) ListByProduct(productID uint) ([]models.Gallery, error) {
	var galleries []models.Gallery
	if err := r.db.Where("product_id = ?", productID).Order("id ASC").Find(&galleries).Error; err != nil {
		return nil, err
	}
	return galleries, nil
}

// GetByID 根据 ID 获取图集
func (r *GormGalleryRepository) GetByID(id uint) (*models.Gallery, error) {
	var gallery models.Gallery
	if err := r.db.First(&gallery, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &gallery, nil
}

// Create 创建图集
func (r *GormGalleryRepository) Create(gallery *models.Gallery) error {
	return translateError(r.db.Create(gallery).Error)
}

// Delete 删除图集
func (r *GormGalleryRepository) Delete(id uint) error {
	return translateError(r.db.Delete(&models.Gallery{}, id).Error)
}
