package repository

import (
	"errors"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository 商品评价数据访问接口
type ReviewRepository interface {
	List(filter ReviewListFilter) ([]models.Review, int64, error)
	ListByProduct(productID uint, onlyActive bool) ([]models.Review, error)
	ListActive() ([]models.Review, error)
	GetByID(id uint) (*models.Review, error)
	Create(review *models.Review) error
	SetActive(id uint, active bool) error
	Reply(id uint, reply string) error
	AverageRating(productID uint) (float64, int64, error)
	Delete(id uint) error
}

// GormReviewRepository GORM 实现
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓库
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// List 评价列表（按创建时间倒序）
func (r *GormReviewRepository) List(filter ReviewListFilter) ([]models.Review, int64, error) {
	var reviews []models.Review
	query := r.db.Model(&models.Review{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.OnlyActive {
		query = query.Where("active = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("User").Order("date DESC, id DESC").Find(&reviews).Error; err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

// ListByProduct 获取商品评价
func (r *GormReviewRepository) ListByProduct(productID uint, onlyActive bool) ([]models.Review, error) {
	reviews, _, err := r.List(ReviewListFilter{ProductID: &productID, OnlyActive: onlyActive})
	return reviews, err
}

// ListActive 获取全部已展示的评价
func (r *GormReviewRepository) ListActive() ([]models.Review, error) {
	reviews, _, err := r.List(ReviewListFilter{OnlyActive: true})
	return reviews, err
}

// GetByID 根据 ID 获取评价
func (r *GormReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.Preload("User").Preload("Product").First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// Create 创建评价
func (r *GormReviewRepository) Create(review *models.Review) error {
	return translateError(r.db.Omit("User", "Product").Create(review).Error)
}

// SetActive 设置评价是否展示
func (r *GormReviewRepository) SetActive(id uint, active bool) error {
	return translateError(r.db.Model(&models.Review{}).Where("id = ?", id).Update("active", active).Error)
}

// Reply 写入卖家回复
func (r *GormReviewRepository) Reply(id uint, reply string) error {
	return translateError(r.db.Model(&models.Review{}).Where("id = ?", id).Update("reply", reply).Error)
}

// AverageRating 统计商品已展示评价的平均分与数量
func (r *GormReviewRepository) AverageRating(productID uint) (float64, int64, error) {
	var row struct {
		Average float64
		Total   int64
	}
	if err := r.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("product_id = ? AND active = ?", productID, true).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Average, row.Total, nil
}

// Delete 删除评价
func (r *GormReviewRepository) Delete(id uint) error {
	return translateError(r.db.Delete(&models.Review{}, id).Error)
}
