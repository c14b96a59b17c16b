package repository

import (
	"errors"
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// DefaultIdentifierAttempts 生成 SKU/slug 的默认重试次数
const DefaultIdentifierAttempts = 5

// ProductRepository 商品数据访问接口
type ProductRepository interface {
	List(filter ProductListFilter) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetBySKU(sku string) (*models.Product, error)
	ListByIDs(ids []uint) ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id uint) error
	CountBySlug(slug string, excludeID *uint) (int64, error)
	CountBySKU(sku string, excludeID *uint) (int64, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) ProductRepository
}

// GormProductRepository GORM 实现
type GormProductRepository struct {
	db       *gorm.DB
	attempts int
}

// NewProductRepository 创建商品仓库
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db, attempts: DefaultIdentifierAttempts}
}

// SetIdentifierAttempts 设置 SKU/slug 冲突时的最大尝试次数
func (r *GormProductRepository) SetIdentifierAttempts(attempts int) {
	if attempts <= 0 {
		attempts = DefaultIdentifierAttempts
	}
	r.attempts = attempts
}

// WithTx 绑定事务
func (r *GormProductRepository) WithTx(tx *gorm.DB) ProductRepository {
	if tx == nil {
		return r
	}
	return &GormProductRepository{db: tx, attempts: r.attempts}
}

// Transaction 执行事务
func (r *GormProductRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func (r *GormProductRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Category").
		Preload("Variants", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Variants.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Galleries", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		})
}

// List 商品列表（按 ID 倒序）
func (r *GormProductRepository) List(filter ProductListFilter) ([]models.Product, int64, error) {
	var products []models.Product

	query := r.db.Model(&models.Product{})
	if filter.WithCategory {
		query = query.Preload("Category")
	}
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("status = ?", status)
	}
	if filter.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		condition, argCount := buildLikeCondition(r.db, []string{"name", "sku", "slug"})
		query = query.Where(condition, repeatLikeArgs(like, argCount)...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id DESC").Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetByID 根据 ID 获取商品（含分类、规格与图集）
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.withDetails(r.db).First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug 根据 slug 获取商品，slug 不唯一时返回最早创建的一条
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.withDetails(r.db).Where("slug = ?", slug).Order("id ASC").First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySKU 根据 SKU 获取商品
func (r *GormProductRepository) GetBySKU(sku string) (*models.Product, error) {
	var product models.Product
	if err := r.withDetails(r.db).Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListByIDs 批量获取商品
func (r *GormProductRepository) ListByIDs(ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}
	var products []models.Product
	if err := r.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create 创建商品。
// 自动生成的 SKU 冲突时重新生成并重试；调用方显式指定的 SKU 冲突直接返回 ErrDuplicate。
// 自动生成的 slug 尽量避开已有值，但不做唯一约束。
func (r *GormProductRepository) Create(product *models.Product) error {
	if product == nil {
		return nil
	}
	skuGenerated := strings.TrimSpace(product.SKU) == ""
	slugGenerated := product.Slug == nil || strings.TrimSpace(*product.Slug) == ""

	var lastErr error
	for attempt := 0; attempt < r.attempts; attempt++ {
		if skuGenerated {
			product.SKU = ""
		}
		if slugGenerated {
			product.Slug = nil
		}
		product.AssignIdentifiers()

		if slugGenerated && attempt < r.attempts-1 {
			count, err := r.CountBySlug(*product.Slug, nil)
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}
		}
		if skuGenerated {
			count, err := r.CountBySKU(product.SKU, nil)
			if err != nil {
				return err
			}
			if count > 0 {
				lastErr = ErrDuplicate
				continue
			}
		}

		err := translateError(r.db.Create(product).Error)
		if err == nil {
			return nil
		}
		if !skuGenerated || !IsDuplicate(err) {
			return err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = ErrDuplicate
	}
	return lastErr
}

// Update 更新商品（不会重新生成 SKU 与 slug）
func (r *GormProductRepository) Update(product *models.Product) error {
	return translateError(r.db.Omit("Category", "Vendor", "Variants", "Galleries").Save(product).Error)
}

// Delete 删除商品：级联删除规格、规格项、图集、购物车行与订单项，评价保留并清空商品引用
func (r *GormProductRepository) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		variantIDs := tx.Model(&models.Variant{}).Select("id").Where("product_id = ?", id)
		if err := tx.Where("variant_id IN (?)", variantIDs).Delete(&models.VariantItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Variant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Gallery{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		itemIDs := tx.Model(&models.OrderItem{}).Select("id").Where("product_id = ?", id)
		if err := tx.Exec("DELETE FROM order_item_coupons WHERE order_item_id IN (?)", itemIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Review{}).Where("product_id = ?", id).Update("product_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	}))
}

// CountBySlug 统计 slug 数量
func (r *GormProductRepository) CountBySlug(slug string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("slug = ?", slug)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySKU 统计 SKU 数量
func (r *GormProductRepository) CountBySKU(sku string, excludeID *uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Product{}).Where("sku = ?", sku)
	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
