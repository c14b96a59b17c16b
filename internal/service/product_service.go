package service

import (
	"context"
	"strings"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/cache"
	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"

	"gorm.io/gorm"
)

// ProductService 商品业务服务（含规格与图集）
type ProductService struct {
	repo         repository.ProductRepository
	variantRepo  repository.VariantRepository
	galleryRepo  repository.GalleryRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	cacheTTL     time.Duration
}

// ProductServiceOptions 商品服务依赖
type ProductServiceOptions struct {
	ProductRepo  repository.ProductRepository
	VariantRepo  repository.VariantRepository
	GalleryRepo  repository.GalleryRepository
	CategoryRepo repository.CategoryRepository
	UserRepo     repository.UserRepository
	CacheTTL     time.Duration
}

// NewProductService 创建商品服务
func NewProductService(opts ProductServiceOptions) *ProductService {
	return &ProductService{
		repo:         opts.ProductRepo,
		variantRepo:  opts.VariantRepo,
		galleryRepo:  opts.GalleryRepo,
		categoryRepo: opts.CategoryRepo,
		userRepo:     opts.UserRepo,
		cacheTTL:     opts.CacheTTL,
	}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	Name         string  `validate:"required,max=100"`
	Image        *string `validate:"omitempty,max=500"`
	Description  string
	CategoryID   *uint
	VendorID     *uint
	Price        models.Money `validate:"money"`
	RegularPrice models.Money `validate:"money"`
	Shipping     models.Money `validate:"money"`
	Stock        uint
	Status       string `validate:"omitempty,status"`
	Featured     bool
	SKU          string `validate:"omitempty,max=50"`
}

// CreateVariantInput 创建规格输入
type CreateVariantInput struct {
	Name  *string            `validate:"omitempty,max=1000"`
	Items []VariantItemInput `validate:"dive"`
}

// VariantItemInput 规格项输入
type VariantItemInput struct {
	Title   *string `validate:"omitempty,max=1000"`
	Content *string `validate:"omitempty,max=1000"`
}

// List 商品列表
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.repo.List(filter)
}

// Get 获取商品详情
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// GetBySlug 根据 slug 获取商品详情，优先读取缓存
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*models.Product, error) {
	slug = strings.TrimSpace(slug)
	if cached, hit, err := cache.GetProductBySlug(ctx, slug); err != nil {
		logger.Warnw("catalog_product_cache_get_failed", "slug", slug, "error", err)
	} else if hit {
		return cached, nil
	}

	product, err := s.repo.GetBySlug(slug)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if err := cache.SetProductBySlug(ctx, product, s.cacheTTL); err != nil {
		logger.Warnw("catalog_product_cache_set_failed", "slug", slug, "error", err)
	}
	return product, nil
}

// GetBySKU 根据 SKU 获取商品
func (s *ProductService) GetBySKU(sku string) (*models.Product, error) {
	product, err := s.repo.GetBySKU(strings.TrimSpace(sku))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// Create 创建商品，SKU 与 slug 未指定时自动生成
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}
	sku := strings.TrimSpace(input.SKU)
	if sku != "" {
		count, err := s.repo.CountBySKU(sku, nil)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
	}

	product := models.Product{SKU: sku}
	applyProductInput(&product, input)
	if err := s.repo.Create(&product); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrSKUExists
		}
		return nil, err
	}
	logger.Infow("catalog_product_created",
		"product_id", product.ID,
		"sku", product.SKU,
		"slug", product.SlugValue(),
	)
	return &product, nil
}

// Update 更新商品，slug 保持首次生成的值
func (s *ProductService) Update(ctx context.Context, id uint, input CreateProductInput) (*models.Product, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	product, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(input); err != nil {
		return nil, err
	}
	if sku := strings.TrimSpace(input.SKU); sku != "" && sku != product.SKU {
		count, err := s.repo.CountBySKU(sku, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrSKUExists
		}
		product.SKU = sku
	}

	applyProductInput(product, input)
	if err := s.repo.Update(product); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrSKUExists
		}
		return nil, err
	}
	s.invalidate(ctx, product.SlugValue())
	return s.Get(product.ID)
}

// Delete 删除商品（级联删除规格、图集、购物车行与订单项）
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	product, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		if repository.IsReferenced(err) {
			return ErrReferenceViolation
		}
		return err
	}
	s.invalidate(ctx, product.SlugValue())
	logger.Infow("catalog_product_deleted", "product_id", id, "sku", product.SKU)
	return nil
}

// ListVariants 获取商品规格
func (s *ProductService) ListVariants(productID uint) ([]models.Variant, error) {
	if _, err := s.Get(productID); err != nil {
		return nil, err
	}
	return s.variantRepo.ListByProduct(productID)
}

// AddVariant 为商品添加规格及规格项
func (s *ProductService) AddVariant(ctx context.Context, productID uint, input CreateVariantInput) (*models.Variant, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}

	variant := models.Variant{ProductID: &product.ID, Name: input.Name}
	err = s.repo.Transaction(func(tx *gorm.DB) error {
		variantRepo := s.variantRepo.WithTx(tx)
		if err := variantRepo.Create(&variant); err != nil {
			return err
		}
		for _, item := range input.Items {
			row := models.VariantItem{VariantID: variant.ID, Title: item.Title, Content: item.Content}
			if err := variantRepo.CreateItem(&row); err != nil {
				return err
			}
			variant.Items = append(variant.Items, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.SlugValue())
	return &variant, nil
}

// ListVariantItems 获取规格下的规格项
func (s *ProductService) ListVariantItems(variantID uint) ([]models.VariantItem, error) {
	if _, err := s.getVariant(variantID); err != nil {
		return nil, err
	}
	return s.variantRepo.ListItems(variantID)
}

// AddVariantItem 添加规格项
func (s *ProductService) AddVariantItem(ctx context.Context, variantID uint, input VariantItemInput) (*models.VariantItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	variant, err := s.getVariant(variantID)
	if err != nil {
		return nil, err
	}
	item := models.VariantItem{VariantID: variant.ID, Title: input.Title, Content: input.Content}
	if err := s.variantRepo.CreateItem(&item); err != nil {
		return nil, err
	}
	s.invalidateByProductID(ctx, variant.ProductID)
	return &item, nil
}

// DeleteVariant 删除规格（级联删除规格项）
func (s *ProductService) DeleteVariant(ctx context.Context, variantID uint) error {
	variant, err := s.getVariant(variantID)
	if err != nil {
		return err
	}
	if err := s.variantRepo.Delete(variantID); err != nil {
		return err
	}
	s.invalidateByProductID(ctx, variant.ProductID)
	return nil
}

// DeleteVariantItem 删除规格项
func (s *ProductService) DeleteVariantItem(ctx context.Context, itemID uint) error {
	item, err := s.variantRepo.GetItem(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrVariantNotFound
	}
	if err := s.variantRepo.DeleteItem(itemID); err != nil {
		return err
	}
	if variant, err := s.variantRepo.GetByID(item.VariantID); err == nil && variant != nil {
		s.invalidateByProductID(ctx, variant.ProductID)
	}
	return nil
}

// ListGallery 获取商品图集
func (s *ProductService) ListGallery(productID uint) ([]models.Gallery, error) {
	if _, err := s.Get(productID); err != nil {
		return nil, err
	}
	return s.galleryRepo.ListByProduct(productID)
}

// AddGallery 添加商品图集，image 为空时使用默认图片
func (s *ProductService) AddGallery(ctx context.Context, productID uint, image string) (*models.Gallery, error) {
	product, err := s.Get(productID)
	if err != nil {
		return nil, err
	}
	gallery := models.Gallery{ProductID: &product.ID, Image: strings.TrimSpace(image)}
	if err := s.galleryRepo.Create(&gallery); err != nil {
		return nil, err
	}
	s.invalidate(ctx, product.SlugValue())
	return &gallery, nil
}

// DeleteGallery 删除商品图集
func (s *ProductService) DeleteGallery(ctx context.Context, galleryID uint) error {
	gallery, err := s.galleryRepo.GetByID(galleryID)
	if err != nil {
		return err
	}
	if gallery == nil {
		return ErrGalleryNotFound
	}
	if err := s.galleryRepo.Delete(galleryID); err != nil {
		return err
	}
	s.invalidateByProductID(ctx, gallery.ProductID)
	return nil
}

func (s *ProductService) getVariant(id uint) (*models.Variant, error) {
	variant, err := s.variantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	return variant, nil
}

func (s *ProductService) checkReferences(input CreateProductInput) error {
	if input.CategoryID != nil && s.categoryRepo != nil {
		category, err := s.categoryRepo.GetByID(*input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryNotFound
		}
	}
	if input.VendorID != nil && s.userRepo != nil {
		vendor, err := s.userRepo.GetByID(*input.VendorID)
		if err != nil {
			return err
		}
		if vendor == nil {
			return ErrUserNotFound
		}
	}
	return nil
}

func (s *ProductService) invalidate(ctx context.Context, slugs ...string) {
	if err := cache.InvalidateProduct(ctx, slugs...); err != nil {
		logger.Warnw("catalog_product_cache_invalidate_failed", "slugs", slugs, "error", err)
	}
}

func (s *ProductService) invalidateByProductID(ctx context.Context, productID *uint) {
	if productID == nil {
		return
	}
	product, err := s.repo.GetByID(*productID)
	if err != nil || product == nil {
		return
	}
	s.invalidate(ctx, product.SlugValue())
}

func applyProductInput(product *models.Product, input CreateProductInput) {
	product.Name = strings.TrimSpace(input.Name)
	if input.Image != nil {
		product.Image = input.Image
	}
	product.Description = input.Description
	product.CategoryID = input.CategoryID
	product.VendorID = input.VendorID
	product.Price = input.Price
	product.RegularPrice = input.RegularPrice
	product.Shipping = input.Shipping
	product.Stock = input.Stock
	product.Status = strings.TrimSpace(input.Status)
	if product.Status == "" {
		product.Status = constants.StatusProcessing
	}
	product.Featured = input.Featured
}
