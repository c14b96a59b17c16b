package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"
)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建/更新分类输入
type CreateCategoryInput struct {
	Title string  `validate:"required,max=255"`
	Image *string `validate:"omitempty,max=500"`
	Slug  string  `validate:"omitempty,max=255"`
}

// List 获取分类列表（按标题升序）
func (s *CategoryService) List() ([]models.Category, error) {
	return s.repo.List()
}

// Get 获取分类
func (s *CategoryService) Get(id uint) (*models.Category, error) {
	category, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// GetBySlug 根据 slug 获取分类
func (s *CategoryService) GetBySlug(slug string) (*models.Category, error) {
	category, err := s.repo.GetBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return category, nil
}

// Create 创建分类
func (s *CategoryService) Create(input CreateCategoryInput) (*models.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	slug := resolveCategorySlug(input)
	count, err := s.repo.CountBySlug(slug, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Title: strings.TrimSpace(input.Title),
		Image: input.Image,
		Slug:  slug,
	}
	if err := s.repo.Create(&category); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	logger.Infow("catalog_category_created", "category_id", category.ID, "slug", category.Slug)
	return &category, nil
}

// Update 更新分类
func (s *CategoryService) Update(id uint, input CreateCategoryInput) (*models.Category, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	slug := resolveCategorySlug(input)
	count, err := s.repo.CountBySlug(slug, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category.Title = strings.TrimSpace(input.Title)
	category.Image = input.Image
	category.Slug = slug

	if err := s.repo.Update(category); err != nil {
		if repository.IsDuplicate(err) {
			return nil, ErrSlugExists
		}
		return nil, err
	}
	return category, nil
}

// Delete 删除分类，分类下的商品保留并清空分类
func (s *CategoryService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	count, err := s.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	logger.Infow("catalog_category_deleted", "category_id", id, "detached_products", count)
	return nil
}

func resolveCategorySlug(input CreateCategoryInput) string {
	if slug := strings.TrimSpace(input.Slug); slug != "" {
		return slug
	}
	return models.Slugify(input.Title)
}
