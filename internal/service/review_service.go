package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"
)

// SubmitReviewInput 提交评价输入
type SubmitReviewInput struct {
	UserID    *uint
	ProductID uint    `validate:"required"`
	Review    *string `validate:"omitempty,max=5000"`
	Rating    int     `validate:"rating"`
}

// ProductRating 商品评分汇总（仅统计已展示的评价）
type ProductRating struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

// ReviewService 评价服务
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
}

// NewReviewService 创建评价服务
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
	}
}

// Submit 提交评价，新评价默认不展示
func (s *ReviewService) Submit(input SubmitReviewInput) (*models.Review, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	review := models.Review{
		UserID:    input.UserID,
		ProductID: &product.ID,
		Review:    input.Review,
		Rating:    input.Rating,
	}
	if err := s.reviewRepo.Create(&review); err != nil {
		if repository.IsReferenced(err) {
			return nil, ErrReferenceViolation
		}
		return nil, err
	}
	logger.Infow("review_submitted", "review_id", review.ID, "product_id", product.ID, "rating", review.Rating)
	return &review, nil
}

// Get 获取评价
func (s *ReviewService) Get(id uint) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	return review, nil
}

// Activate 展示评价
func (s *ReviewService) Activate(id uint) (*models.Review, error) {
	return s.setActive(id, true)
}

// Deactivate 隐藏评价
func (s *ReviewService) Deactivate(id uint) (*models.Review, error) {
	return s.setActive(id, false)
}

func (s *ReviewService) setActive(id uint, active bool) (*models.Review, error) {
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if review.Active == active {
		return review, nil
	}
	if err := s.reviewRepo.SetActive(id, active); err != nil {
		return nil, err
	}
	review.Active = active
	logger.Infow("review_visibility_changed", "review_id", id, "active", active)
	return review, nil
}

// Reply 卖家回复评价
func (s *ReviewService) Reply(id uint, reply string) (*models.Review, error) {
	reply = strings.TrimSpace(reply)
	if reply == "" {
		return nil, newValidationError("Reply", ErrInvalidInput)
	}
	review, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Reply(id, reply); err != nil {
		return nil, err
	}
	review.Reply = &reply
	return review, nil
}

// List 评价列表（后台）
func (s *ReviewService) List(filter repository.ReviewListFilter) ([]models.Review, int64, error) {
	return s.reviewRepo.List(filter)
}

// ListActive 全部已展示评价
func (s *ReviewService) ListActive() ([]models.Review, error) {
	return s.reviewRepo.ListActive()
}

// ListByProduct 商品评价；onlyActive 为 true 时仅返回已展示评价
func (s *ReviewService) ListByProduct(productID uint, onlyActive bool) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(productID, onlyActive)
}

// ProductRating 商品平均评分
func (s *ReviewService) ProductRating(productID uint) (ProductRating, error) {
	average, count, err := s.reviewRepo.AverageRating(productID)
	if err != nil {
		return ProductRating{}, err
	}
	return ProductRating{Average: average, Count: count}, nil
}

// Delete 删除评价
func (s *ReviewService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.reviewRepo.Delete(id)
}
