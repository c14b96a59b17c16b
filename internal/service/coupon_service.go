package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"

	"github.com/shopspring/decimal"
)

// CreateCouponInput 创建/更新优惠券输入，Discount 为百分比
type CreateCouponInput struct {
	VendorID *uint
	Code     string `validate:"required,max=100"`
	Discount *int   `validate:"omitempty,min=0,max=100"`
}

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	userRepo   repository.UserRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, userRepo repository.UserRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		userRepo:   userRepo,
	}
}

// Create 创建优惠券，未指定折扣时使用默认值
func (s *CouponService) Create(input CreateCouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if err := s.checkVendor(input.VendorID); err != nil {
		return nil, err
	}
	coupon := models.NewCoupon(input.VendorID, strings.TrimSpace(input.Code))
	if input.Discount != nil {
		coupon.Discount = *input.Discount
	}
	if err := s.couponRepo.Create(&coupon); err != nil {
		if repository.IsReferenced(err) {
			return nil, ErrReferenceViolation
		}
		return nil, err
	}
	logger.Infow("coupon_created", "coupon_id", coupon.ID, "code", coupon.Code, "discount", coupon.Discount)
	return &coupon, nil
}

// Update 更新优惠券
func (s *CouponService) Update(id uint, input CreateCouponInput) (*models.Coupon, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	coupon, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.checkVendor(input.VendorID); err != nil {
		return nil, err
	}
	coupon.VendorID = input.VendorID
	coupon.Code = strings.TrimSpace(input.Code)
	if input.Discount != nil {
		coupon.Discount = *input.Discount
	}
	coupon.Vendor = nil
	if err := s.couponRepo.Update(coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Get 获取优惠券
func (s *CouponService) Get(id uint) (*models.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// GetByCode 根据优惠码获取优惠券
func (s *CouponService) GetByCode(code string) (*models.Coupon, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return nil, newValidationError("Code", ErrInvalidInput)
	}
	coupon, err := s.couponRepo.GetByCode(trimmed)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// ListByVendor 获取卖家的优惠券
func (s *CouponService) ListByVendor(vendorID uint) ([]models.Coupon, error) {
	return s.couponRepo.ListByVendor(vendorID)
}

// Delete 删除优惠券（同时移除订单与订单项上的使用记录）
func (s *CouponService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.couponRepo.Delete(id)
}

func (s *CouponService) checkVendor(vendorID *uint) error {
	if vendorID == nil || s.userRepo == nil {
		return nil
	}
	vendor, err := s.userRepo.GetByID(*vendorID)
	if err != nil {
		return err
	}
	if vendor == nil {
		return ErrUserNotFound
	}
	return nil
}

// couponApplies 判断优惠券是否适用于订单项：卖家一致且订单项未使用过优惠券
func couponApplies(coupon *models.Coupon, item models.OrderItem) bool {
	if coupon == nil || item.AppliedCoupon || item.OrderStatus == constants.OrderStatusCancelled {
		return false
	}
	if coupon.VendorID == nil || item.VendorID == nil {
		return false
	}
	return *coupon.VendorID == *item.VendorID
}

// calculateCouponDiscount 按百分比计算商品小计的折扣金额，不超过小计；运费与税费不参与折扣
func calculateCouponDiscount(coupon *models.Coupon, amount models.Money) models.Money {
	if coupon == nil || coupon.Discount <= 0 || !amount.Decimal.IsPositive() {
		return models.Money{}
	}
	percent := decimal.NewFromInt(int64(coupon.Discount)).Div(decimal.NewFromInt(100))
	discount := amount.Decimal.Mul(percent)
	if discount.GreaterThan(amount.Decimal) {
		discount = amount.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}
