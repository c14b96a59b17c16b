package repository

import (
	"errors"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// CouponRepository 优惠券数据访问接口
type CouponRepository interface {
	ListByVendor(vendorID uint) ([]models.Coupon, error)
	GetByID(id uint) (*models.Coupon, error)
	GetByCode(code string) (*models.Coupon, error)
	ListByIDs(ids []uint) ([]models.Coupon, error)
	Create(coupon *models.Coupon) error
	Update(coupon *models.Coupon) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) CouponRepository
}

// GormCouponRepository GORM 实现
type GormCouponRepository struct {
	db *gorm.DB
}

// NewCouponRepository 创建优惠券仓库
func NewCouponRepository(db *gorm.DB) *GormCouponRepository {
	return &GormCouponRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCouponRepository) WithTx(tx *gorm.DB) CouponRepository {
	if tx == nil {
		return r
	}
	return &GormCouponRepository{db: tx}
}

// ListByVendor 获取卖家的优惠券
func (r *GormCouponRepository) ListByVendor(vendorID uint) ([]models.Coupon, error) {
	var coupons []models.Coupon
	if err := r.db.Where("vendor_id = ?", vendorID).Order("id DESC").Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// GetByID 根据 ID 获取优惠券
func (r *GormCouponRepository) GetByID(id uint) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.First(&coupon, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// GetByCode 根据优惠码获取优惠券（优惠码不唯一时取最早一条）
func (r *GormCouponRepository) GetByCode(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := r.db.Where("code = ?", code).Order("id ASC").First(&coupon).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

// ListByIDs 批量获取优惠券
func (r *GormCouponRepository) ListByIDs(ids []uint) ([]models.Coupon, error) {
	if len(ids) == 0 {
		return []models.Coupon{}, nil
	}
	var coupons []models.Coupon
	if err := r.db.Where("id IN ?", ids).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

// Create 创建优惠券
func (r *GormCouponRepository) Create(coupon *models.Coupon) error {
	return translateError(r.db.Omit("Vendor").Create(coupon).Error)
}

// Update 更新优惠券
func (r *GormCouponRepository) Update(coupon *models.Coupon) error {
	return translateError(r.db.Omit("Vendor").Save(coupon).Error)
}

// Delete 删除优惠券，同时移除订单与订单项上的关联
func (r *GormCouponRepository) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM order_coupons WHERE coupon_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM order_item_coupons WHERE coupon_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Coupon{}, id).Error
	}))
}
