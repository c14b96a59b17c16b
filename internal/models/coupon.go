package models

import "github.com/elkdev72/ecommerce-prj/internal/constants"

// Coupon 卖家优惠券
type Coupon struct {
	ID       uint   `gorm:"primarykey" json:"id"`                         // 主键
	VendorID *uint  `gorm:"index" json:"vendor_id"`                       // 卖家ID（用户删除后置空）
	Code     string `gorm:"type:varchar(100);not null;index" json:"code"` // 优惠码
	Discount int    `gorm:"not null" json:"discount"`                     // 折扣值（单位由结算逻辑解释）

	Vendor *User `gorm:"foreignKey:VendorID;constraint:OnDelete:SET NULL" json:"vendor,omitempty"` // 卖家
}

// TableName 指定表名
func (Coupon) TableName() string {
	return "coupons"
}

// NewCoupon 创建带默认折扣的优惠券
func NewCoupon(vendorID *uint, code string) Coupon {
	return Coupon{VendorID: vendorID, Code: code, Discount: constants.CouponDiscountDefault}
}

func (c Coupon) String() string {
	return c.Code
}
