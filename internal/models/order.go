package models

import (
	"strings"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/constants"

	"gorm.io/gorm"
)

// Order 订单表（金额字段为结算时写入的快照，不在读取时重新计算）
type Order struct {
	ID            uint      `gorm:"primarykey" json:"id"`                                            // 主键
	CustomerID    *uint     `gorm:"index" json:"customer_id"`                                        // 买家ID（用户删除后置空）
	SubTotal      Money     `gorm:"type:decimal(12,2);not null;default:0" json:"sub_total"`          // 小计
	Shipping      Money     `gorm:"type:decimal(12,2);not null;default:0" json:"shipping"`           // 运费
	Tax           Money     `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`                // 税费
	ServiceFee    Money     `gorm:"type:decimal(12,2);not null;default:0" json:"service_fee"`        // 服务费
	Total         Money     `gorm:"type:decimal(12,2);not null;default:0" json:"total"`              // 实付金额
	PaymentStatus string    `gorm:"type:varchar(100);not null;index" json:"payment_status"`          // 支付状态
	PaymentMethod *string   `gorm:"type:varchar(100)" json:"payment_method"`                         // 支付方式
	OrderStatus   string    `gorm:"type:varchar(100);not null;index" json:"order_status"`            // 履约状态
	InitialTotal  Money     `gorm:"type:decimal(12,2);not null;default:0" json:"initial_total"`      // 优惠前总额
	Saved         Money     `gorm:"type:decimal(12,2);default:0" json:"saved"`                       // 优惠金额
	OrderID       string    `gorm:"column:order_id;type:varchar(25);not null;index" json:"order_id"` // 6 位数字订单号
	PaymentID     *string   `gorm:"type:varchar(1000)" json:"payment_id"`                            // 第三方支付单号
	Date          time.Time `gorm:"not null;index" json:"date"`                                      // 下单时间（可修改）

	Customer *User       `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL" json:"customer,omitempty"` // 买家
	Vendors  []User      `gorm:"many2many:order_vendors;" json:"vendors,omitempty"`                            // 涉及的卖家
	Coupons  []Coupon    `gorm:"many2many:order_coupons;" json:"coupons,omitempty"`                            // 使用的优惠券
	Items    []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`        // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 补齐订单号、默认状态与下单时间
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(o.OrderID) == "" {
		o.OrderID = NewShortID()
	}
	if strings.TrimSpace(o.OrderStatus) == "" {
		o.OrderStatus = constants.OrderStatusPending
	}
	if strings.TrimSpace(o.PaymentStatus) == "" {
		o.PaymentStatus = constants.PaymentStatusDefault
	}
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	return nil
}

func (o Order) String() string {
	return o.OrderID
}
