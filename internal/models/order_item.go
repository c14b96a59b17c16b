package models

import (
	"strings"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/constants"

	"gorm.io/gorm"
)

// OrderItem 订单项（保存与订单相同结构的金额拆分）
type OrderItem struct {
	ID              uint      `gorm:"primarykey" json:"id"`                                       // 主键
	OrderID         uint      `gorm:"column:order_id;index;not null" json:"order_id"`             // 订单主键（订单删除时级联删除）
	OrderStatus     string    `gorm:"type:varchar(100);not null;index" json:"order_status"`       // 履约状态
	ShippingService *string   `gorm:"type:varchar(100)" json:"shipping_service"`                  // 物流服务商
	TrackingID      *string   `gorm:"type:varchar(100)" json:"tracking_id"`                       // 物流单号
	ProductID       uint      `gorm:"index;not null" json:"product_id"`                           // 商品ID（商品删除时级联删除）
	Qty             int       `gorm:"not null;default:0" json:"qty"`                              // 数量
	Color           *string   `gorm:"type:varchar(100)" json:"color"`                             // 颜色
	Size            *string   `gorm:"type:varchar(100)" json:"size"`                              // 尺码
	Price           Money     `gorm:"type:decimal(12,2);not null;default:0" json:"price"`         // 单价
	SubTotal        Money     `gorm:"type:decimal(12,2);not null;default:0" json:"sub_total"`     // 小计
	Shipping        Money     `gorm:"type:decimal(12,2);not null;default:0" json:"shipping"`      // 运费
	Tax             Money     `gorm:"type:decimal(12,2);not null;default:0" json:"tax"`           // 税费
	Total           Money     `gorm:"type:decimal(12,2);not null;default:0" json:"total"`         // 合计
	InitialTotal    Money     `gorm:"type:decimal(12,2);not null;default:0" json:"initial_total"` // 优惠前总额
	Saved           Money     `gorm:"type:decimal(12,2);default:0" json:"saved"`                  // 优惠金额
	AppliedCoupon   bool      `gorm:"not null;default:false" json:"applied_coupon"`               // 是否已使用优惠券
	ItemID          string    `gorm:"type:varchar(25);not null;index" json:"item_id"`             // 6 位数字订单项编号
	VendorID        *uint     `gorm:"index" json:"vendor_id"`                                     // 卖家ID（用户删除后置空）
	Date            time.Time `gorm:"not null;index" json:"date"`                                 // 创建时间

	Order   *Order   `gorm:"-" json:"-"`                                                                // 所属订单（由仓库按 order_id 加载）
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"` // 商品
	Vendor  *User    `gorm:"foreignKey:VendorID;constraint:OnDelete:SET NULL" json:"vendor,omitempty"`  // 卖家
	Coupons []Coupon `gorm:"many2many:order_item_coupons;" json:"coupons,omitempty"`                    // 使用的优惠券
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate 补齐订单项编号、默认状态与创建时间
func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(i.ItemID) == "" {
		i.ItemID = NewShortID()
	}
	if strings.TrimSpace(i.OrderStatus) == "" {
		i.OrderStatus = constants.OrderStatusPending
	}
	if i.Date.IsZero() {
		i.Date = time.Now()
	}
	return nil
}

// OrderNumber 返回所属订单的 6 位订单号，未加载 Order 时为空
func (i OrderItem) OrderNumber() string {
	if i.Order == nil {
		return ""
	}
	return i.Order.OrderID
}

func (i OrderItem) String() string {
	return i.ItemID
}
