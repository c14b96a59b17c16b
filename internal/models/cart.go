package models

import "time"

// Cart 购物车行（匿名会话通过 CartID 关联）
type Cart struct {
	ID        uint      `gorm:"primarykey" json:"id"`                          // 主键
	ProductID uint      `gorm:"index;not null" json:"product_id"`              // 商品ID（商品删除时级联删除）
	UserID    *uint     `gorm:"index" json:"user_id"`                          // 用户ID（用户删除后置空）
	Qty       uint      `gorm:"default:0" json:"qty"`                          // 数量
	Price     Money     `gorm:"type:decimal(12,2);default:0" json:"price"`     // 单价
	SubTotal  Money     `gorm:"type:decimal(12,2);default:0" json:"sub_total"` // 小计
	Shipping  Money     `gorm:"type:decimal(12,2);default:0" json:"shipping"`  // 运费
	Tax       Money     `gorm:"type:decimal(12,2);default:0" json:"tax"`       // 税费
	Total     Money     `gorm:"type:decimal(12,2);default:0" json:"total"`     // 合计
	Size      *string   `gorm:"type:varchar(100)" json:"size"`                 // 尺码
	Color     *string   `gorm:"type:varchar(100)" json:"color"`                // 颜色
	CartID    *string   `gorm:"type:varchar(1000);index" json:"cart_id"`       // 会话购物车标识
	Date      time.Time `gorm:"autoCreateTime;<-:create;index" json:"date"`    // 创建时间（仅插入时写入）

	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product,omitempty"` // 商品
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`      // 用户
}

// TableName 指定表名
func (Cart) TableName() string {
	return "carts"
}

func (c Cart) String() string {
	cartID := ""
	if c.CartID != nil {
		cartID = *c.CartID
	}
	if c.Product == nil {
		return cartID
	}
	return cartID + " - " + c.Product.Name
}
