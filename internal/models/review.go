package models

import (
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/constants"
)

// Review 商品评价（用户或商品删除后保留评价并置空引用）
type Review struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	UserID    *uint     `gorm:"index" json:"user_id"`                       // 用户ID
	ProductID *uint     `gorm:"index" json:"product_id"`                    // 商品ID
	Review    *string   `gorm:"type:text" json:"review"`                    // 评价内容
	Reply     *string   `gorm:"type:text" json:"reply"`                     // 卖家回复
	Rating    int       `gorm:"not null" json:"rating"`                     // 评分 1-5
	Active    bool      `gorm:"not null;default:false;index" json:"active"` // 是否展示
	Date      time.Time `gorm:"autoCreateTime;<-:create;index" json:"date"` // 创建时间（仅插入时写入）

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:SET NULL" json:"user,omitempty"`       // 用户
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"product,omitempty"` // 商品
}

// TableName 指定表名
func (Review) TableName() string {
	return "reviews"
}

// RatingLabel 评分星级文案
func (r Review) RatingLabel() string {
	return constants.RatingLabel(r.Rating)
}

func (r Review) String() string {
	username := ""
	if r.User != nil {
		username = r.User.Username
	}
	productName := ""
	if r.Product != nil {
		productName = r.Product.Name
	}
	return username + " review on " + productName
}
