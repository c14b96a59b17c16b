package models

import (
	"strings"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/constants"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID           uint      `gorm:"primarykey" json:"id"`                                        // 主键
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`                      // 商品名称
	Image        *string   `gorm:"type:varchar(500)" json:"image"`                              // 主图路径
	Description  string    `gorm:"type:text" json:"description"`                                // 富文本描述（原样存储）
	CategoryID   *uint     `gorm:"index" json:"category_id"`                                    // 分类ID（分类删除后置空）
	Price        Money     `gorm:"type:decimal(12,2);default:0" json:"price"`                   // 售价
	RegularPrice Money     `gorm:"type:decimal(12,2);default:0" json:"regular_price"`           // 原价
	Stock        uint      `gorm:"default:0" json:"stock"`                                      // 库存
	Shipping     Money     `gorm:"type:decimal(12,2);default:0" json:"shipping"`                // 运费
	Status       string    `gorm:"type:varchar(50);index" json:"status"`                        // 发布状态（Paid/Processing/Failed）
	Featured     bool      `gorm:"not null;default:false;index" json:"featured"`                // 是否推荐
	VendorID     *uint     `gorm:"index" json:"vendor_id"`                                      // 卖家ID（用户删除后置空）
	SKU          string    `gorm:"column:sku;type:varchar(50);uniqueIndex;not null" json:"sku"` // SKU（唯一）
	Slug         *string   `gorm:"type:varchar(255);index" json:"slug"`                         // slug（首次保存时生成，之后不再变更）
	Date         time.Time `gorm:"not null;index" json:"date"`                                  // 创建时间

	// 关联
	Category  *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"` // 分类
	Vendor    *User     `gorm:"foreignKey:VendorID;constraint:OnDelete:SET NULL" json:"vendor,omitempty"`     // 卖家
	Variants  []Variant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`   // 规格
	Galleries []Gallery `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"gallery,omitempty"`    // 图集
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 首次保存时补齐 SKU、slug、默认图片与创建时间
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	p.AssignIdentifiers()
	if p.Image == nil {
		image := constants.ProductImageDefault
		p.Image = &image
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	return nil
}

// AssignIdentifiers 仅在缺失时生成 SKU 与 slug，已有值保持不变
func (p *Product) AssignIdentifiers() {
	if strings.TrimSpace(p.SKU) == "" {
		p.SKU = NewSKU()
	}
	if p.Slug == nil || strings.TrimSpace(*p.Slug) == "" {
		slug := ProductSlug(p.Name)
		p.Slug = &slug
	}
}

// SlugValue 返回 slug（未设置时为空字符串）
func (p Product) SlugValue() string {
	if p.Slug == nil {
		return ""
	}
	return *p.Slug
}

func (p Product) String() string {
	return p.Name
}
