package models

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/constants"

	"gorm.io/gorm"
)

// Gallery 商品图集
type Gallery struct {
	ID        uint   `gorm:"primarykey" json:"id"`                              // 主键
	ProductID *uint  `gorm:"index" json:"product_id"`                           // 商品ID（商品删除时级联删除）
	Image     string `gorm:"type:varchar(500);not null" json:"image"`           // 图片路径
	GalleryID string `gorm:"type:varchar(10);not null;index" json:"gallery_id"` // 6 位数字编号（不做唯一约束）
}

// TableName 指定表名
func (Gallery) TableName() string {
	return "galleries"
}

// BeforeCreate 补齐默认图片与编号
func (g *Gallery) BeforeCreate(_ *gorm.DB) error {
	if strings.TrimSpace(g.Image) == "" {
		g.Image = constants.GalleryImageDefault
	}
	if strings.TrimSpace(g.GalleryID) == "" {
		g.GalleryID = NewShortID()
	}
	return nil
}
