package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category 商品分类表
type Category struct {
	ID    uint    `gorm:"primarykey" json:"id"`                               // 主键
	Title string  `gorm:"type:varchar(255);not null;index" json:"title"`      // 分类名称
	Image *string `gorm:"type:varchar(500)" json:"image"`                     // 分类图片路径
	Slug  string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"slug"` // 唯一标识
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate 未指定 slug 时按标题生成
func (c *Category) BeforeCreate(_ *gorm.DB) error {
	c.Slug = strings.TrimSpace(c.Slug)
	if c.Slug == "" {
		c.Slug = Slugify(c.Title)
	}
	return nil
}

func (c Category) String() string {
	return c.Title
}
