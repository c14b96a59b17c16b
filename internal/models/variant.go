package models

// Variant 商品规格（如尺码、颜色）
type Variant struct {
	ID        uint    `gorm:"primarykey" json:"id"`           // 主键
	ProductID *uint   `gorm:"index" json:"product_id"`        // 商品ID（商品删除时级联删除）
	Name      *string `gorm:"type:varchar(1000)" json:"name"` // 规格名称

	Items []VariantItem `gorm:"foreignKey:VariantID;constraint:OnDelete:CASCADE" json:"items,omitempty"` // 规格项
}

// TableName 指定表名
func (Variant) TableName() string {
	return "variants"
}

func (v Variant) String() string {
	if v.Name == nil {
		return ""
	}
	return *v.Name
}

// VariantItem 规格项
type VariantItem struct {
	ID        uint    `gorm:"primarykey" json:"id"`              // 主键
	VariantID uint    `gorm:"index;not null" json:"variant_id"`  // 规格ID
	Title     *string `gorm:"type:varchar(1000)" json:"title"`   // 标题
	Content   *string `gorm:"type:varchar(1000)" json:"content"` // 内容
}

// TableName 指定表名
func (VariantItem) TableName() string {
	return "variant_items"
}
