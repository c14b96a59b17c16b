package models

import "time"

// User 账号表（买家、卖家共用，仅作为引用对象）
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`                                   // 主键
	Username  string    `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"` // 用户名
	Email     string    `gorm:"type:varchar(254);index" json:"email"`                   // 邮箱
	CreatedAt time.Time `gorm:"index" json:"created_at"`                                // 创建时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

func (u User) String() string {
	return u.Username
}
