package repository

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate 唯一约束冲突（分类 slug、商品 SKU 等）
	ErrDuplicate = errors.New("duplicate value violates unique constraint")
	// ErrReferenced 外键约束冲突（被引用的行无法删除或引用不存在）
	ErrReferenced = errors.New("row is still referenced or reference does not exist")
)

// translateError 将驱动层约束错误转换为仓库层错误，其他错误原样返回
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicate) || errors.Is(err, ErrReferenced) {
		return err
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
		return errors.Join(ErrDuplicate, err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyViolation(err) {
		return errors.Join(ErrReferenced, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}

func isForeignKeyViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "foreign key")
}

// IsDuplicate 判断是否为唯一约束冲突
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsReferenced 判断是否为外键约束冲突
func IsReferenced(err error) bool {
	return errors.Is(err, ErrReferenced)
}
