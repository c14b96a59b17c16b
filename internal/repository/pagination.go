package repository

import "gorm.io/gorm"

// MaxPageSize 单页最大条数
const MaxPageSize = 100

// pageWindow 把页码与页大小换算为 limit/offset；pageSize<=0 表示不分页
func pageWindow(page, pageSize int) (limit, offset int, paged bool) {
	if pageSize <= 0 {
		return 0, 0, false
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	if page < 1 {
		page = 1
	}
	return pageSize, (page - 1) * pageSize, true
}

func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	limit, offset, paged := pageWindow(page, pageSize)
	if query == nil || !paged {
		return query
	}
	return query.Limit(limit).Offset(offset)
}
