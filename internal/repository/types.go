package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	CategoryID   *uint
	VendorID     *uint
	Status       string
	Search       string
	FeaturedOnly bool
	WithCategory bool
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page        int
	PageSize    int
	CustomerID  *uint
	VendorID    *uint
	OrderStatus string
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page       int
	PageSize   int
	ProductID  *uint
	OnlyActive bool
}
