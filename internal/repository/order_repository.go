package repository

import (
	"errors"
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, items []models.OrderItem) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ListItems(orderID uint) ([]models.OrderItem, error)
	ListItemsByVendor(vendorID uint) ([]models.OrderItem, error)
	GetItem(id uint) (*models.OrderItem, error)
	UpdateStatus(id uint, status string, updates map[string]interface{}) error
	UpdateItem(item *models.OrderItem) error
	AttachCoupons(orderID uint, couponIDs []uint) error
	AttachItemCoupons(itemID uint, couponIDs []uint) error
	AttachVendors(orderID uint, vendorIDs []uint) error
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Transaction 执行事务
func (r *GormOrderRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

func orderItemsNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("date DESC, id DESC")
}

func (r *GormOrderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", orderItemsNewestFirst).
		Preload("Items.Coupons").
		Preload("Customer").
		Preload("Vendors").
		Preload("Coupons")
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(order *models.Order, items []models.OrderItem) error {
	if order == nil {
		return nil
	}
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Customer", "Vendors", "Coupons", "Items").Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Omit("Product", "Vendor", "Coupons").Create(&items).Error; err != nil {
				return err
			}
		}
		return nil
	}))
}

// GetByID 根据 ID 获取订单
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByOrderNumber 根据 6 位订单号获取订单（订单号不唯一时取最早一条）
func (r *GormOrderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	if err := r.withDetails(r.db).Where("order_id = ?", strings.TrimSpace(orderNumber)).Order("id ASC").First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List 订单列表（按下单时间倒序）
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	var orders []models.Order
	query := r.db.Model(&models.Order{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.VendorID != nil {
		query = query.Where("id IN (?)", r.db.Table("order_vendors").Select("order_id").Where("user_id = ?", *filter.VendorID))
	}
	if status := strings.TrimSpace(filter.OrderStatus); status != "" {
		query = query.Where("order_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Preload("Items", orderItemsNewestFirst).Order("date DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ListItems 获取订单下的订单项（按创建时间倒序）
func (r *GormOrderRepository) ListItems(orderID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := orderItemsNewestFirst(r.db.Where("order_id = ?", orderID)).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListItemsByVendor 获取卖家的订单项（按创建时间倒序）
func (r *GormOrderRepository) ListItemsByVendor(vendorID uint) ([]models.OrderItem, error) {
	var items []models.OrderItem
	if err := orderItemsNewestFirst(r.db.Preload("Product").Where("vendor_id = ?", vendorID)).Find(&items).Error; err != nil {
		return nil, err
	}
	if err := r.loadItemOrders(items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetItem 根据 ID 获取订单项（含所属订单）
func (r *GormOrderRepository) GetItem(id uint) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := r.db.Preload("Coupons").First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	items := []models.OrderItem{item}
	if err := r.loadItemOrders(items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string, updates map[string]interface{}) error {
	if updates == nil {
		updates = map[string]interface{}{}
	}
	updates["order_status"] = status
	return translateError(r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error)
}

// UpdateItem 更新订单项
func (r *GormOrderRepository) UpdateItem(item *models.OrderItem) error {
	return translateError(r.db.Omit("Product", "Vendor", "Coupons").Save(item).Error)
}

// AttachCoupons 关联订单使用的优惠券
func (r *GormOrderRepository) AttachCoupons(orderID uint, couponIDs []uint) error {
	coupons, err := r.couponsByIDs(couponIDs)
	if err != nil || len(coupons) == 0 {
		return err
	}
	return translateError(r.db.Model(&models.Order{ID: orderID}).Association("Coupons").Append(&coupons))
}

// AttachItemCoupons 关联订单项使用的优惠券
func (r *GormOrderRepository) AttachItemCoupons(itemID uint, couponIDs []uint) error {
	coupons, err := r.couponsByIDs(couponIDs)
	if err != nil || len(coupons) == 0 {
		return err
	}
	return translateError(r.db.Model(&models.OrderItem{ID: itemID}).Association("Coupons").Append(&coupons))
}

// AttachVendors 关联订单涉及的卖家
func (r *GormOrderRepository) AttachVendors(orderID uint, vendorIDs []uint) error {
	if len(vendorIDs) == 0 {
		return nil
	}
	var vendors []models.User
	if err := r.db.Where("id IN ?", vendorIDs).Find(&vendors).Error; err != nil {
		return err
	}
	if len(vendors) == 0 {
		return nil
	}
	return translateError(r.db.Model(&models.Order{ID: orderID}).Association("Vendors").Append(&vendors))
}

// Delete 删除订单并级联删除订单项与关联关系
func (r *GormOrderRepository) Delete(id uint) error {
	return translateError(r.db.Transaction(func(tx *gorm.DB) error {
		itemIDs := tx.Model(&models.OrderItem{}).Select("id").Where("order_id = ?", id)
		if err := tx.Exec("DELETE FROM order_item_coupons WHERE order_item_id IN (?)", itemIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM order_coupons WHERE order_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM order_vendors WHERE order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	}))
}

// loadItemOrders 按 order_id 回填订单项所属订单。
// orders 表自身也有 order_id 列（6 位订单号），不能声明为 gorm 关联，否则迁移会在 orders 上生成指向 order_items 的外键。
func (r *GormOrderRepository) loadItemOrders(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(items))
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.OrderID]; ok {
			continue
		}
		seen[item.OrderID] = struct{}{}
		ids = append(ids, item.OrderID)
	}
	var orders []models.Order
	if err := r.db.Where("id IN ?", ids).Find(&orders).Error; err != nil {
		return err
	}
	byID := make(map[uint]*models.Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}
	for i := range items {
		items[i].Order = byID[items[i].OrderID]
	}
	return nil
}

func (r *GormOrderRepository) couponsByIDs(ids []uint) ([]models.Coupon, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var coupons []models.Coupon
	if err := r.db.Where("id IN ?", ids).Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}
