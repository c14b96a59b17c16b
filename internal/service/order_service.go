package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/queue"
	"github.com/elkdev72/ecommerce-prj/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	couponRepo  repository.CouponRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, productRepo repository.ProductRepository, couponRepo repository.CouponRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		cartRepo:    cartRepo,
		productRepo: productRepo,
		couponRepo:  couponRepo,
		queueClient: queueClient,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CustomerID    *uint
	Items         []CreateOrderItem `validate:"dive"`
	PaymentMethod *string           `validate:"omitempty,payment_method"`
	ServiceFee    models.Money      `validate:"money"`
	// TaxRate 税率百分比
	TaxRate decimal.Decimal
}

// CreateOrderItem 订单项输入
type CreateOrderItem struct {
	ProductID uint    `validate:"required"`
	Qty       int     `validate:"qty"`
	Size      *string `validate:"omitempty,max=100"`
	Color     *string `validate:"omitempty,max=100"`
}

// CreateOrderFromCartInput 购物车结算输入
type CreateOrderFromCartInput struct {
	CartID        string `validate:"required"`
	CustomerID    *uint
	PaymentMethod *string      `validate:"omitempty,payment_method"`
	ServiceFee    models.Money `validate:"money"`
}

// RecordPaymentInput 记录支付结果输入
type RecordPaymentInput struct {
	PaymentMethod string `validate:"required,payment_method"`
	PaymentID     string `validate:"max=1000"`
	PaymentStatus string `validate:"max=100"`
}

// UpdateOrderItemInput 卖家更新订单项履约信息
type UpdateOrderItemInput struct {
	OrderStatus     string  `validate:"required,order_status"`
	ShippingService *string `validate:"omitempty,shipping_service"`
	TrackingID      *string `validate:"omitempty,max=100"`
}

// Create 创建订单：按商品当前价格生成订单项快照，并记录涉及的卖家
func (s *OrderService) Create(input CreateOrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, ErrOrderEmpty
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.TaxRate.IsNegative() {
		return nil, newValidationError("TaxRate", ErrPriceInvalid)
	}

	items := make([]models.OrderItem, 0, len(input.Items))
	for _, row := range input.Items {
		product, err := s.productRepo.GetByID(row.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if uint(row.Qty) > product.Stock {
			return nil, ErrStockInsufficient
		}
		items = append(items, buildOrderItem(product, row, input.TaxRate))
	}

	order := models.Order{
		CustomerID:    input.CustomerID,
		PaymentMethod: input.PaymentMethod,
		ServiceFee:    input.ServiceFee,
	}
	applyOrderTotals(&order, items)
	if err := s.persist(&order, items, ""); err != nil {
		return nil, err
	}
	return s.Get(order.ID)
}

// CreateFromCart 将会话购物车结算为订单并清空购物车
func (s *OrderService) CreateFromCart(input CreateOrderFromCartInput) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	cartID := strings.TrimSpace(input.CartID)
	lines, err := s.cartRepo.ListByCartID(cartID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrOrderEmpty
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, ErrProductNotFound
		}
		if line.Qty > product.Stock {
			return nil, ErrStockInsufficient
		}
		items = append(items, models.OrderItem{
			ProductID:    product.ID,
			VendorID:     product.VendorID,
			Qty:          int(line.Qty),
			Size:         line.Size,
			Color:        line.Color,
			Price:        line.Price,
			SubTotal:     line.SubTotal,
			Shipping:     line.Shipping,
			Tax:          line.Tax,
			Total:        line.Total,
			InitialTotal: line.Total,
		})
	}

	order := models.Order{
		CustomerID:    input.CustomerID,
		PaymentMethod: input.PaymentMethod,
		ServiceFee:    input.ServiceFee,
	}
	applyOrderTotals(&order, items)
	if err := s.persist(&order, items, cartID); err != nil {
		return nil, err
	}
	return s.Get(order.ID)
}

func (s *OrderService) persist(order *models.Order, items []models.OrderItem, clearCartID string) error {
	vendorIDs := collectVendorIDs(items)
	err := s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		if err := orderRepo.Create(order, items); err != nil {
			return err
		}
		if err := orderRepo.AttachVendors(order.ID, vendorIDs); err != nil {
			return err
		}
		if clearCartID != "" && s.cartRepo != nil {
			return s.cartRepo.WithTx(tx).ClearByCartID(clearCartID)
		}
		return nil
	})
	if err != nil {
		if repository.IsReferenced(err) {
			return ErrReferenceViolation
		}
		return err
	}
	logger.Infow("order_created",
		"order_id", order.ID,
		"order_number", order.OrderID,
		"items", len(items),
		"vendors", len(vendorIDs),
		"total", order.Total.String(),
	)
	return nil
}

// Get 获取订单详情
func (s *OrderService) Get(id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// GetByOrderNumber 根据 6 位订单号获取订单
func (s *OrderService) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	order, err := s.orderRepo.GetByOrderNumber(strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// List 订单列表
func (s *OrderService) List(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	return s.orderRepo.List(filter)
}

// ListItems 获取订单项（最新在前）
func (s *OrderService) ListItems(orderID uint) ([]models.OrderItem, error) {
	if _, err := s.Get(orderID); err != nil {
		return nil, err
	}
	return s.orderRepo.ListItems(orderID)
}

// ListVendorItems 获取卖家名下的订单项
func (s *OrderService) ListVendorItems(vendorID uint) ([]models.OrderItem, error) {
	return s.orderRepo.ListItemsByVendor(vendorID)
}

// UpdateStatus 更新订单状态，已取消的订单不可再变更
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !constants.ValidOrderStatus(status) {
		return nil, newValidationError("OrderStatus", ErrInvalidChoice)
	}
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == status {
		return order, nil
	}
	if order.OrderStatus == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}
	if err := s.orderRepo.UpdateStatus(order.ID, status, nil); err != nil {
		return nil, err
	}
	logger.Infow("order_status_updated", "order_id", order.ID, "from", order.OrderStatus, "to", status)
	order.OrderStatus = status
	return order, nil
}

// RecordPayment 记录支付结果，待处理订单随之进入处理中
func (s *OrderService) RecordPayment(id uint, input RecordPaymentInput) (*models.Order, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	order, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if order.OrderStatus == constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}

	paymentStatus := strings.TrimSpace(input.PaymentStatus)
	if paymentStatus == "" {
		paymentStatus = constants.StatusPaid
	}
	method := strings.TrimSpace(input.PaymentMethod)
	updates := map[string]interface{}{
		"payment_method": method,
		"payment_status": paymentStatus,
	}
	if paymentID := strings.TrimSpace(input.PaymentID); paymentID != "" {
		updates["payment_id"] = paymentID
		order.PaymentID = &paymentID
	}
	nextStatus := order.OrderStatus
	if nextStatus == constants.OrderStatusPending && paymentStatus == constants.StatusPaid {
		nextStatus = constants.OrderStatusProcessing
	}
	if err := s.orderRepo.UpdateStatus(order.ID, nextStatus, updates); err != nil {
		return nil, err
	}
	logger.Infow("order_payment_recorded",
		"order_id", order.ID,
		"payment_method", method,
		"payment_status", paymentStatus,
	)
	order.PaymentMethod = &method
	order.PaymentStatus = paymentStatus
	order.OrderStatus = nextStatus
	return order, nil
}

// UpdateItemStatus 更新订单项履约状态与物流信息，随后汇总订单状态
func (s *OrderService) UpdateItemStatus(itemID uint, input UpdateOrderItemInput) (*models.OrderItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	item, err := s.orderRepo.GetItem(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrOrderItemNotFound
	}
	if item.OrderStatus == constants.OrderStatusCancelled && input.OrderStatus != constants.OrderStatusCancelled {
		return nil, ErrOrderStatusInvalid
	}

	previous := item.OrderStatus
	item.OrderStatus = input.OrderStatus
	if input.ShippingService != nil {
		item.ShippingService = input.ShippingService
	}
	if input.TrackingID != nil {
		item.TrackingID = input.TrackingID
	}
	if err := s.orderRepo.UpdateItem(item); err != nil {
		return nil, err
	}
	logger.Infow("order_item_status_updated",
		"order_item_id", item.ID,
		"item_number", item.ItemID,
		"from", previous,
		"to", item.OrderStatus,
	)
	if previous != item.OrderStatus {
		if err := dispatchOrderStatusSync(s.orderRepo, s.queueClient, item.OrderID); err != nil {
			return item, err
		}
	}
	return item, nil
}

// SyncOrderStatus 根据订单项状态重新汇总订单状态
func (s *OrderService) SyncOrderStatus(orderID uint) (string, error) {
	return syncOrderStatus(s.orderRepo, orderID)
}

// ApplyCoupon 对订单中属于该优惠券卖家且未使用优惠券的订单项按百分比抵扣
func (s *OrderService) ApplyCoupon(orderID uint, code string) (*models.Order, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, newValidationError("Code", ErrInvalidInput)
	}
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	for _, used := range order.Coupons {
		if used.ID == coupon.ID {
			return nil, ErrCouponAlreadyUsed
		}
	}

	eligible := make([]int, 0, len(order.Items))
	for i, item := range order.Items {
		if couponApplies(coupon, item) {
			eligible = append(eligible, i)
		}
	}
	if len(eligible) == 0 {
		return nil, ErrCouponNotApplied
	}

	totalSaved := decimal.Zero
	err = s.orderRepo.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		for _, idx := range eligible {
			item := &order.Items[idx]
			discount := calculateCouponDiscount(coupon, item.SubTotal)
			item.Total = models.NewMoneyFromDecimal(item.Total.Decimal.Sub(discount.Decimal))
			item.SubTotal = models.NewMoneyFromDecimal(item.SubTotal.Decimal.Sub(discount.Decimal))
			item.Saved = models.NewMoneyFromDecimal(item.Saved.Decimal.Add(discount.Decimal))
			item.AppliedCoupon = true
			if err := orderRepo.UpdateItem(item); err != nil {
				return err
			}
			if err := orderRepo.AttachItemCoupons(item.ID, []uint{coupon.ID}); err != nil {
				return err
			}
			totalSaved = totalSaved.Add(discount.Decimal)
		}
		order.Total = models.NewMoneyFromDecimal(order.Total.Decimal.Sub(totalSaved))
		order.SubTotal = models.NewMoneyFromDecimal(order.SubTotal.Decimal.Sub(totalSaved))
		order.Saved = models.NewMoneyFromDecimal(order.Saved.Decimal.Add(totalSaved))
		updates := map[string]interface{}{
			"total":     order.Total,
			"sub_total": order.SubTotal,
			"saved":     order.Saved,
		}
		if err := orderRepo.UpdateStatus(order.ID, order.OrderStatus, updates); err != nil {
			return err
		}
		return orderRepo.AttachCoupons(order.ID, []uint{coupon.ID})
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("order_coupon_applied",
		"order_id", order.ID,
		"coupon_id", coupon.ID,
		"items", len(eligible),
		"saved", models.NewMoneyFromDecimal(totalSaved).String(),
	)
	return s.Get(order.ID)
}

// Delete 删除订单（级联删除订单项与关联记录）
func (s *OrderService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.orderRepo.Delete(id); err != nil {
		return err
	}
	logger.Infow("order_deleted", "order_id", id)
	return nil
}

func buildOrderItem(product *models.Product, row CreateOrderItem, taxRate decimal.Decimal) models.OrderItem {
	qty := decimal.NewFromInt(int64(row.Qty))
	subTotal := product.Price.Decimal.Mul(qty)
	shipping := product.Shipping.Decimal.Mul(qty)
	tax := subTotal.Mul(taxRate).Div(decimal.NewFromInt(100))
	total := models.NewMoneyFromDecimal(subTotal.Add(shipping).Add(tax))
	return models.OrderItem{
		ProductID:    product.ID,
		VendorID:     product.VendorID,
		Qty:          row.Qty,
		Size:         row.Size,
		Color:        row.Color,
		Price:        product.Price,
		SubTotal:     models.NewMoneyFromDecimal(subTotal),
		Shipping:     models.NewMoneyFromDecimal(shipping),
		Tax:          models.NewMoneyFromDecimal(tax),
		Total:        total,
		InitialTotal: total,
	}
}

// applyOrderTotals 汇总订单项金额写入订单，服务费计入实付金额
func applyOrderTotals(order *models.Order, items []models.OrderItem) {
	subTotal := decimal.Zero
	shipping := decimal.Zero
	tax := decimal.Zero
	for _, item := range items {
		subTotal = subTotal.Add(item.SubTotal.Decimal)
		shipping = shipping.Add(item.Shipping.Decimal)
		tax = tax.Add(item.Tax.Decimal)
	}
	total := subTotal.Add(shipping).Add(tax).Add(order.ServiceFee.Decimal)
	order.SubTotal = models.NewMoneyFromDecimal(subTotal)
	order.Shipping = models.NewMoneyFromDecimal(shipping)
	order.Tax = models.NewMoneyFromDecimal(tax)
	order.Total = models.NewMoneyFromDecimal(total)
	order.InitialTotal = order.Total
}

func collectVendorIDs(items []models.OrderItem) []uint {
	seen := make(map[uint]struct{}, len(items))
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		if item.VendorID == nil {
			continue
		}
		if _, ok := seen[*item.VendorID]; ok {
			continue
		}
		seen[*item.VendorID] = struct{}{}
		ids = append(ids, *item.VendorID)
	}
	return ids
}
