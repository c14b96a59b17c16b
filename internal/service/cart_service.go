package service

import (
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddCartItemInput 加入购物车输入
type AddCartItemInput struct {
	CartID    string `validate:"required,max=1000"`
	UserID    *uint
	ProductID uint    `validate:"required"`
	Qty       uint    `validate:"qty"`
	Size      *string `validate:"omitempty,max=100"`
	Color     *string `validate:"omitempty,max=100"`
	// TaxRate 税率百分比，例如 7.5 表示 7.5%
	TaxRate decimal.Decimal
}

// CartTotals 购物车汇总
type CartTotals struct {
	Items    int          `json:"items"`
	Qty      uint         `json:"qty"`
	SubTotal models.Money `json:"sub_total"`
	Shipping models.Money `json:"shipping"`
	Tax      models.Money `json:"tax"`
	Total    models.Money `json:"total"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// NewCartID 生成匿名会话购物车标识
func NewCartID() string {
	return uuid.NewString()
}

// Add 加入购物车；同一会话中商品、尺码、颜色相同的行直接覆盖数量并重新计价
func (s *CartService) Add(input AddCartItemInput) (*models.Cart, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.TaxRate.IsNegative() {
		return nil, newValidationError("TaxRate", ErrPriceInvalid)
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if input.Qty > product.Stock {
		return nil, ErrStockInsufficient
	}

	cartID := strings.TrimSpace(input.CartID)
	line, err := s.cartRepo.FindLine(cartID, product.ID, input.Size, input.Color)
	if err != nil {
		return nil, err
	}
	isNew := line == nil
	if isNew {
		line = &models.Cart{
			ProductID: product.ID,
			CartID:    &cartID,
			Size:      input.Size,
			Color:     input.Color,
		}
	}
	if input.UserID != nil {
		line.UserID = input.UserID
	}
	line.Qty = input.Qty
	priceCartLine(line, product, input.TaxRate)

	if isNew {
		err = s.cartRepo.Create(line)
	} else {
		err = s.cartRepo.Update(line)
	}
	if err != nil {
		if repository.IsReferenced(err) {
			return nil, ErrReferenceViolation
		}
		return nil, err
	}
	logger.Debugw("cart_line_saved",
		"cart_id", cartID,
		"product_id", product.ID,
		"qty", line.Qty,
		"created", isNew,
	)
	return line, nil
}

// UpdateQty 修改购物车行数量并按商品当前价格重新计价
func (s *CartService) UpdateQty(id uint, qty uint, taxRate decimal.Decimal) (*models.Cart, error) {
	if qty < 1 {
		return nil, newValidationError("Qty", ErrQuantityInvalid)
	}
	if taxRate.IsNegative() {
		return nil, newValidationError("TaxRate", ErrPriceInvalid)
	}
	line, err := s.cartRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, ErrCartItemNotFound
	}
	product, err := s.productRepo.GetByID(line.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if qty > product.Stock {
		return nil, ErrStockInsufficient
	}
	line.Qty = qty
	priceCartLine(line, product, taxRate)
	if err := s.cartRepo.Update(line); err != nil {
		return nil, err
	}
	return line, nil
}

// Remove 删除购物车行
func (s *CartService) Remove(id uint) error {
	line, err := s.cartRepo.GetByID(id)
	if err != nil {
		return err
	}
	if line == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(id)
}

// List 获取会话购物车
func (s *CartService) List(cartID string) ([]models.Cart, error) {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return nil, newValidationError("CartID", ErrInvalidInput)
	}
	return s.cartRepo.ListByCartID(cartID)
}

// ListByUser 获取用户的购物车行（最新在前）
func (s *CartService) ListByUser(userID uint) ([]models.Cart, error) {
	if userID == 0 {
		return nil, newValidationError("UserID", ErrInvalidInput)
	}
	return s.cartRepo.ListByUser(userID)
}

// Clear 清空会话购物车
func (s *CartService) Clear(cartID string) error {
	cartID = strings.TrimSpace(cartID)
	if cartID == "" {
		return newValidationError("CartID", ErrInvalidInput)
	}
	return s.cartRepo.ClearByCartID(cartID)
}

// Totals 汇总会话购物车金额
func (s *CartService) Totals(cartID string) (CartTotals, error) {
	lines, err := s.List(cartID)
	if err != nil {
		return CartTotals{}, err
	}
	return sumCartLines(lines), nil
}

func sumCartLines(lines []models.Cart) CartTotals {
	subTotal := decimal.Zero
	shipping := decimal.Zero
	tax := decimal.Zero
	total := decimal.Zero
	var qty uint
	for _, line := range lines {
		qty += line.Qty
		subTotal = subTotal.Add(line.SubTotal.Decimal)
		shipping = shipping.Add(line.Shipping.Decimal)
		tax = tax.Add(line.Tax.Decimal)
		total = total.Add(line.Total.Decimal)
	}
	return CartTotals{
		Items:    len(lines),
		Qty:      qty,
		SubTotal: models.NewMoneyFromDecimal(subTotal),
		Shipping: models.NewMoneyFromDecimal(shipping),
		Tax:      models.NewMoneyFromDecimal(tax),
		Total:    models.NewMoneyFromDecimal(total),
	}
}

// priceCartLine 按商品单价、运费与税率计算购物车行金额
func priceCartLine(line *models.Cart, product *models.Product, taxRate decimal.Decimal) {
	qty := decimal.NewFromInt(int64(line.Qty))
	subTotal := product.Price.Decimal.Mul(qty)
	shipping := product.Shipping.Decimal.Mul(qty)
	tax := subTotal.Mul(taxRate).Div(decimal.NewFromInt(100))

	line.Price = product.Price
	line.SubTotal = models.NewMoneyFromDecimal(subTotal)
	line.Shipping = models.NewMoneyFromDecimal(shipping)
	line.Tax = models.NewMoneyFromDecimal(tax)
	line.Total = models.NewMoneyFromDecimal(subTotal.Add(shipping).Add(tax))
}
