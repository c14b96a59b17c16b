package service

import (
	"testing"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCartAddPricesLine(t *testing.T) {
	svc := setupServiceTest(t)
	product, err := svc.product.Create(CreateProductInput{
		Name:     "Sneaker",
		Price:    models.MustMoney("20.00"),
		Shipping: models.MustMoney("2.50"),
		Stock:    10,
	})
	require.NoError(t, err)
	cartID := NewCartID()

	line, err := svc.cart.Add(AddCartItemInput{
		CartID:    cartID,
		ProductID: product.ID,
		Qty:       2,
		Size:      strPtr("42"),
		TaxRate:   decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	requireMoney(t, "20.00", line.Price)
	requireMoney(t, "40.00", line.SubTotal)
	requireMoney(t, "5.00", line.Shipping)
	requireMoney(t, "4.00", line.Tax)
	requireMoney(t, "49.00", line.Total)

	// 同一商品同一尺码覆盖数量
	again, err := svc.cart.Add(AddCartItemInput{
		CartID:    cartID,
		ProductID: product.ID,
		Qty:       3,
		Size:      strPtr("42"),
	})
	require.NoError(t, err)
	require.Equal(t, line.ID, again.ID)
	require.EqualValues(t, 3, again.Qty)
	requireMoney(t, "67.50", again.Total)

	_, err = svc.cart.Add(AddCartItemInput{CartID: cartID, ProductID: product.ID, Qty: 1, Size: strPtr("43")})
	require.NoError(t, err)

	totals, err := svc.cart.Totals(cartID)
	require.NoError(t, err)
	require.Equal(t, 2, totals.Items)
	require.EqualValues(t, 4, totals.Qty)
	requireMoney(t, "80.00", totals.SubTotal)
	requireMoney(t, "90.00", totals.Total)
}

func TestCartAddValidation(t *testing.T) {
	svc := setupServiceTest(t)
	product := svc.mustProduct(t, "Cap", "9.00", nil)

	_, err := svc.cart.Add(AddCartItemInput{CartID: "c1", ProductID: product.ID, Qty: 0})
	requireValidationError(t, err, "Qty", ErrQuantityInvalid)

	_, err = svc.cart.Add(AddCartItemInput{CartID: "c1", ProductID: product.ID, Qty: 500})
	require.ErrorIs(t, err, ErrStockInsufficient)

	_, err = svc.cart.Add(AddCartItemInput{CartID: "c1", ProductID: 9999, Qty: 1})
	require.ErrorIs(t, err, ErrProductNotFound)

	_, err = svc.cart.Add(AddCartItemInput{CartID: "c1", ProductID: product.ID, Qty: 1, TaxRate: decimal.NewFromInt(-5)})
	requireValidationError(t, err, "TaxRate", ErrPriceInvalid)
}

func TestCartUpdateRemoveAndClear(t *testing.T) {
	svc := setupServiceTest(t)
	user := svc.mustUser(t, "shopper")
	product := svc.mustProduct(t, "Scarf", "12.00", nil)
	cartID := NewCartID()

	line, err := svc.cart.Add(AddCartItemInput{CartID: cartID, UserID: &user.ID, ProductID: product.ID, Qty: 1})
	require.NoError(t, err)

	updated, err := svc.cart.UpdateQty(line.ID, 4, decimal.Zero)
	require.NoError(t, err)
	requireMoney(t, "48.00", updated.SubTotal)

	byUser, err := svc.cart.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, byUser, 1)

	require.NoError(t, svc.cart.Remove(line.ID))
	require.ErrorIs(t, svc.cart.Remove(line.ID), ErrCartItemNotFound)

	_, err = svc.cart.Add(AddCartItemInput{CartID: cartID, ProductID: product.ID, Qty: 1})
	require.NoError(t, err)
	require.NoError(t, svc.cart.Clear(cartID))
	lines, err := svc.cart.List(cartID)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestNewCartIDIsUnique(t *testing.T) {
	first := NewCartID()
	second := NewCartID()
	require.Len(t, first, 36)
	require.NotEqual(t, first, second)
}
