package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrSlugExists         = errors.New("slug already exists")
	ErrSKUExists          = errors.New("sku already exists")
	ErrUsernameExists     = errors.New("username already exists")
	ErrReferenceViolation = errors.New("referenced row is missing or still in use")
	ErrInvalidChoice      = errors.New("value is not in the allowed choice set")
	ErrRatingInvalid      = errors.New("rating must be between 1 and 5")
	ErrQuantityInvalid    = errors.New("quantity must be at least 1")
	ErrPriceInvalid       = errors.New("amount must not be negative")
	ErrStockInsufficient  = errors.New("insufficient stock")
	ErrOrderStatusInvalid = errors.New("order status transition not allowed")
	ErrOrderEmpty         = errors.New("order has no items")
	ErrCouponNotApplied   = errors.New("coupon does not apply to any order item")
	ErrCouponAlreadyUsed  = errors.New("coupon already applied to this order")
)

// 具体实体的未找到错误，均可通过 errors.Is(err, ErrNotFound) 判断
var (
	ErrCategoryNotFound  = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound   = fmt.Errorf("product %w", ErrNotFound)
	ErrVariantNotFound   = fmt.Errorf("variant %w", ErrNotFound)
	ErrGalleryNotFound   = fmt.Errorf("gallery %w", ErrNotFound)
	ErrCartItemNotFound  = fmt.Errorf("cart item %w", ErrNotFound)
	ErrCouponNotFound    = fmt.Errorf("coupon %w", ErrNotFound)
	ErrOrderNotFound     = fmt.Errorf("order %w", ErrNotFound)
	ErrOrderItemNotFound = fmt.Errorf("order item %w", ErrNotFound)
	ErrReviewNotFound    = fmt.Errorf("review %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
)

// ValidationError 输入校验错误，携带字段名并包装具体的哨兵错误
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newValidationError(field string, err error) error {
	return &ValidationError{Field: field, Err: err}
}
