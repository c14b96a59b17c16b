package service

import (
	"errors"
	"reflect"
	"sync"

	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/models"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

// choiceTags 取值集合校验标签
var choiceTags = map[string]func(string) bool{
	"status":           constants.ValidStatus,
	"payment_method":   constants.ValidPaymentMethod,
	"order_status":     constants.ValidOrderStatus,
	"shipping_service": constants.ValidShippingService,
}

func inputValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		// 金额按浮点值参与校验
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			money, ok := field.Interface().(models.Money)
			if !ok {
				return nil
			}
			f, _ := money.Float64()
			return f
		}, models.Money{})
		for tag, fn := range choiceTags {
			check := fn
			_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
				return check(fl.Field().String())
			})
		}
		_ = v.RegisterValidation("rating", func(fl validator.FieldLevel) bool {
			return constants.ValidRating(int(fl.Field().Int()))
		})
		_ = v.RegisterValidation("qty", func(fl validator.FieldLevel) bool {
			switch fl.Field().Kind() {
			case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
				return fl.Field().Uint() >= 1
			default:
				return fl.Field().Int() >= 1
			}
		})
		_ = v.RegisterValidation("money", func(fl validator.FieldLevel) bool {
			return fl.Field().Float() >= 0
		})
		validate = v
	})
	return validate
}

// validateInput 校验输入结构体，返回首个失败字段对应的 ValidationError
func validateInput(input interface{}) error {
	err := inputValidator().Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return newValidationError("", ErrInvalidInput)
	}
	fe := fieldErrs[0]
	return newValidationError(fe.Field(), sentinelForTag(fe.Tag()))
}

func sentinelForTag(tag string) error {
	if _, ok := choiceTags[tag]; ok {
		return ErrInvalidChoice
	}
	switch tag {
	case "rating":
		return ErrRatingInvalid
	case "qty":
		return ErrQuantityInvalid
	case "money":
		return ErrPriceInvalid
	default:
		return ErrInvalidInput
	}
}
