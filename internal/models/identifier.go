package models

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/elkdev72/ecommerce-prj/internal/constants"

	"github.com/gosimple/slug"
)

const (
	digitAlphabet = "1234567890"
	// 短 token 字母表：2-9 与全部小写字母（不含 0、1）
	slugTokenAlphabet = "23456789abcdefghijklmnopqrstuvwxyz"
)

// RandomDigits 生成指定长度的纯数字随机串（不保证唯一）
func RandomDigits(length int) string {
	return randomFromAlphabet(digitAlphabet, length)
}

// RandomSlugToken 生成指定长度的小写随机 token
func RandomSlugToken(length int) string {
	return randomFromAlphabet(slugTokenAlphabet, length)
}

// Slugify 将名称转换为 URL 安全的 slug
func Slugify(value string) string {
	return slug.Make(strings.TrimSpace(value))
}

// ProductSlug 生成商品 slug：slugify(name) + "-" + 2 位随机 token
func ProductSlug(name string) string {
	token := RandomSlugToken(constants.ProductSlugSuffixLen)
	base := Slugify(name)
	if base == "" {
		return token
	}
	return base + "-" + token
}

// NewSKU 生成商品 SKU，例如 SKU48213
func NewSKU() string {
	return constants.SKUPrefix + RandomDigits(constants.SKUDigits)
}

// NewShortID 生成 6 位数字短编号（图集、订单、订单项）
func NewShortID() string {
	return RandomDigits(constants.ShortIDDigits)
}

func randomFromAlphabet(alphabet string, length int) string {
	if length <= 0 {
		return ""
	}
	var builder strings.Builder
	builder.Grow(length)
	max := big.NewInt(int64(len(alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			builder.WriteByte(alphabet[0])
			continue
		}
		builder.WriteByte(alphabet[n.Int64()])
	}
	return builder.String()
}
