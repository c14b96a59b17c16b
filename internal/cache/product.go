package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/models"
)

const defaultProductCacheTTL = 5 * time.Minute

func productSlugKey(slug string) string {
	return fmt.Sprintf("catalog:product:slug:%s", strings.TrimSpace(slug))
}

// GetProductBySlug 读取商品详情缓存
func GetProductBySlug(ctx context.Context, slug string) (*models.Product, bool, error) {
	if !Enabled() || strings.TrimSpace(slug) == "" {
		return nil, false, nil
	}
	var product models.Product
	hit, err := GetJSON(ctx, productSlugKey(slug), &product)
	if err != nil || !hit {
		return nil, false, err
	}
	return &product, true, nil
}

// SetProductBySlug 写入商品详情缓存，ttl<=0 时使用默认时长
func SetProductBySlug(ctx context.Context, product *models.Product, ttl time.Duration) error {
	if product == nil || product.SlugValue() == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = defaultProductCacheTTL
	}
	return SetJSON(ctx, productSlugKey(product.SlugValue()), product, ttl)
}

// InvalidateProduct 删除商品详情缓存
func InvalidateProduct(ctx context.Context, slugs ...string) error {
	keys := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		if strings.TrimSpace(slug) == "" {
			continue
		}
		keys = append(keys, productSlugKey(slug))
	}
	return Del(ctx, keys...)
}
