package main

import (
	"context"
	"errors"
	"time"

	"github.com/elkdev72/ecommerce-prj/internal/config"
	"github.com/elkdev72/ecommerce-prj/internal/constants"
	"github.com/elkdev72/ecommerce-prj/internal/logger"
	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/provider"
	"github.com/elkdev72/ecommerce-prj/internal/service"
)

type seedVariant struct {
	Name  string
	Items []string
}

type seedProduct struct {
	SKU         string
	Name        string
	Category    string
	Description string
	Price       string
	Regular     string
	Shipping    string
	Stock       uint
	Featured    bool
	Variants    []seedVariant
}

var seedCategories = []service.CreateCategoryInput{
	{Title: "Shoes"},
	{Title: "Clothing"},
	{Title: "Accessories"},
}

var seedProducts = []seedProduct{
	{
		SKU:         "SKU10001",
		Name:        "Red Shoes",
		Category:    "shoes",
		Description: "<p>Lightweight running shoes.</p>",
		Price:       "49.90",
		Regular:     "69.90",
		Shipping:    "5.00",
		Stock:       40,
		Featured:    true,
		Variants: []seedVariant{
			{Name: "Size", Items: []string{"40", "41", "42", "43"}},
			{Name: "Color", Items: []string{"Red", "Black"}},
		},
	},
	{
		SKU:         "SKU10002",
		Name:        "Cotton T-Shirt",
		Category:    "clothing",
		Description: "<p>Soft cotton tee.</p>",
		Price:       "15.00",
		Regular:     "20.00",
		Shipping:    "2.50",
		Stock:       120,
		Variants: []seedVariant{
			{Name: "Size", Items: []string{"S", "M", "L", "XL"}},
		},
	},
	{
		SKU:         "SKU10003",
		Name:        "Leather Belt",
		Category:    "accessories",
		Description: "<p>Full grain leather.</p>",
		Price:       "25.00",
		Regular:     "25.00",
		Shipping:    "3.00",
		Stock:       60,
	},
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.App.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	// 连接数据库
	if err := models.InitDB(cfg.App.Mode, models.DBOptions{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
		Logger: logger.NewGormLogger(cfg.App.Mode, time.Duration(cfg.Database.SlowThresholdMillis)*time.Millisecond),
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	ctx := context.Background()
	// 种子数据不依赖缓存与队列
	c := provider.NewContainerWithDB(cfg, models.DB, nil)

	vendor, err := c.UserService.GetByUsername("demo_vendor")
	if errors.Is(err, service.ErrUserNotFound) {
		vendor, err = c.UserService.Create(service.CreateUserInput{Username: "demo_vendor", Email: "vendor@example.com"})
	}
	if err != nil {
		stdLog.Fatalf("Failed to prepare vendor: %v", err)
	}

	// 添加分类
	categoryIDs := map[string]uint{}
	for _, input := range seedCategories {
		slug := models.Slugify(input.Title)
		category, err := c.CategoryService.GetBySlug(slug)
		if errors.Is(err, service.ErrCategoryNotFound) {
			category, err = c.CategoryService.Create(input)
			if err == nil {
				stdLog.Printf("Created category: %s", slug)
			}
		} else if err == nil {
			stdLog.Printf("Category already exists: %s", slug)
		}
		if err != nil {
			stdLog.Printf("Failed to prepare category %s: %v", slug, err)
			continue
		}
		categoryIDs[category.Slug] = category.ID
	}

	// 添加商品与规格
	for _, item := range seedProducts {
		if _, err := c.ProductService.GetBySKU(item.SKU); err == nil {
			stdLog.Printf("Product already exists: %s", item.SKU)
			continue
		} else if !errors.Is(err, service.ErrProductNotFound) {
			stdLog.Printf("Failed to check product %s: %v", item.SKU, err)
			continue
		}
		input := service.CreateProductInput{
			Name:         item.Name,
			Description:  item.Description,
			VendorID:     &vendor.ID,
			Price:        models.MustMoney(item.Price),
			RegularPrice: models.MustMoney(item.Regular),
			Shipping:     models.MustMoney(item.Shipping),
			Stock:        item.Stock,
			Status:       constants.StatusPaid,
			Featured:     item.Featured,
			SKU:          item.SKU,
		}
		if id, ok := categoryIDs[item.Category]; ok {
			categoryID := id
			input.CategoryID = &categoryID
		}
		product, err := c.ProductService.Create(input)
		if err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.SKU, err)
			continue
		}
		for _, v := range item.Variants {
			name := v.Name
			variant := service.CreateVariantInput{Name: &name}
			for _, title := range v.Items {
				value := title
				variant.Items = append(variant.Items, service.VariantItemInput{Title: &value, Content: &value})
			}
			if _, err := c.ProductService.AddVariant(ctx, product.ID, variant); err != nil {
				stdLog.Printf("Failed to add variant %s for %s: %v", v.Name, item.SKU, err)
			}
		}
		stdLog.Printf("Created product: %s (%s)", product.Name, product.SlugValue())
	}

	// 添加优惠券
	if _, err := c.CouponService.GetByCode("WELCOME10"); errors.Is(err, service.ErrCouponNotFound) {
		discount := 10
		if _, err := c.CouponService.Create(service.CreateCouponInput{VendorID: &vendor.ID, Code: "WELCOME10", Discount: &discount}); err != nil {
			stdLog.Printf("Failed to create coupon: %v", err)
		} else {
			stdLog.Printf("Created coupon: WELCOME10")
		}
	} else if err != nil {
		stdLog.Printf("Failed to check coupon: %v", err)
	} else {
		stdLog.Printf("Coupon already exists: WELCOME10")
	}

	stdLog.Printf("Seed completed")
}
