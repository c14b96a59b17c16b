package service

import (
	"strings"
	"testing"

	"github.com/elkdev72/ecommerce-prj/internal/models"
	"github.com/elkdev72/ecommerce-prj/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testServices struct {
	db       *gorm.DB
	category *CategoryService
	product  *ProductService
	cart     *CartService
	coupon   *CouponService
	order    *OrderService
	review   *ReviewService
	user     *UserService
}

func setupServiceTest(t *testing.T) *testServices {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := models.Open(models.DBOptions{
		Driver: "sqlite",
		DSN:    "file:svc_" + name + "?mode=memory&cache=shared",
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	variantRepo := repository.NewVariantRepository(db)
	galleryRepo := repository.NewGalleryRepository(db)
	cartRepo := repository.NewCartRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	userRepo := repository.NewUserRepository(db)

	return &testServices{
		db:       db,
		category: NewCategoryService(categoryRepo),
		product: NewProductService(ProductServiceOptions{
			ProductRepo:  productRepo,
			VariantRepo:  variantRepo,
			GalleryRepo:  galleryRepo,
			CategoryRepo: categoryRepo,
			UserRepo:     userRepo,
		}),
		cart:   NewCartService(cartRepo, productRepo),
		coupon: NewCouponService(couponRepo, userRepo),
		order:  NewOrderService(orderRepo, cartRepo, productRepo, couponRepo, nil),
		review: NewReviewService(reviewRepo, productRepo),
		user:   NewUserService(userRepo),
	}
}

func (s *testServices) mustUser(t *testing.T, username string) *models.User {
	t.Helper()
	user, err := s.user.Create(CreateUserInput{Username: username, Email: username + "@example.com"})
	require.NoError(t, err)
	return user
}

func (s *testServices) mustProduct(t *testing.T, name, price string, vendorID *uint) *models.Product {
	t.Helper()
	product, err := s.product.Create(CreateProductInput{
		Name:     name,
		Price:    models.MustMoney(price),
		Shipping: models.MustMoney("0"),
		Stock:    50,
		VendorID: vendorID,
	})
	require.NoError(t, err)
	return product
}

func requireValidationError(t *testing.T, err error, field string, sentinel error) {
	t.Helper()
	require.ErrorIs(t, err, sentinel)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Equal(t, field, vErr.Field)
}

func requireMoney(t *testing.T, expected string, actual models.Money) {
	t.Helper()
	require.Equal(t, expected, actual.String())
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func intPtr(v int) *int {
	return &v
}
