//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	dropAll := func() {
		_ = db.Migrator().DropTable("order_item_coupons", "order_coupons", "order_vendors")
		all := models.AllModels()
		for i := len(all) - 1; i >= 0; i-- {
			_ = db.Migrator().DropTable(all[i])
		}
	}
	dropAll()

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		dropAll()
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchAndConstraints(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	categoryRepo := NewCategoryRepository(db)
	category := &models.Category{Title: "Postgres Shoes", Slug: "pg-shoes"}
	if err := categoryRepo.Create(category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := categoryRepo.Create(&models.Category{Title: "Again", Slug: "pg-shoes"}); !IsDuplicate(err) {
		t.Fatalf("duplicate category slug want ErrDuplicate got %v", err)
	}

	productRepo := NewProductRepository(db)
	product := &models.Product{Name: "Rocket Sneakers", CategoryID: &category.ID}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	rows, total, err := productRepo.List(ProductListFilter{Page: 1, Search: "ROCKET"})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}

	if err := categoryRepo.Delete(category.ID); err != nil {
		t.Fatalf("delete category failed: %v", err)
	}
	got, err := productRepo.GetByID(product.ID)
	if err != nil || got == nil {
		t.Fatalf("product should survive category delete: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("product category should be cleared")
	}
}

func TestPostgresReviewAverage(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	product := &models.Product{Name: "Average Lamp"}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	repo := NewReviewRepository(db)
	for _, rating := range []int{2, 4} {
		review := &models.Review{ProductID: &product.ID, Rating: rating}
		if err := repo.Create(review); err != nil {
			t.Fatalf("create review failed: %v", err)
		}
		if err := repo.SetActive(review.ID, true); err != nil {
			t.Fatalf("activate review failed: %v", err)
		}
	}
	avg, total, err := repo.AverageRating(product.ID)
	if err != nil {
		t.Fatalf("average rating failed: %v", err)
	}
	if total != 2 || avg < 2.99 || avg > 3.01 {
		t.Fatalf("average want 3 over 2 got %.2f over %d", avg, total)
	}
}
