package repository

import (
	"strings"
	"testing"

	"github.com/elkdev72/ecommerce-prj/internal/models"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupRepositoryTestDB 为每个测试创建独立的内存数据库并完成迁移
func setupRepositoryTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := models.Open(models.DBOptions{
		Driver: "sqlite",
		DSN:    "file:" + name + "?mode=memory&cache=shared",
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate models failed: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func createTestCategory(t *testing.T, db *gorm.DB, title string) *models.Category {
	t.Helper()
	category := &models.Category{Title: title}
	if err := NewCategoryRepository(db).Create(category); err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, categoryID *uint) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:       name,
		CategoryID: categoryID,
		Price:      models.MustMoney("19.99"),
		Stock:      10,
	}
	if err := NewProductRepository(db).Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func countRows(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count rows failed: %v", err)
	}
	return count
}

func countJoinRows(t *testing.T, db *gorm.DB, table, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Table(table).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count %s rows failed: %v", table, err)
	}
	return count
}

func uintPtr(v uint) *uint {
	return &v
}

func strPtr(v string) *string {
	return &v
}
