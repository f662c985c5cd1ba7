// Package testutil opens throwaway catalog databases for tests. Each call
// gets its own in-memory SQLite database with the full schema migrated and
// foreign keys enforced.
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go-bom-catalog/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	// A named shared-cache database isolates tests from each other while
	// letting the pool share one schema; _foreign_keys applies per
	// connection, which a session PRAGMA would not.
	dsn := fmt.Sprintf("file:catalog_test_%d?mode=memory&cache=shared&_foreign_keys=on", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(&model.Feedstock{}, &model.Product{}, &model.ProductFeedstock{}); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

func SeedFeedstock(tb testing.TB, db *gorm.DB, code, name, stock, unit string) *model.Feedstock {
	tb.Helper()
	f := &model.Feedstock{
		Code:          code,
		Name:          name,
		Stock:         decimal.RequireFromString(stock),
		UnitOfMeasure: unit,
	}
	if err := db.Create(f).Error; err != nil {
		tb.Fatalf("seed feedstock %s: %v", code, err)
	}
	return f
}

func SeedProduct(tb testing.TB, db *gorm.DB, code, name, unitPrice string) *model.Product {
	tb.Helper()
	p := &model.Product{
		Code:      code,
		Name:      name,
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed product %s: %v", code, err)
	}
	return p
}

func SeedAssociation(tb testing.TB, db *gorm.DB, productID, feedstockID int64, quantity string) *model.ProductFeedstock {
	tb.Helper()
	row := &model.ProductFeedstock{
		ProductID:   productID,
		FeedstockID: feedstockID,
		Quantity:    decimal.RequireFromString(quantity),
	}
	if err := db.Create(row).Error; err != nil {
		tb.Fatalf("seed association %d->%d: %v", productID, feedstockID, err)
	}
	return row
}
