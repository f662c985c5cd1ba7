package repository

import (
	"context"
	"errors"
	"strings"

	"go-bom-catalog/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Search(ctx context.Context, q string) Query[model.Product]
	SearchWithFeedstocks(ctx context.Context, q string) Query[model.Product]
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Search filters by product name or code, case-insensitively. A blank query
// returns every row. Results are ordered by unit price, highest first, and
// carry their feedstock associations.
func (r *productRepo) Search(ctx context.Context, q string) Query[model.Product] {
	tx := r.base(ctx)

	if s := strings.TrimSpace(q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}

	return newQuery[model.Product](tx)
}

// SearchWithFeedstocks matches like Search but also reaches products through
// the name of any feedstock they consume. The feedstock branch is an id
// subquery, so a product reachable through several matching feedstocks still
// appears once.
func (r *productRepo) SearchWithFeedstocks(ctx context.Context, q string) Query[model.Product] {
	tx := r.base(ctx)

	if s := strings.TrimSpace(q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		byFeedstock := r.db.Model(&model.ProductFeedstock{}).
			Select("product_feedstocks.product_id").
			Joins("JOIN feedstocks ON feedstocks.id = product_feedstocks.feedstock_id").
			Where("LOWER(feedstocks.name) LIKE ?", like)
		tx = tx.Where("LOWER(products.name) LIKE ? OR LOWER(products.code) LIKE ? OR products.id IN (?)",
			like, like, byFeedstock)
	}

	return newQuery[model.Product](tx)
}

func (r *productRepo) base(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&model.Product{}).
		Preload("Feedstocks.Feedstock").
		Order("unit_price DESC")
}

func (r *productRepo) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Feedstocks.Feedstock").
		First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductFeedstock{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Product{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}
