package repository

import (
	"context"
	"errors"
	"strings"

	"go-bom-catalog/internal/model"

	"gorm.io/gorm"
)

type FeedstockRepository interface {
	Search(ctx context.Context, q string) Query[model.Feedstock]
	FindByID(ctx context.Context, id int64) (*model.Feedstock, error)
	DeleteByID(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, f *model.Feedstock) error
	Save(ctx context.Context, f *model.Feedstock) error
	// Usage returns the join rows referencing any of the feedstocks, with the
	// owning product loaded. The feedstock side of the relation is
	// informational only, so it lives here as a query rather than a
	// back-pointer set.
	Usage(ctx context.Context, feedstockIDs []int64) ([]model.ProductFeedstock, error)
	CountUsage(ctx context.Context, feedstockID int64) (int64, error)
}

type feedstockRepo struct {
	db *gorm.DB
}

func NewFeedstockRepo(db *gorm.DB) FeedstockRepository {
	return &feedstockRepo{db}
}

// Search filters by name or code, case-insensitively. A blank query returns
// every row. Results are ordered by stock, highest first.
func (r *feedstockRepo) Search(ctx context.Context, q string) Query[model.Feedstock] {
	tx := r.db.WithContext(ctx).Model(&model.Feedstock{}).Order("stock DESC")

	if s := strings.TrimSpace(q); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where("LOWER(name) LIKE ? OR LOWER(code) LIKE ?", like, like)
	}

	return newQuery[model.Feedstock](tx)
}

func (r *feedstockRepo) FindByID(ctx context.Context, id int64) (*model.Feedstock, error) {
	var f model.Feedstock
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *feedstockRepo) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Feedstock{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *feedstockRepo) Create(ctx context.Context, f *model.Feedstock) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *feedstockRepo) Save(ctx context.Context, f *model.Feedstock) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *feedstockRepo) Usage(ctx context.Context, feedstockIDs []int64) ([]model.ProductFeedstock, error) {
	var rows []model.ProductFeedstock
	if len(feedstockIDs) == 0 {
		return rows, nil
	}
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("feedstock_id IN ?", feedstockIDs).
		Find(&rows).Error
	return rows, err
}

func (r *feedstockRepo) CountUsage(ctx context.Context, feedstockID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.ProductFeedstock{}).
		Where("feedstock_id = ?", feedstockID).
		Count(&n).Error
	return n, err
}
