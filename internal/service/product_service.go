package service

import (
	"context"
	"errors"

	"go-bom-catalog/internal/apperr"
	"go-bom-catalog/internal/model"
	"go-bom-catalog/internal/repository"
	"go-bom-catalog/internal/ws"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductInput carries the scalar fields of a product.
type ProductInput struct {
	Code      string
	Name      string
	UnitPrice decimal.Decimal
}

// FeedstockQuantity names one feedstock a product consumes and how much of it
// goes into one unit.
type FeedstockQuantity struct {
	FeedstockID int64
	Quantity    decimal.Decimal
}

type ProductService interface {
	List(ctx context.Context, q string, page, size int) (Page[model.Product], error)
	Get(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, in ProductInput, feedstocks []FeedstockQuantity) (*model.Product, error)
	Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type productService struct {
	repo repository.ProductRepository
	db   *gorm.DB
	hub  *ws.Hub
}

func NewProductService(repo repository.ProductRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{repo: repo, db: db, hub: hub}
}

func (s *productService) List(ctx context.Context, q string, page, size int) (Page[model.Product], error) {
	page, size = normalizePage(page, size)

	query := s.repo.SearchWithFeedstocks(ctx, q)
	total, err := query.Count()
	if err != nil {
		return Page[model.Product]{}, err
	}
	items, err := query.Page(page*size, size)
	if err != nil {
		return Page[model.Product]{}, err
	}

	return Page[model.Product]{Items: items, Total: total, Page: page, Size: size}, nil
}

// Get returns the product with its associations, or (nil, nil) when the id
// does not exist.
func (s *productService) Get(ctx context.Context, id int64) (*model.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// Create persists the product and its association rows as one unit. The
// product row goes in first so the join rows have an identity to reference;
// any missing feedstock aborts the transaction, leaving nothing behind.
func (s *productService) Create(ctx context.Context, in ProductInput, feedstocks []FeedstockQuantity) (*model.Product, error) {
	p := &model.Product{
		Code:      in.Code,
		Name:      in.Name,
		UnitPrice: in.UnitPrice,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Constraint("product code already exists: %s", in.Code)
			}
			return err
		}

		rows := make([]model.ProductFeedstock, 0, len(feedstocks))
		seen := make(map[int64]struct{}, len(feedstocks))
		for _, item := range feedstocks {
			if _, dup := seen[item.FeedstockID]; dup {
				return apperr.Constraint("feedstock %d is associated more than once", item.FeedstockID)
			}
			seen[item.FeedstockID] = struct{}{}

			var f model.Feedstock
			if err := tx.First(&f, "id = ?", item.FeedstockID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("feedstock", item.FeedstockID)
				}
				return err
			}
			rows = append(rows, model.ProductFeedstock{
				ProductID:   p.ID,
				FeedstockID: f.ID,
				Quantity:    item.Quantity,
				Feedstock:   &f,
			})
		}

		if len(rows) > 0 {
			if err := tx.Omit(clause.Associations).Create(&rows).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return apperr.Constraint("product has a duplicate feedstock association")
				}
				return err
			}
		}
		p.Feedstocks = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.hub.Publish("product_created", p)
	return p, nil
}

// Update replaces the scalar fields only; the association set is untouched.
func (s *productService) Update(ctx context.Context, id int64, in ProductInput) (*model.Product, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil || p == nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"code":       in.Code,
			"name":       in.Name,
			"unit_price": in.UnitPrice,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Constraint("product code already exists: %s", in.Code)
		}
		return nil, err
	}

	p.Code = in.Code
	p.Name = in.Name
	p.UnitPrice = in.UnitPrice

	go s.hub.Publish("product_updated", p)
	return p, nil
}

// Delete removes the product and every association it owns in one unit.
func (s *productService) Delete(ctx context.Context, id int64) (bool, error) {
	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		go s.hub.Publish("product_deleted", map[string]int64{"id": id})
	}
	return deleted, nil
}
