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
)

// FeedstockInput carries the writable fields of a feedstock. Updates replace
// every field, there is no partial form.
type FeedstockInput struct {
	Code          string
	Name          string
	Stock         decimal.Decimal
	UnitOfMeasure string
}

type FeedstockService interface {
	List(ctx context.Context, q string, page, size int) (Page[model.Feedstock], error)
	Get(ctx context.Context, id int64) (*model.Feedstock, error)
	Usage(ctx context.Context, ids []int64) (map[int64][]model.ProductFeedstock, error)
	Create(ctx context.Context, in FeedstockInput) (*model.Feedstock, error)
	Update(ctx context.Context, id int64, in FeedstockInput) (*model.Feedstock, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type feedstockService struct {
	repo repository.FeedstockRepository
	hub  *ws.Hub
}

func NewFeedstockService(repo repository.FeedstockRepository, hub *ws.Hub) FeedstockService {
	return &feedstockService{repo: repo, hub: hub}
}

func (s *feedstockService) List(ctx context.Context, q string, page, size int) (Page[model.Feedstock], error) {
	page, size = normalizePage(page, size)

	query := s.repo.Search(ctx, q)
	total, err := query.Count()
	if err != nil {
		return Page[model.Feedstock]{}, err
	}
	items, err := query.Page(page*size, size)
	if err != nil {
		return Page[model.Feedstock]{}, err
	}

	return Page[model.Feedstock]{Items: items, Total: total, Page: page, Size: size}, nil
}

// Get returns the feedstock or (nil, nil) when the id does not exist. Absence
// is a normal outcome here, not an error.
func (s *feedstockService) Get(ctx context.Context, id int64) (*model.Feedstock, error) {
	return s.repo.FindByID(ctx, id)
}

// Usage groups the association rows of the given feedstocks by feedstock id,
// one query for the whole page.
func (s *feedstockService) Usage(ctx context.Context, ids []int64) (map[int64][]model.ProductFeedstock, error) {
	rows, err := s.repo.Usage(ctx, ids)
	if err != nil {
		return nil, err
	}
	byFeedstock := make(map[int64][]model.ProductFeedstock, len(ids))
	for _, row := range rows {
		byFeedstock[row.FeedstockID] = append(byFeedstock[row.FeedstockID], row)
	}
	return byFeedstock, nil
}

func (s *feedstockService) Create(ctx context.Context, in FeedstockInput) (*model.Feedstock, error) {
	f := &model.Feedstock{
		Code:          in.Code,
		Name:          in.Name,
		Stock:         in.Stock,
		UnitOfMeasure: in.UnitOfMeasure,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Constraint("feedstock code already exists: %s", in.Code)
		}
		return nil, err
	}

	go s.hub.Publish("feedstock_created", f)
	return f, nil
}

func (s *feedstockService) Update(ctx context.Context, id int64, in FeedstockInput) (*model.Feedstock, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil || f == nil {
		return nil, err
	}

	f.Code = in.Code
	f.Name = in.Name
	f.Stock = in.Stock
	f.UnitOfMeasure = in.UnitOfMeasure

	if err := s.repo.Save(ctx, f); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Constraint("feedstock code already exists: %s", in.Code)
		}
		return nil, err
	}

	go s.hub.Publish("feedstock_updated", f)
	return f, nil
}

// Delete removes the feedstock and reports whether a row existed. A feedstock
// still consumed by a product is never deleted: the reference check plus the
// store's RESTRICT constraint both surface as a ConstraintError, so
// associations cannot be orphaned.
func (s *feedstockService) Delete(ctx context.Context, id int64) (bool, error) {
	refs, err := s.repo.CountUsage(ctx, id)
	if err != nil {
		return false, err
	}
	if refs > 0 {
		return false, apperr.Constraint("feedstock %d is referenced by %d product(s)", id, refs)
	}

	deleted, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return false, apperr.Constraint("feedstock %d is referenced by a product", id)
		}
		return false, err
	}

	if deleted {
		go s.hub.Publish("feedstock_deleted", map[string]int64{"id": id})
	}
	return deleted, nil
}
