package service

import (
	"context"
	"errors"
	"testing"

	"go-bom-catalog/internal/apperr"
	"go-bom-catalog/internal/repository"
	"go-bom-catalog/internal/testutil"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newFeedstockService(t *testing.T) (FeedstockService, *gorm.DB) {
	t.Helper()
	db := testutil.NewDB(t)
	return NewFeedstockService(repository.NewFeedstockRepo(db), nil), db
}

func feedstockInput(code, name, stock, unit string) FeedstockInput {
	return FeedstockInput{
		Code:          code,
		Name:          name,
		Stock:         decimal.RequireFromString(stock),
		UnitOfMeasure: unit,
	}
}

func TestCreateFeedstockAssignsIdentity(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, feedstockInput("F010", "Aço", "250.5", "KG"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if f.ID == 0 {
		t.Fatal("expected assigned identity")
	}

	got, err := svc.Get(ctx, f.ID)
	if err != nil || got == nil {
		t.Fatalf("Get: got=%v err=%v", got, err)
	}
	if got.Code != "F010" || !got.Stock.Equal(decimal.RequireFromString("250.5")) {
		t.Fatalf("persisted fields mismatch: %+v", got)
	}
}

func TestCreateFeedstockDuplicateCode(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, feedstockInput("F010", "Aço", "1", "KG")); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, feedstockInput("F010", "Outro", "2", "KG"))
	var ce *apperr.ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConstraintError, got %v", err)
	}
}

func TestListFeedstocksNormalizesPagination(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	for _, tc := range []struct {
		page, size         int
		wantPage, wantSize int
	}{
		{0, 0, 0, 20},
		{-1, 0, 0, 20},
		{-5, -3, 0, 20},
		{2, 999, 2, 100},
		{1, 7, 1, 7},
	} {
		page, err := svc.List(ctx, "", tc.page, tc.size)
		if err != nil {
			t.Fatalf("List(%d,%d): %v", tc.page, tc.size, err)
		}
		if page.Page != tc.wantPage || page.Size != tc.wantSize {
			t.Fatalf("List(%d,%d): got page=%d size=%d, want %d/%d",
				tc.page, tc.size, page.Page, page.Size, tc.wantPage, tc.wantSize)
		}
	}
}

func TestListFeedstocksSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, feedstockInput("F010", "Aço", "250.5", "KG")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, q := range []string{"AÇO", "aç", "f010"} {
		page, err := svc.List(ctx, q, 0, 0)
		if err != nil {
			t.Fatalf("List(%q): %v", q, err)
		}
		if page.Total != 1 || len(page.Items) != 1 || page.Items[0].Name != "Aço" {
			t.Fatalf("List(%q): total=%d items=%+v", q, page.Total, page.Items)
		}
	}
}

func TestListFeedstocksPagesAndCounts(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	for i, code := range []string{"F1", "F2", "F3", "F4", "F5"} {
		stock := decimal.NewFromInt(int64(10 * (i + 1)))
		if _, err := svc.Create(ctx, FeedstockInput{Code: code, Name: "Mat " + code, Stock: stock, UnitOfMeasure: "KG"}); err != nil {
			t.Fatalf("Create %s: %v", code, err)
		}
	}

	page, err := svc.List(ctx, "", 1, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 5 || len(page.Items) != 2 {
		t.Fatalf("total=%d items=%d", page.Total, len(page.Items))
	}
	// stock desc: page 1 of size 2 holds F3 (30) and F2 (20)
	if page.Items[0].Code != "F3" || page.Items[1].Code != "F2" {
		t.Fatalf("unexpected slice: %+v", page.Items)
	}
}

func TestUpdateFeedstockReplacesAllFields(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, feedstockInput("F010", "Aço", "250.5", "KG"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, f.ID, feedstockInput("F011", "Aço Inox", "100", "T"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Code != "F011" || updated.Name != "Aço Inox" || updated.UnitOfMeasure != "T" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if !updated.Stock.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("stock not replaced: %s", updated.Stock)
	}
}

func TestUpdateFeedstockMissingReturnsNil(t *testing.T) {
	svc, _ := newFeedstockService(t)

	updated, err := svc.Update(context.Background(), 404, feedstockInput("X", "X", "1", "KG"))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil for missing id, got %+v", updated)
	}
}

func TestDeleteFeedstockIsIdempotent(t *testing.T) {
	svc, _ := newFeedstockService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, feedstockInput("F010", "Aço", "1", "KG"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := svc.Delete(ctx, f.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = svc.Delete(ctx, f.ID)
	if err != nil || deleted {
		t.Fatalf("repeat delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = svc.Delete(ctx, 98765)
	if err != nil || deleted {
		t.Fatalf("never-existing delete: deleted=%v err=%v", deleted, err)
	}
}

func TestDeleteFeedstockStillReferencedIsRejected(t *testing.T) {
	svc, db := newFeedstockService(t)
	ctx := context.Background()

	f, err := svc.Create(ctx, feedstockInput("F010", "Aço", "1", "KG"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	p := testutil.SeedProduct(t, db, "P001", "Frame", "10.00")
	testutil.SeedAssociation(t, db, p.ID, f.ID, "0.5")

	_, err = svc.Delete(ctx, f.ID)
	var ce *apperr.ConstraintError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ConstraintError, got %v", err)
	}

	// Feedstock survives the rejected delete.
	got, err := svc.Get(ctx, f.ID)
	if err != nil || got == nil {
		t.Fatalf("Get after rejected delete: got=%v err=%v", got, err)
	}
}
