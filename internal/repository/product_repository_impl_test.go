package repository

import (
	"context"
	"testing"

	"product-catalog/internal/domain/entity"
	"product-catalog/internal/testutil"

	"github.com/shopspring/decimal"
)

func TestProductRepository_CreateAndFind(t *testing.T) {
	repo := NewProductRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	first := &entity.Product{Name: "Widget", Price: decimal.RequireFromString("9.99")}
	second := &entity.Product{Name: "Gadget", Price: decimal.RequireFromString("4.50")}
	for _, p := range []*entity.Product{first, second} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() unexpected error = %v", err)
		}
	}

	if first.ID == 0 || second.ID == 0 || first.ID == second.ID {
		t.Fatalf("expected distinct assigned ids, got %d and %d", first.ID, second.ID)
	}

	products, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() unexpected error = %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != first.ID || products[1].ID != second.ID {
		t.Errorf("expected products ordered by id, got %d then %d", products[0].ID, products[1].ID)
	}

	found, err := repo.FindByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("FindByID() unexpected error = %v", err)
	}
	if found == nil {
		t.Fatal("FindByID() returned nil for existing product")
	}
	if found.Name != "Widget" || !found.Price.Equal(decimal.RequireFromString("9.99")) {
		t.Errorf("unexpected product %+v", found)
	}
}

func TestProductRepository_FindAll_Empty(t *testing.T) {
	repo := NewProductRepository(testutil.NewTestDB(t))

	products, err := repo.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll() unexpected error = %v", err)
	}
	if products == nil || len(products) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", products)
	}
}

func TestProductRepository_FindByID_Missing(t *testing.T) {
	repo := NewProductRepository(testutil.NewTestDB(t))

	found, err := repo.FindByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("FindByID() unexpected error = %v", err)
	}
	if found != nil {
		t.Errorf("expected nil for missing product, got %+v", found)
	}
}

func TestProductRepository_Update(t *testing.T) {
	repo := NewProductRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	target := &entity.Product{Name: "Widget", Price: decimal.RequireFromString("9.99")}
	other := &entity.Product{Name: "Gadget", Price: decimal.RequireFromString("4.50")}
	repo.Create(ctx, target)
	repo.Create(ctx, other)

	affected, err := repo.Update(ctx, &entity.Product{ID: target.ID, Name: "Widget", Price: decimal.Zero})
	if err != nil {
		t.Fatalf("Update() unexpected error = %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 affected row, got %d", affected)
	}

	updated, _ := repo.FindByID(ctx, target.ID)
	if !updated.Price.Equal(decimal.Zero) {
		t.Errorf("expected price updated to zero, got %s", updated.Price)
	}

	untouched, _ := repo.FindByID(ctx, other.ID)
	if untouched.Name != "Gadget" || !untouched.Price.Equal(decimal.RequireFromString("4.50")) {
		t.Errorf("expected other product unchanged, got %+v", untouched)
	}

	affected, err = repo.Update(ctx, &entity.Product{ID: 999, Name: "Ghost", Price: decimal.NewFromInt(1)})
	if err != nil {
		t.Fatalf("Update() unexpected error = %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 affected rows for missing id, got %d", affected)
	}
	if ghost, _ := repo.FindByID(ctx, 999); ghost != nil {
		t.Errorf("update of missing id must not insert, found %+v", ghost)
	}
}

func TestProductRepository_Delete_DoesNotReuseIDs(t *testing.T) {
	repo := NewProductRepository(testutil.NewTestDB(t))
	ctx := context.Background()

	first := &entity.Product{Name: "Widget", Price: decimal.NewFromInt(1)}
	repo.Create(ctx, first)

	affected, err := repo.Delete(ctx, first.ID)
	if err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 affected row, got %d", affected)
	}

	affected, err = repo.Delete(ctx, first.ID)
	if err != nil {
		t.Fatalf("Delete() unexpected error = %v", err)
	}
	if affected != 0 {
		t.Errorf("expected 0 affected rows on second delete, got %d", affected)
	}

	second := &entity.Product{Name: "Gadget", Price: decimal.NewFromInt(2)}
	repo.Create(ctx, second)
	if second.ID == first.ID {
		t.Errorf("id %d was reused after delete", first.ID)
	}
}
