package ui

import (
	"testing"

	"product-catalog/internal/client"

	"github.com/shopspring/decimal"
)

func sampleProducts() []client.Product {
	return []client.Product{
		{ID: 1, Name: "Widget", Price: decimal.RequireFromString("9.99")},
		{ID: 2, Name: "Gadget", Price: decimal.RequireFromString("12.50")},
	}
}

func TestState_StartEdit(t *testing.T) {
	s := State{}.WithProducts(sampleProducts())

	editing := s.StartEdit(2)
	if editing.EditingID != 2 {
		t.Fatalf("expected editing id 2, got %d", editing.EditingID)
	}
	if editing.EditForm != (ProductForm{Name: "Gadget", Price: "12.5"}) {
		t.Errorf("unexpected edit form %+v", editing.EditForm)
	}
	if s.Editing() {
		t.Error("StartEdit must not modify the receiver")
	}

	if missing := s.StartEdit(99); missing.Editing() {
		t.Error("expected unknown id to leave edit mode off")
	}
}

func TestState_CancelEdit(t *testing.T) {
	s := State{}.WithProducts(sampleProducts()).StartEdit(1)
	s = s.WithEditForm(ProductForm{Name: "Changed", Price: "1"})

	cancelled := s.CancelEdit()
	if cancelled.Editing() || cancelled.EditForm != (ProductForm{}) {
		t.Errorf("expected viewing state with empty form, got %+v", cancelled)
	}
	if cancelled.Products[0].Name != "Widget" {
		t.Error("CancelEdit must not change the list")
	}
}

func TestState_WithProductsCopies(t *testing.T) {
	products := sampleProducts()
	s := State{}.WithProducts(products)

	products[0].Name = "Mutated"
	if s.Products[0].Name != "Widget" {
		t.Error("expected WithProducts to copy the slice")
	}
}
