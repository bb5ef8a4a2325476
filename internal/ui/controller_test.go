package ui

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"product-catalog/internal/client"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

func newTestController(api API) *Controller {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewController(api, log)
}

func TestController_CreateUpdateRemove(t *testing.T) {
	api := newFakeAPI()
	c := newTestController(api)
	ctx := context.Background()

	s, err := c.Load(ctx, State{})
	if err != nil {
		t.Fatalf("Load() unexpected error = %v", err)
	}
	if len(s.Products) != 0 {
		t.Fatalf("expected empty list, got %+v", s.Products)
	}

	s = s.WithNewForm(ProductForm{Name: "Widget", Price: "9.99"})
	s, err = c.SubmitCreate(ctx, s)
	if err != nil {
		t.Fatalf("SubmitCreate() unexpected error = %v", err)
	}
	if s.NewForm != (ProductForm{}) {
		t.Errorf("expected new form to be cleared, got %+v", s.NewForm)
	}
	if len(s.Products) != 1 || s.Products[0].Name != "Widget" {
		t.Fatalf("expected list to be reloaded, got %+v", s.Products)
	}
	id := s.Products[0].ID

	s = s.StartEdit(id).WithEditForm(ProductForm{Name: "Widget", Price: "12.50"})
	s, err = c.SubmitUpdate(ctx, s)
	if err != nil {
		t.Fatalf("SubmitUpdate() unexpected error = %v", err)
	}
	if s.Editing() {
		t.Error("expected edit mode to end after save")
	}
	if !s.Products[0].Price.Equal(decimal.RequireFromString("12.50")) {
		t.Errorf("expected price 12.50, got %s", s.Products[0].Price)
	}

	s, err = c.Remove(ctx, s, id)
	if err != nil {
		t.Fatalf("Remove() unexpected error = %v", err)
	}
	if len(s.Products) != 0 {
		t.Errorf("expected empty list after remove, got %+v", s.Products)
	}

	want := []string{"list", "create", "list", "update", "list", "delete", "list"}
	if !reflect.DeepEqual(api.calls, want) {
		t.Errorf("expected calls %v, got %v", want, api.calls)
	}
}

func TestController_FailureKeepsState(t *testing.T) {
	ctx := context.Background()
	initial := State{}.WithProducts(sampleProducts())

	tests := []struct {
		name  string
		setup func(*fakeAPI)
		state State
		op    func(*Controller, State) (State, error)
	}{
		{
			name:  "create",
			setup: func(f *fakeAPI) { f.failCreate = true },
			state: initial.WithNewForm(ProductForm{Name: "New", Price: "1"}),
			op: func(c *Controller, s State) (State, error) {
				return c.SubmitCreate(ctx, s)
			},
		},
		{
			name:  "update",
			setup: func(f *fakeAPI) { f.failUpdate = true },
			state: initial.StartEdit(1).WithEditForm(ProductForm{Name: "Changed", Price: "2"}),
			op: func(c *Controller, s State) (State, error) {
				return c.SubmitUpdate(ctx, s)
			},
		},
		{
			name:  "remove",
			setup: func(f *fakeAPI) { f.failDelete = true },
			state: initial,
			op: func(c *Controller, s State) (State, error) {
				return c.Remove(ctx, s, 1)
			},
		},
		{
			name:  "load",
			setup: func(f *fakeAPI) { f.failList = true },
			state: initial,
			op: func(c *Controller, s State) (State, error) {
				return c.Load(ctx, s)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI(sampleProducts()...)
			tt.setup(api)

			got, err := tt.op(newTestController(api), tt.state)
			if !errors.Is(err, errUnavailable) {
				t.Fatalf("expected errUnavailable, got %v", err)
			}
			if !reflect.DeepEqual(got, tt.state) {
				t.Errorf("expected state to be unchanged, got %+v", got)
			}
		})
	}
}

func TestController_RefetchFailure(t *testing.T) {
	api := newFakeAPI(sampleProducts()...)
	api.failList = true
	c := newTestController(api)

	s := State{}.WithProducts(sampleProducts()).WithNewForm(ProductForm{Name: "New", Price: "3"})
	got, err := c.SubmitCreate(context.Background(), s)
	if !errors.Is(err, errUnavailable) {
		t.Fatalf("expected errUnavailable, got %v", err)
	}
	if got.NewForm != (ProductForm{}) {
		t.Error("expected the form to be cleared after a successful create")
	}
	if len(got.Products) != 2 {
		t.Errorf("expected the stale list to be kept, got %d products", len(got.Products))
	}
	if len(api.products) != 3 {
		t.Errorf("expected the create to reach the API, got %d products", len(api.products))
	}
}

func TestController_InputErrors(t *testing.T) {
	api := newFakeAPI(sampleProducts()...)
	c := newTestController(api)
	ctx := context.Background()
	s := State{}.WithProducts(sampleProducts())

	if _, err := c.SubmitUpdate(ctx, s); !errors.Is(err, ErrNotEditing) {
		t.Errorf("expected ErrNotEditing, got %v", err)
	}

	_, err := c.SubmitCreate(ctx, s.WithNewForm(ProductForm{Name: "Widget", Price: "cheap"}))
	if err == nil || !strings.Contains(err.Error(), "invalid price") {
		t.Errorf("expected invalid price error, got %v", err)
	}

	if _, err := c.Remove(ctx, s, 99); !errors.Is(err, client.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if len(api.calls) != 1 || api.calls[0] != "delete" {
		t.Errorf("expected only the delete to reach the API, got %v", api.calls)
	}
}

func TestController_RemoveEditedRowLeavesEditMode(t *testing.T) {
	c := newTestController(newFakeAPI(sampleProducts()...))
	s := State{}.WithProducts(sampleProducts()).StartEdit(2)

	got, err := c.Remove(context.Background(), s, 2)
	if err != nil {
		t.Fatalf("Remove() unexpected error = %v", err)
	}
	if got.Editing() {
		t.Error("expected edit mode to end when the edited row is removed")
	}
}
