package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"product-catalog/internal/client"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrNotEditing is returned by SubmitUpdate when no row is in edit mode.
var ErrNotEditing = errors.New("no product is being edited")

// API is the subset of the product client the controller needs.
type API interface {
	List(ctx context.Context) ([]client.Product, error)
	Create(ctx context.Context, name string, price decimal.Decimal) (*client.Product, error)
	Update(ctx context.Context, product client.Product) error
	Delete(ctx context.Context, id int64) error
}

// Controller runs the effectful transitions. Every method returns the input
// state unchanged together with the error when the API call fails.
type Controller struct {
	api API
	log *logrus.Logger
}

func NewController(api API, log *logrus.Logger) *Controller {
	return &Controller{api: api, log: log}
}

// Load replaces the list with the server's current products.
func (c *Controller) Load(ctx context.Context, s State) (State, error) {
	products, err := c.api.List(ctx)
	if err != nil {
		c.log.WithContext(ctx).Warnf("Failed to load products: %+v", err)
		return s, fmt.Errorf("load products: %w", err)
	}
	return s.WithProducts(products), nil
}

// SubmitCreate creates a product from NewForm, clears the form and reloads.
func (c *Controller) SubmitCreate(ctx context.Context, s State) (State, error) {
	price, err := parsePrice(s.NewForm.Price)
	if err != nil {
		return s, err
	}

	if _, err := c.api.Create(ctx, strings.TrimSpace(s.NewForm.Name), price); err != nil {
		c.log.WithContext(ctx).Warnf("Failed to create product: %+v", err)
		return s, fmt.Errorf("create product: %w", err)
	}

	return c.Load(ctx, s.WithNewForm(ProductForm{}))
}

// SubmitUpdate saves EditForm for EditingID, leaves edit mode and reloads.
func (c *Controller) SubmitUpdate(ctx context.Context, s State) (State, error) {
	if !s.Editing() {
		return s, ErrNotEditing
	}

	price, err := parsePrice(s.EditForm.Price)
	if err != nil {
		return s, err
	}

	product := client.Product{ID: s.EditingID, Name: strings.TrimSpace(s.EditForm.Name), Price: price}
	if err := c.api.Update(ctx, product); err != nil {
		c.log.WithContext(ctx).Warnf("Failed to update product %d: %+v", s.EditingID, err)
		return s, fmt.Errorf("update product %d: %w", s.EditingID, err)
	}

	return c.Load(ctx, s.CancelEdit())
}

// Remove deletes product id and reloads.
func (c *Controller) Remove(ctx context.Context, s State, id int64) (State, error) {
	if err := c.api.Delete(ctx, id); err != nil {
		c.log.WithContext(ctx).Warnf("Failed to delete product %d: %+v", id, err)
		return s, fmt.Errorf("delete product %d: %w", id, err)
	}

	next := s
	if s.EditingID == id {
		next = s.CancelEdit()
	}
	return c.Load(ctx, next)
}

func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Decimal{}, errors.New("price is required")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid price %q", raw)
	}
	return price, nil
}
