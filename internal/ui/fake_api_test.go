package ui

import (
	"context"
	"errors"
	"sort"

	"product-catalog/internal/client"

	"github.com/shopspring/decimal"
)

var errUnavailable = errors.New("service unavailable")

// fakeAPI is an in-memory API. Setting a fail* field makes that call fail.
type fakeAPI struct {
	products map[int64]client.Product
	nextID   int64
	calls    []string

	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool
}

func newFakeAPI(products ...client.Product) *fakeAPI {
	f := &fakeAPI{products: map[int64]client.Product{}, nextID: 1}
	for _, p := range products {
		f.products[p.ID] = p
		if p.ID >= f.nextID {
			f.nextID = p.ID + 1
		}
	}
	return f
}

func (f *fakeAPI) List(ctx context.Context) ([]client.Product, error) {
	f.calls = append(f.calls, "list")
	if f.failList {
		return nil, errUnavailable
	}
	products := make([]client.Product, 0, len(f.products))
	for _, p := range f.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (f *fakeAPI) Create(ctx context.Context, name string, price decimal.Decimal) (*client.Product, error) {
	f.calls = append(f.calls, "create")
	if f.failCreate {
		return nil, errUnavailable
	}
	p := client.Product{ID: f.nextID, Name: name, Price: price}
	f.products[p.ID] = p
	f.nextID++
	return &p, nil
}

func (f *fakeAPI) Update(ctx context.Context, product client.Product) error {
	f.calls = append(f.calls, "update")
	if f.failUpdate {
		return errUnavailable
	}
	if _, ok := f.products[product.ID]; !ok {
		return client.ErrNotFound
	}
	f.products[product.ID] = product
	return nil
}

func (f *fakeAPI) Delete(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "delete")
	if f.failDelete {
		return errUnavailable
	}
	if _, ok := f.products[id]; !ok {
		return client.ErrNotFound
	}
	delete(f.products, id)
	return nil
}
