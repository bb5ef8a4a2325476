package dto

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers rather than quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Request DTOs

// CreateProductRequest ignores any id sent by the client.
type CreateProductRequest struct {
	Name  string           `json:"name" validate:"required,notblank,max=255"`
	Price *decimal.Decimal `json:"price" validate:"required,price"`
}

// UpdateProductRequest carries the full product; ID must match the path id.
type UpdateProductRequest struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name" validate:"required,notblank,max=255"`
	Price *decimal.Decimal `json:"price" validate:"required,price"`
}

// Response DTOs

type ProductResponse struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}
