package repository

import (
	"context"

	"product-catalog/internal/domain/entity"
)

// ProductRepository persists products. Update and Delete report the number of
// affected rows so callers can tell a missing id from a successful write.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
}
