package usecase

import (
	"context"
	"errors"
	"fmt"

	"product-catalog/internal/converter"
	"product-catalog/internal/delivery/dto"
	"product-catalog/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrIDMismatch      = errors.New("product id in path does not match payload")
)

type ProductUsecase interface {
	Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error)
	GetAll(ctx context.Context) ([]dto.ProductResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error)
	Update(ctx context.Context, id int64, req *dto.UpdateProductRequest) error
	Delete(ctx context.Context, id int64) error
}

type productUsecase struct {
	log         *logrus.Logger
	productRepo repository.ProductRepository
}

func NewProductUsecase(log *logrus.Logger, productRepo repository.ProductRepository) ProductUsecase {
	return &productUsecase{
		log:         log,
		productRepo: productRepo,
	}
}

func (u *productUsecase) Create(ctx context.Context, req *dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product := converter.CreateRequestToProduct(req)

	if err := u.productRepo.Create(ctx, product); err != nil {
		u.log.WithContext(ctx).Warnf("Failed to create product: %+v", err)
		return nil, fmt.Errorf("create product: %w", err)
	}

	u.log.WithContext(ctx).WithField("product_id", product.ID).Info("Product created")
	return converter.ProductToResponse(product), nil
}

func (u *productUsecase) GetAll(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := u.productRepo.FindAll(ctx)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find all products: %+v", err)
		return nil, fmt.Errorf("list products: %w", err)
	}

	return converter.ProductsToResponses(products), nil
}

func (u *productUsecase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := u.productRepo.FindByID(ctx, id)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to find product %d: %+v", id, err)
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	return converter.ProductToResponse(product), nil
}

// Update replaces name and price of product id. Concurrent updates are
// last-writer-wins; no version check is made.
func (u *productUsecase) Update(ctx context.Context, id int64, req *dto.UpdateProductRequest) error {
	if req.ID != id {
		return ErrIDMismatch
	}

	affected, err := u.productRepo.Update(ctx, converter.UpdateRequestToProduct(id, req))
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to update product %d: %+v", id, err)
		return fmt.Errorf("update product %d: %w", id, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	u.log.WithContext(ctx).WithField("product_id", id).Info("Product updated")
	return nil
}

func (u *productUsecase) Delete(ctx context.Context, id int64) error {
	affected, err := u.productRepo.Delete(ctx, id)
	if err != nil {
		u.log.WithContext(ctx).Warnf("Failed to delete product %d: %+v", id, err)
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	u.log.WithContext(ctx).WithField("product_id", id).Info("Product deleted")
	return nil
}
