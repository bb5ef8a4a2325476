package converter

import (
	"product-catalog/internal/delivery/dto"
	"product-catalog/internal/domain/entity"
)

// ProductToResponse converts a Product entity to ProductResponse DTO
func ProductToResponse(product *entity.Product) *dto.ProductResponse {
	if product == nil {
		return nil
	}

	return &dto.ProductResponse{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
	}
}

// ProductsToResponses converts a slice of Product entities to slice of ProductResponse DTOs
func ProductsToResponses(products []entity.Product) []dto.ProductResponse {
	responses := make([]dto.ProductResponse, len(products))
	for i, product := range products {
		responses[i] = dto.ProductResponse{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
		}
	}
	return responses
}

// CreateRequestToProduct builds a new entity; the id is left for the store to assign.
func CreateRequestToProduct(req *dto.CreateProductRequest) *entity.Product {
	product := &entity.Product{Name: req.Name}
	if req.Price != nil {
		product.Price = *req.Price
	}
	return product
}

// UpdateRequestToProduct builds the replacement entity for id.
func UpdateRequestToProduct(id int64, req *dto.UpdateProductRequest) *entity.Product {
	product := &entity.Product{ID: id, Name: req.Name}
	if req.Price != nil {
		product.Price = *req.Price
	}
	return product
}
