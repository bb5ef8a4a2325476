package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"product-catalog/internal/delivery/dto"
	"product-catalog/internal/usecase"
	"product-catalog/pkg/response"
	"product-catalog/pkg/validator"

	"github.com/gorilla/mux"
)

// ProductsPath is the collection path; item paths are ProductsPath + "/{id}".
const ProductsPath = "/api/products"

type ProductHandler struct {
	productUsecase usecase.ProductUsecase
	validator      *validator.CustomValidator
}

func NewProductHandler(productUsecase usecase.ProductUsecase, validator *validator.CustomValidator) *ProductHandler {
	return &ProductHandler{
		productUsecase: productUsecase,
		validator:      validator,
	}
}

// List handles GET /api/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get products")
		return
	}

	response.JSON(w, http.StatusOK, products)
}

// Get handles GET /api/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	product, err := h.productUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to get product")
		}
		return
	}

	response.JSON(w, http.StatusOK, product)
}

// Create handles POST /api/products
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	product, err := h.productUsecase.Create(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create product")
		return
	}

	response.Created(w, fmt.Sprintf("%s/%d", ProductsPath, product.ID), product)
}

// Update handles PUT /api/products/{id}
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	err := h.productUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrIDMismatch):
			response.BadRequest(w, "Product id in path does not match payload")
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to update product")
		}
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/products/{id}
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}

	err := h.productUsecase.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrProductNotFound):
			response.NotFound(w, "Product not found")
		default:
			response.InternalServerError(w, "Failed to delete product")
		}
		return
	}

	response.NoContent(w)
}

// productID parses the {id} path variable, writing 400 when it is not an integer.
func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid product ID")
		return 0, false
	}
	return id, true
}
