package transport

import (
	"errors"
	"net/http"

	"crm-backend/internal/domain"
	"crm-backend/internal/middleware"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateProductRequest represents the product creation payload
type CreateProductRequest struct {
	Name  string          `json:"name" validate:"required"`
	Price decimal.Decimal `json:"price" validate:"required"`
	Stock *int            `json:"stock"`
}

// SearchProductsRequest carries the product predicate set and ordering
type SearchProductsRequest struct {
	Name     *string          `json:"name"`
	PriceGte *decimal.Decimal `json:"price_gte"`
	PriceLte *decimal.Decimal `json:"price_lte"`
	Stock    *int             `json:"stock"`
	StockGte *int             `json:"stock_gte"`
	StockLte *int             `json:"stock_lte"`
	LowStock *bool            `json:"low_stock"`
	OrderBy  string           `json:"order_by"`
}

// ProductMutationResponse mirrors the uniform mutation result shape
type ProductMutationResponse struct {
	Product *domain.Product `json:"product"`
	Message string          `json:"message"`
	Success bool            `json:"success"`
}

// LowStockResponse reports the low-stock corrective mutation outcome
type LowStockResponse struct {
	UpdatedProducts []*domain.Product `json:"updated_products"`
	Count           int               `json:"count"`
	Message         string            `json:"message"`
	Success         bool              `json:"success"`
}

// ProductHandler handles HTTP requests for product operations
type ProductHandler struct {
	productService service.ProductService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// RegisterRoutes registers all product routes
func (h *ProductHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/", h.Create)
			r.Post("/restock-low-stock", h.RestockLowStock)
		})
	})
}

// List returns all products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.productService.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("Failed to list products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Get returns a single product or 404
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to get product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Search applies the product filter predicates
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchProductsRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product search decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter := repository.ProductFilter{
		Name:     req.Name,
		PriceGte: req.PriceGte,
		PriceLte: req.PriceLte,
		Stock:    req.Stock,
		StockGte: req.StockGte,
		StockLte: req.StockLte,
		LowStock: req.LowStock,
	}

	products, err := h.productService.FilterProducts(r.Context(), filter, req.OrderBy)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidOrderField) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to filter products", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to filter products")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, products)
}

// Create handles product creation
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Product create validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.productService.CreateProduct(r.Context(), service.ProductInput{
		Name:  req.Name,
		Price: req.Price,
		Stock: req.Stock,
	})

	status := http.StatusOK
	if result.Success {
		status = http.StatusCreated
		h.logger.Info("Product created", zap.String("product_id", result.Product.ID.String()))
	}

	middleware.RespondWithJSON(w, status, ProductMutationResponse{
		Product: result.Product,
		Message: result.Message,
		Success: result.Success,
	})
}

// RestockLowStock runs the low-stock corrective mutation
func (h *ProductHandler) RestockLowStock(w http.ResponseWriter, r *http.Request) {
	result := h.productService.UpdateLowStockProducts(r.Context())

	if result.Success {
		h.logger.Info("Low-stock products updated", zap.Int("count", result.Count))
	} else {
		h.logger.Error("Low-stock update failed", zap.String("message", result.Message))
	}

	middleware.RespondWithJSON(w, http.StatusOK, LowStockResponse{
		UpdatedProducts: result.Products,
		Count:           result.Count,
		Message:         result.Message,
		Success:         result.Success,
	})
}
