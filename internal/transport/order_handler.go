package transport

import (
	"errors"
	"net/http"
	"time"

	"crm-backend/internal/domain"
	"crm-backend/internal/middleware"
	"crm-backend/internal/repository"
	"crm-backend/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CreateOrderRequest represents the order creation payload
type CreateOrderRequest struct {
	CustomerID uuid.UUID   `json:"customer_id" validate:"required"`
	ProductIDs []uuid.UUID `json:"product_ids"`
	OrderDate  *time.Time  `json:"order_date"`
}

// SearchOrdersRequest carries the order predicate set and ordering
type SearchOrdersRequest struct {
	TotalAmountGte *decimal.Decimal `json:"total_amount_gte"`
	TotalAmountLte *decimal.Decimal `json:"total_amount_lte"`
	OrderDateGte   *time.Time       `json:"order_date_gte"`
	OrderDateLte   *time.Time       `json:"order_date_lte"`
	CustomerName   *string          `json:"customer_name"`
	CustomerEmail  *string          `json:"customer_email"`
	ProductName    *string          `json:"product_name"`
	ProductID      *uuid.UUID       `json:"product_id"`
	ProductCount   *int             `json:"product_count"`
	HighValue      *bool            `json:"high_value"`
	OrderBy        string           `json:"order_by"`
}

// OrderMutationResponse mirrors the uniform mutation result shape
type OrderMutationResponse struct {
	Order   *domain.Order `json:"order"`
	Message string        `json:"message"`
	Success bool          `json:"success"`
}

// OrderHandler handles HTTP requests for order operations
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/", h.Create)
		})
	})
}

// List returns all orders with their products
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Get returns a single order or 404
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order ID")
		return
	}

	order, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Failed to get order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// Search applies the order filter predicates
func (h *OrderHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchOrdersRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order search decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter := repository.OrderFilter{
		TotalAmountGte: req.TotalAmountGte,
		TotalAmountLte: req.TotalAmountLte,
		OrderDateGte:   req.OrderDateGte,
		OrderDateLte:   req.OrderDateLte,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
		ProductName:    req.ProductName,
		ProductID:      req.ProductID,
		ProductCount:   req.ProductCount,
		HighValue:      req.HighValue,
	}

	orders, err := h.orderService.FilterOrders(r.Context(), filter, req.OrderBy)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidOrderField) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to filter orders", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to filter orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, orders)
}

// Create handles order creation
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order create validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.orderService.CreateOrder(r.Context(), service.OrderInput{
		CustomerID: req.CustomerID,
		ProductIDs: req.ProductIDs,
		OrderDate:  req.OrderDate,
	})

	status := http.StatusOK
	if result.Success {
		status = http.StatusCreated
		h.logger.Info("Order created",
			zap.String("order_id", result.Order.ID.String()),
			zap.String("total_amount", result.Order.TotalAmount.String()),
		)
	}

	middleware.RespondWithJSON(w, status, OrderMutationResponse{
		Order:   result.Order,
		Message: result.Message,
		Success: result.Success,
	})
}
