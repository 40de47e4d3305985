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
	"go.uber.org/zap"
)

// CreateCustomerRequest represents the customer creation payload
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// BulkCreateCustomersRequest represents the bulk creation payload
type BulkCreateCustomersRequest struct {
	Customers []CreateCustomerRequest `json:"customers" validate:"required,min=1,dive"`
}

// SearchCustomersRequest carries the customer predicate set and ordering
type SearchCustomersRequest struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	PhonePattern *string    `json:"phone_pattern"`
	CreatedAtGte *time.Time `json:"created_at_gte"`
	CreatedAtLte *time.Time `json:"created_at_lte"`
	OrderBy      string     `json:"order_by"`
}

// CustomerMutationResponse mirrors the uniform mutation result shape
type CustomerMutationResponse struct {
	Customer *domain.Customer `json:"customer"`
	Message  string           `json:"message"`
	Success  bool             `json:"success"`
}

// BulkCustomersResponse carries the per-item outcomes of a bulk create
type BulkCustomersResponse struct {
	Customers    []*domain.Customer `json:"customers"`
	Errors       []string           `json:"errors"`
	SuccessCount int                `json:"success_count"`
}

// CustomerHandler handles HTTP requests for customer operations
type CustomerHandler struct {
	customerService service.CustomerService
	logger          *zap.Logger
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customerService service.CustomerService, logger *zap.Logger) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		logger:          logger,
	}
}

// RegisterRoutes registers all customer routes
func (h *CustomerHandler) RegisterRoutes(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Route("/api/customers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/search", h.Search)

		r.Group(func(r chi.Router) {
			r.Use(rateLimit)
			r.Post("/", h.Create)
			r.Post("/bulk", h.BulkCreate)
		})
	})
}

// List returns all customers
func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customerService.ListCustomers(r.Context())
	if err != nil {
		h.logger.Error("Failed to list customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

// Get returns a single customer or 404
func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrCustomerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Failed to get customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to get customer")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customer)
}

// Search applies the customer filter predicates
func (h *CustomerHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchCustomersRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Customer search decode failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	filter := repository.CustomerFilter{
		Name:         req.Name,
		Email:        req.Email,
		PhonePattern: req.PhonePattern,
		CreatedAtGte: req.CreatedAtGte,
		CreatedAtLte: req.CreatedAtLte,
	}

	customers, err := h.customerService.FilterCustomers(r.Context(), filter, req.OrderBy)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidOrderField) {
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("Failed to filter customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to filter customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, customers)
}

// Create handles customer creation
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Customer create validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := h.customerService.CreateCustomer(r.Context(), service.CustomerInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})

	status := http.StatusOK
	if result.Success {
		status = http.StatusCreated
		h.logger.Info("Customer created", zap.String("customer_id", result.Customer.ID.String()))
	}

	middleware.RespondWithJSON(w, status, CustomerMutationResponse{
		Customer: result.Customer,
		Message:  result.Message,
		Success:  result.Success,
	})
}

// BulkCreate handles bulk customer creation with best-effort accumulation
func (h *CustomerHandler) BulkCreate(w http.ResponseWriter, r *http.Request) {
	var req BulkCreateCustomersRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Bulk customer create validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := make([]service.CustomerInput, 0, len(req.Customers))
	for _, c := range req.Customers {
		inputs = append(inputs, service.CustomerInput{
			Name:  c.Name,
			Email: c.Email,
			Phone: c.Phone,
		})
	}

	result := h.customerService.BulkCreateCustomers(r.Context(), inputs)

	h.logger.Info("Bulk customer create completed",
		zap.Int("requested", len(inputs)),
		zap.Int("created", result.SuccessCount),
		zap.Int("failed", len(result.Errors)),
	)

	middleware.RespondWithJSON(w, http.StatusOK, BulkCustomersResponse{
		Customers:    result.Customers,
		Errors:       result.Errors,
		SuccessCount: result.SuccessCount,
	})
}
