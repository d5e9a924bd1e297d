package transport

import (
	"net/http"

	"quickdrop/internal/domain"
	"quickdrop/internal/middleware"
	"quickdrop/internal/repository"
	"quickdrop/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateOrderRequest represents the order placement payload. Price is
// optional; a zero or absent price falls back to the catalog price.
type CreateOrderRequest struct {
	CustomerID  string  `json:"customer_id" validate:"required,uuid"`
	ProductName string  `json:"productName" validate:"required"`
	Address     string  `json:"address" validate:"required"`
	Price       float64 `json:"price" validate:"omitempty,gte=0"`
}

// UpdateOrderRequest represents a partial order update; absent fields
// are left untouched.
type UpdateOrderRequest struct {
	ProductName *string  `json:"productName"`
	Status      *string  `json:"status"`
	Address     *string  `json:"address"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
}

// OrderResponse is an order joined with customer and product names,
// the shape the dashboards consume.
type OrderResponse struct {
	ID           string  `json:"id"`
	CustomerID   string  `json:"customerId"`
	CustomerName string  `json:"customerName"`
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Address      string  `json:"address"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
}

// OrderHandler handles HTTP requests for the order ledger
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

// RegisterRoutes registers the order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/", h.ListOrders)
		r.Get("/customer/{id}", h.ListOrdersByCustomer)
		r.Put("/{id}", h.UpdateOrder)
		r.Delete("/{id}", h.DeleteOrder)
	})
}

// CreateOrder places an order for an existing customer
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest

	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	customerID, err := uuid.Parse(req.CustomerID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	order, err := h.orderService.PlaceOrder(r.Context(), customerID, req.ProductName, req.Address, req.Price)
	if err != nil {
		if err == service.ErrCustomerNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "customer not found")
			return
		}
		h.logger.Error("Order creation failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create order")
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("customer_id", order.CustomerID.String()),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, toOrderResponse(order))
}

// ListOrders returns every order, the delivery dashboard's feed
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context())
	if err != nil {
		h.logger.Error("Order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toOrderResponses(orders))
}

// ListOrdersByCustomer returns one customer's orders; an empty list is
// a 200, not an error.
func (h *OrderHandler) ListOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	orders, err := h.orderService.ListOrdersByCustomer(r.Context(), customerID)
	if err != nil {
		h.logger.Error("Order listing failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, toOrderResponses(orders))
}

// UpdateOrder applies a partial update to an order
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	var req UpdateOrderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Order update validation failed", zap.Error(err))

		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}

		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orderService.UpdateOrder(r.Context(), orderID, service.OrderPatch{
		ProductName: req.ProductName,
		Status:      req.Status,
		Address:     req.Address,
		Price:       req.Price,
	})
	if err != nil {
		switch err {
		case repository.ErrOrderNotFound:
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
		case service.ErrInvalidStatus:
			middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Order update failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update order")
		}
		return
	}

	h.logger.Info("Order updated", zap.String("order_id", order.ID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, toOrderResponse(order))
}

// DeleteOrder permanently removes an order
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orderService.DeleteOrder(r.Context(), orderID); err != nil {
		if err == repository.ErrOrderNotFound {
			middleware.RespondWithError(w, http.StatusNotFound, "order not found")
			return
		}
		h.logger.Error("Order deletion failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete order")
		return
	}

	h.logger.Info("Order deleted", zap.String("order_id", orderID.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "order deleted"})
}

func toOrderResponse(order *domain.OrderDetail) OrderResponse {
	return OrderResponse{
		ID:           order.ID.String(),
		CustomerID:   order.CustomerID.String(),
		CustomerName: order.CustomerName,
		ProductID:    order.ProductID.String(),
		ProductName:  order.ProductName,
		Address:      order.Address,
		Price:        order.Price,
		Status:       order.Status,
	}
}

func toOrderResponses(orders []*domain.OrderDetail) []OrderResponse {
	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	return response
}
