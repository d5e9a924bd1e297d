package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickdrop/internal/domain"
	"quickdrop/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidStatus    = errors.New("status must be pending, start delivery or delivered")
)

// OrderPatch carries a partial order update. Nil fields are left
// untouched.
type OrderPatch struct {
	ProductName *string
	Status      *string
	Address     *string
	Price       *float64
}

// OrderService defines the interface for the order workflow
type OrderService interface {
	PlaceOrder(ctx context.Context, customerID uuid.UUID, productName, address string, price float64) (*domain.OrderDetail, error)
	ListOrders(ctx context.Context) ([]*domain.OrderDetail, error)
	ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.OrderDetail, error)
	UpdateOrder(ctx context.Context, orderID uuid.UUID, patch OrderPatch) (*domain.OrderDetail, error)
	DeleteOrder(ctx context.Context, orderID uuid.UUID) error
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	catalog   CatalogService
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository, catalog CatalogService) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		catalog:   catalog,
	}
}

// PlaceOrder creates an order for an existing customer, resolving the
// product through the catalog. The stored price is the explicit price
// when non-zero, otherwise the catalog product's price. Status starts
// at pending.
func (s *orderService) PlaceOrder(ctx context.Context, customerID uuid.UUID, productName, address string, price float64) (*domain.OrderDetail, error) {
	customer, err := s.userRepo.FindByID(ctx, customerID)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	product, err := s.catalog.ResolveOrCreateProduct(ctx, productName, price)
	if err != nil {
		return nil, err
	}

	orderPrice := price
	if orderPrice == 0 {
		orderPrice = product.Price
	}

	now := time.Now()
	order := &domain.Order{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		ProductID:  product.ID,
		Address:    address,
		Price:      orderPrice,
		Status:     domain.OrderStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return &domain.OrderDetail{
		Order:        *order,
		CustomerName: customer.Name,
		ProductName:  product.Name,
	}, nil
}

// ListOrders returns all orders joined with customer and product names
func (s *orderService) ListOrders(ctx context.Context) ([]*domain.OrderDetail, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrdersByCustomer returns one customer's orders; an empty slice,
// not an error, when there are none.
func (s *orderService) ListOrdersByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.OrderDetail, error) {
	orders, err := s.orderRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders by customer: %w", err)
	}
	return orders, nil
}

// UpdateOrder applies a partial update. A present product name is
// re-resolved through the catalog with the patch price (or the current
// order price when the patch carries none); a present status must be
// one of the three recognized states.
func (s *orderService) UpdateOrder(ctx context.Context, orderID uuid.UUID, patch OrderPatch) (*domain.OrderDetail, error) {
	current, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == repository.ErrOrderNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}

	order := current.Order

	if patch.Status != nil {
		if !domain.ValidOrderStatus(*patch.Status) {
			return nil, ErrInvalidStatus
		}
		order.Status = *patch.Status
	}

	if patch.Address != nil {
		order.Address = *patch.Address
	}

	if patch.Price != nil {
		order.Price = *patch.Price
	}

	if patch.ProductName != nil {
		resolvePrice := order.Price
		if patch.Price != nil {
			resolvePrice = *patch.Price
		}
		product, err := s.catalog.ResolveOrCreateProduct(ctx, *patch.ProductName, resolvePrice)
		if err != nil {
			return nil, err
		}
		order.ProductID = product.ID
	}

	order.UpdatedAt = time.Now()

	if err := s.orderRepo.Update(ctx, &order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	updated, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload order: %w", err)
	}

	return updated, nil
}

// DeleteOrder permanently removes an order. Deleting a missing order,
// including a second delete of the same id, returns ErrOrderNotFound.
func (s *orderService) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, orderID); err != nil {
		if err == repository.ErrOrderNotFound {
			return err
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}
