package service

import (
	"context"
	"testing"
	"time"

	"quickdrop/internal/domain"
	"quickdrop/internal/repository"

	"github.com/google/uuid"
)

type mockOrderRepository struct {
	orders   map[uuid.UUID]*domain.Order
	users    *mockUserRepository
	products *mockProductRepository
}

func newMockOrderRepository(users *mockUserRepository, products *mockProductRepository) *mockOrderRepository {
	return &mockOrderRepository{
		orders:   make(map[uuid.UUID]*domain.Order),
		users:    users,
		products: products,
	}
}

func (m *mockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepository) Update(ctx context.Context, order *domain.Order) error {
	if _, exists := m.orders[order.ID]; !exists {
		return repository.ErrOrderNotFound
	}
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, exists := m.orders[id]; !exists {
		return repository.ErrOrderNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.OrderDetail, error) {
	order, exists := m.orders[id]
	if !exists {
		return nil, repository.ErrOrderNotFound
	}
	return m.join(ctx, order)
}

func (m *mockOrderRepository) List(ctx context.Context) ([]*domain.OrderDetail, error) {
	details := []*domain.OrderDetail{}
	for _, order := range m.orders {
		detail, err := m.join(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (m *mockOrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*domain.OrderDetail, error) {
	details := []*domain.OrderDetail{}
	for _, order := range m.orders {
		if order.CustomerID != customerID {
			continue
		}
		detail, err := m.join(ctx, order)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}
	return details, nil
}

func (m *mockOrderRepository) join(ctx context.Context, order *domain.Order) (*domain.OrderDetail, error) {
	customer, err := m.users.FindByID(ctx, order.CustomerID)
	if err != nil {
		return nil, err
	}
	product, err := m.products.FindByID(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}
	return &domain.OrderDetail{
		Order:        *order,
		CustomerName: customer.Name,
		ProductName:  product.Name,
	}, nil
}

type orderFixture struct {
	service  OrderService
	users    *mockUserRepository
	products *mockProductRepository
	orders   *mockOrderRepository
	customer *domain.User
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	users := newMockUserRepository()
	products := newMockProductRepository()
	orders := newMockOrderRepository(users, products)

	customer := &domain.User{
		ID:        uuid.New(),
		Name:      "Grace",
		Email:     "grace@example.com",
		Type:      domain.UserTypeCustomer,
		CreatedAt: time.Now(),
	}
	if err := users.Create(context.Background(), customer); err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}

	return &orderFixture{
		service:  NewOrderService(orders, users, NewCatalogService(products)),
		users:    users,
		products: products,
		orders:   orders,
		customer: customer,
	}
}

func TestPlaceOrderCreatesProductOnce(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// " Pizza " normalizes to "pizza"; the catalog has no such entry, so
	// exactly one is created at price 0.
	order, err := f.service.PlaceOrder(ctx, f.customer.ID, " Pizza ", "1 Main St", 0)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected status pending, got %q", order.Status)
	}
	if order.Price != 0 {
		t.Errorf("expected price 0, got %v", order.Price)
	}
	if order.ProductName != "pizza" {
		t.Errorf("expected product name %q, got %q", "pizza", order.ProductName)
	}
	if order.CustomerName != "Grace" {
		t.Errorf("expected customer name Grace, got %q", order.CustomerName)
	}
	if len(f.products.products) != 1 {
		t.Fatalf("expected 1 catalog entry, got %d", len(f.products.products))
	}

	// A second order with a casing/whitespace variant reuses the entry.
	second, err := f.service.PlaceOrder(ctx, f.customer.ID, "PIZZA  ", "2 Side St", 0)
	if err != nil {
		t.Fatalf("second place order failed: %v", err)
	}
	if second.ProductID != order.ProductID {
		t.Error("second order did not reuse the existing product")
	}
	if len(f.products.products) != 1 {
		t.Errorf("expected 1 catalog entry after reuse, got %d", len(f.products.products))
	}
}

func TestPlaceOrderPriceFallsBackToCatalog(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	catalog := NewCatalogService(f.products)
	if _, err := catalog.ResolveOrCreateProduct(ctx, "sushi", 22.50); err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	// No explicit price: the catalog price applies.
	order, err := f.service.PlaceOrder(ctx, f.customer.ID, "Sushi", "1 Main St", 0)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if order.Price != 22.50 {
		t.Errorf("expected catalog price 22.50, got %v", order.Price)
	}

	// Explicit non-zero price overrides the catalog price.
	override, err := f.service.PlaceOrder(ctx, f.customer.ID, "Sushi", "1 Main St", 30)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}
	if override.Price != 30 {
		t.Errorf("expected override price 30, got %v", override.Price)
	}
}

func TestPlaceOrderUnknownCustomer(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), uuid.New(), "Pizza", "1 Main St", 0)
	if err != ErrCustomerNotFound {
		t.Errorf("expected ErrCustomerNotFound, got %v", err)
	}
	if len(f.products.products) != 0 {
		t.Error("order against a missing customer still mutated the catalog")
	}
}

func TestUpdateOrderStatusOnly(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.PlaceOrder(ctx, f.customer.ID, "Pizza", "1 Main St", 18)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	status := domain.OrderStatusStartDelivery
	updated, err := f.service.UpdateOrder(ctx, order.ID, OrderPatch{Status: &status})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.Status != domain.OrderStatusStartDelivery {
		t.Errorf("expected status %q, got %q", domain.OrderStatusStartDelivery, updated.Status)
	}
	if updated.ProductID != order.ProductID {
		t.Error("status-only update changed the product reference")
	}
	if updated.Address != order.Address {
		t.Error("status-only update changed the address")
	}
	if updated.Price != order.Price {
		t.Error("status-only update changed the price")
	}
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.PlaceOrder(ctx, f.customer.ID, "Pizza", "1 Main St", 18)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	status := "teleported"
	if _, err := f.service.UpdateOrder(ctx, order.ID, OrderPatch{Status: &status}); err != ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestUpdateOrderReassignsProduct(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.PlaceOrder(ctx, f.customer.ID, "Pizza", "1 Main St", 18)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	// New product name with no patch price: the resolve uses the current
	// order price for the freshly created entry.
	name := " Ramen "
	updated, err := f.service.UpdateOrder(ctx, order.ID, OrderPatch{ProductName: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	if updated.ProductName != "ramen" {
		t.Errorf("expected product name %q, got %q", "ramen", updated.ProductName)
	}
	if updated.ProductID == order.ProductID {
		t.Error("product reference was not reassigned")
	}

	ramen, err := f.products.FindByName(ctx, "ramen")
	if err != nil {
		t.Fatalf("ramen missing from catalog: %v", err)
	}
	if ramen.Price != 18 {
		t.Errorf("expected new catalog entry at current order price 18, got %v", ramen.Price)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	f := newOrderFixture(t)

	address := "2 Side St"
	_, err := f.service.UpdateOrder(context.Background(), uuid.New(), OrderPatch{Address: &address})
	if err != repository.ErrOrderNotFound {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestDeleteOrderTwice(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.service.PlaceOrder(ctx, f.customer.ID, "Pizza", "1 Main St", 18)
	if err != nil {
		t.Fatalf("place order failed: %v", err)
	}

	if err := f.service.DeleteOrder(ctx, order.ID); err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if err := f.service.DeleteOrder(ctx, order.ID); err != repository.ErrOrderNotFound {
		t.Errorf("expected ErrOrderNotFound on second delete, got %v", err)
	}
}

func TestListOrdersByCustomerEmpty(t *testing.T) {
	f := newOrderFixture(t)

	orders, err := f.service.ListOrdersByCustomer(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if orders == nil {
		t.Fatal("expected an empty slice, got nil")
	}
	if len(orders) != 0 {
		t.Errorf("expected no orders, got %d", len(orders))
	}
}
