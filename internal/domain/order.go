package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order status lifecycle: pending -> start delivery -> delivered.
// Any state is reachable from any other via update; only membership in
// the set is enforced.
const (
	OrderStatusPending       = "pending"
	OrderStatusStartDelivery = "start delivery"
	OrderStatusDelivered     = "delivered"
)

// ValidOrderStatus reports whether status is one of the three
// recognized order states.
func ValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusStartDelivery, OrderStatusDelivered:
		return true
	}
	return false
}

// Order links a customer to a product with a delivery address. Price is
// stored independently of the product's catalog price; an order may
// override it at creation or update time.
type Order struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customer_id" db:"customer_id"`
	ProductID  uuid.UUID `json:"product_id" db:"product_id"`
	Address    string    `json:"address" db:"address"`
	Price      float64   `json:"price" db:"price"`
	Status     string    `json:"status" db:"status"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// OrderDetail is an order joined with the names of its customer and
// product, the shape returned by every order read.
type OrderDetail struct {
	Order
	CustomerName string `json:"customer_name" db:"customer_name"`
	ProductName  string `json:"product_name" db:"product_name"`
}
