package domain

import (
	"time"

	"github.com/google/uuid"
)

// User types
const (
	UserTypeCustomer = "customer"
	UserTypeDelivery = "delivery"
)

// User represents a registered account, either a customer or a delivery agent
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Type         string    `json:"type" db:"type"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
