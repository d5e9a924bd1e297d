package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog entry. Name is stored in normalized form
// (trimmed, lowercased) when the product is created through order
// placement; it is the de facto lookup key but carries no uniqueness
// constraint.
type Product struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NormalizeProductName returns the canonical form of a product name
// used for catalog lookups: whitespace trimmed, lowercased.
func NormalizeProductName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
