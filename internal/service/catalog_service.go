package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"quickdrop/internal/domain"
	"quickdrop/internal/repository"

	"github.com/google/uuid"
)

// CatalogService defines the interface for catalog business logic.
// ResolveOrCreateProduct is the named lookup-or-create operation order
// placement goes through; its catalog side effect is part of the
// contract.
type CatalogService interface {
	CreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ResolveOrCreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

// CreateProduct creates a catalog entry unconditionally: no dedup, the
// name is stored as given apart from trimming.
func (s *catalogService) CreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error) {
	product := &domain.Product{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Price:     price,
		CreatedAt: time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// ListProducts returns the full catalog
func (s *catalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// ResolveOrCreateProduct normalizes the name (trim, lowercase) and
// looks it up in the catalog. An existing product is returned as-is,
// the supplied price ignored; otherwise a new product is created with
// the normalized name and the supplied price.
func (s *catalogService) ResolveOrCreateProduct(ctx context.Context, name string, price float64) (*domain.Product, error) {
	normalized := domain.NormalizeProductName(name)

	product, err := s.productRepo.FindByName(ctx, normalized)
	if err == nil {
		return product, nil
	}
	if err != repository.ErrProductNotFound {
		return nil, fmt.Errorf("failed to resolve product: %w", err)
	}

	product = &domain.Product{
		ID:        uuid.New(),
		Name:      normalized,
		Price:     price,
		CreatedAt: time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
