package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickdrop/internal/domain"
	"quickdrop/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
)

var (
	ErrInvalidCredentials = errors.New("invalid password")
	ErrInvalidUserType    = errors.New("type must be customer or delivery")
)

// AccountService defines the interface for the account directory.
// Authentication is stateless: no token or session is issued and the
// caller relies on the returned id for subsequent requests.
type AccountService interface {
	Register(ctx context.Context, name, email, password, userType string) (*domain.User, error)
	Authenticate(ctx context.Context, email, userType, password string) (*domain.User, error)
}

type accountService struct {
	userRepo repository.UserRepository
}

// NewAccountService creates a new instance of AccountService
func NewAccountService(userRepo repository.UserRepository) AccountService {
	return &accountService{userRepo: userRepo}
}

// Register creates a new user account with a bcrypt-hashed password.
// An empty userType defaults to customer.
func (s *accountService) Register(ctx context.Context, name, email, password, userType string) (*domain.User, error) {
	if userType == "" {
		userType = domain.UserTypeCustomer
	}
	if userType != domain.UserTypeCustomer && userType != domain.UserTypeDelivery {
		return nil, ErrInvalidUserType
	}

	// Check if the email is already registered
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil && err != repository.ErrUserNotFound {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, repository.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Type:         userType,
		CreatedAt:    time.Now(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate checks credentials against the stored hash. A missing
// (email, type) pair and a wrong password surface as distinct errors so
// the transport can map them to 404 and 401 respectively.
func (s *accountService) Authenticate(ctx context.Context, email, userType, password string) (*domain.User, error) {
	user, err := s.userRepo.FindByEmailAndType(ctx, email, userType)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
