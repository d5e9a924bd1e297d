package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quickdrop/internal/domain"
	"quickdrop/internal/repository"
	"quickdrop/internal/service"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"go.uber.org/zap"
)

// Mock repositories for testing
type mockUserRepository struct {
	users map[string]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*domain.User),
	}
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if _, exists := m.users[user.Email]; exists {
		return repository.ErrEmailTaken
	}
	m.users[user.Email] = user
	return nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByEmailAndType(ctx context.Context, email, userType string) (*domain.User, error) {
	user, exists := m.users[email]
	if !exists || user.Type != userType {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func newAccountHandler() (*AccountHandler, *mockUserRepository) {
	userRepo := newMockUserRepository()
	accountService := service.NewAccountService(userRepo)
	logger, _ := zap.NewDevelopment()
	return NewAccountHandler(accountService, logger), userRepo
}

func TestProperty_InvalidSignupDataIsRejected(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("signup with a missing or malformed field returns 400", prop.ForAll(
		func(invalidCase int) bool {
			handler, _ := newAccountHandler()

			var reqBody SignupRequest

			switch invalidCase % 4 {
			case 0:
				// Empty email
				reqBody = SignupRequest{Name: "Ada", Email: "", Password: "pass"}
			case 1:
				// Malformed email
				reqBody = SignupRequest{Name: "Ada", Email: "not-an-email", Password: "pass"}
			case 2:
				// Empty password
				reqBody = SignupRequest{Name: "Ada", Email: "ada@example.com", Password: ""}
			case 3:
				// Unknown type
				reqBody = SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "pass", Type: "admin"}
			}

			body, _ := json.Marshal(reqBody)
			req := httptest.NewRequest("POST", "/signup", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Signup(w, req)

			return w.Code == http.StatusBadRequest
		},
		gen.IntRange(0, 3),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestSignupReturnsProfileWithoutPassword(t *testing.T) {
	handler, _ := newAccountHandler()

	body, _ := json.Marshal(SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Type:     "customer",
	})
	req := httptest.NewRequest("POST", "/signup", bytes.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &raw); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	for _, field := range []string{"id", "name", "email", "type"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("response missing field %q", field)
		}
	}
	if _, ok := raw["password"]; ok {
		t.Error("response leaked the password field")
	}
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	handler, _ := newAccountHandler()

	signup := func() *httptest.ResponseRecorder {
		body, _ := json.Marshal(SignupRequest{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "correct-horse",
		})
		req := httptest.NewRequest("POST", "/signup", bytes.NewReader(body))
		w := httptest.NewRecorder()
		handler.Signup(w, req)
		return w
	}

	if w := signup(); w.Code != http.StatusCreated {
		t.Fatalf("first signup: expected 201, got %d", w.Code)
	}
	if w := signup(); w.Code != http.StatusConflict {
		t.Errorf("second signup: expected 409, got %d", w.Code)
	}
}

func TestLoginStatusMapping(t *testing.T) {
	handler, _ := newAccountHandler()

	body, _ := json.Marshal(SignupRequest{
		Name:     "Ada",
		Email:    "ada@example.com",
		Password: "correct-horse",
		Type:     "customer",
	})
	req := httptest.NewRequest("POST", "/signup", bytes.NewReader(body))
	handler.Signup(httptest.NewRecorder(), req)

	cases := []struct {
		name     string
		login    LoginRequest
		expected int
	}{
		{"correct credentials", LoginRequest{Email: "ada@example.com", Password: "correct-horse", Type: "customer"}, http.StatusOK},
		{"wrong password", LoginRequest{Email: "ada@example.com", Password: "battery-staple", Type: "customer"}, http.StatusUnauthorized},
		{"unknown email", LoginRequest{Email: "nobody@example.com", Password: "correct-horse", Type: "customer"}, http.StatusNotFound},
		{"wrong type", LoginRequest{Email: "ada@example.com", Password: "correct-horse", Type: "delivery"}, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body, _ := json.Marshal(tc.login)
			req := httptest.NewRequest("POST", "/login", bytes.NewReader(body))
			w := httptest.NewRecorder()

			handler.Login(w, req)

			if w.Code != tc.expected {
				t.Errorf("expected %d, got %d: %s", tc.expected, w.Code, w.Body.String())
			}
		})
	}
}
