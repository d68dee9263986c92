package user

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

type fakeRepo struct {
	mu    sync.Mutex
	users map[string]*User // keyed by email
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[string]*User)}
}

func (r *fakeRepo) CreateUser(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[u.Email]; exists {
		return fmt.Errorf("email %s already registered", u.Email)
	}
	r.users[u.Email] = u
	return nil
}

func (r *fakeRepo) GetUserByID(_ context.Context, id string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, fmt.Errorf("user %s not found", id)
}

func (r *fakeRepo) GetUserByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, fmt.Errorf("user %s not found", email)
	}
	return u, nil
}

func TestRegisterUser(t *testing.T) {
	svc := NewService(newFakeRepo())

	u, err := svc.RegisterUser(context.Background(), "  Jane@Example.COM ", "supersecret", "Jane", "Doe", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if u.Email != "jane@example.com" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.Role != "Staff" {
		t.Errorf("expected default role Staff, got %q", u.Role)
	}
	if u.PasswordHash == "supersecret" {
		t.Error("password stored in plain text")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("supersecret")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestRegisterUser_Validation(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "", "supersecret", "", "", ""); err == nil {
		t.Error("expected error for empty email")
	}
	if _, err := svc.RegisterUser(ctx, "jane@example.com", "short", "", "", ""); err == nil {
		t.Error("expected error for short password")
	}
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	if _, err := svc.RegisterUser(ctx, "jane@example.com", "supersecret", "", "", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.RegisterUser(ctx, "jane@example.com", "supersecret", "", "", ""); err == nil {
		t.Error("expected error for duplicate email")
	}
}
