package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/edupanel/student-portal/internal/validator"
)

func newTestAuthService(repo *mockRepository) AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewAuthService(repo, logger, validator.New())
}

func TestAuthService_Verify(t *testing.T) {
	repo := newMockRepository()
	repo.seedUser("admin", "admin123")
	service := newTestAuthService(repo)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{name: "correct credentials", username: "admin", password: "admin123", want: true},
		{name: "wrong password", username: "admin", password: "wrong", want: false},
		{name: "unknown user", username: "nobody", password: "admin123", want: false},
		{name: "empty username", username: "", password: "admin123", want: false},
		{name: "empty password", username: "admin", password: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Verify(ctx, tt.username, tt.password)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Verify(%q, %q) = %v, want %v", tt.username, tt.password, got, tt.want)
			}
		})
	}
}

func TestAuthService_VerifyStoreFailure(t *testing.T) {
	repo := newMockRepository()
	repo.users.err = errors.New("connection refused")
	service := newTestAuthService(repo)

	if _, err := service.Verify(context.Background(), "admin", "admin123"); err == nil {
		t.Fatal("expected store failure to propagate")
	}
}

func TestAuthService_EnsureDefaultAdmin(t *testing.T) {
	repo := newMockRepository()
	service := newTestAuthService(repo)
	ctx := context.Background()

	if err := service.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin: %v", err)
	}

	ok, err := service.Verify(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatal("default admin credentials do not verify after bootstrap")
	}

	// Second run must be a no-op, not an error.
	if err := service.EnsureDefaultAdmin(ctx); err != nil {
		t.Fatalf("EnsureDefaultAdmin second run: %v", err)
	}
	if len(repo.users.byUsername) != 1 {
		t.Fatalf("expected exactly one user, got %d", len(repo.users.byUsername))
	}

	// The check and insert run as one transaction per bootstrap attempt.
	if repo.txCalls != 2 {
		t.Fatalf("bootstrap ran %d transactions, want 2", repo.txCalls)
	}
}
