package services

import (
	"bytes"
	"context"

	"github.com/edupanel/student-portal/internal/models"
)

// ===== REQUEST DTOs =====

// StudentForm carries the three editable student fields. The store accepts
// them as-is; there is no app-level field validation on student data.
type StudentForm struct {
	Name  string
	Email string
	Phone string
}

// LoginRequest carries the credentials from the login form.
type LoginRequest struct {
	Username string `validate:"required,max=50"`
	Password string `validate:"required"`
}

// ===== SERVICE INTERFACES =====

// AuthService owns the credential store: verification against bcrypt hashes
// and the one-time default admin bootstrap.
type AuthService interface {
	// Verify reports whether the username/password pair matches a stored
	// account. An unknown username is false, not an error. The stored
	// hash is never returned or logged.
	Verify(ctx context.Context, username, password string) (bool, error)

	// EnsureDefaultAdmin idempotently creates the bootstrap admin
	// account when no row with that username exists yet.
	EnsureDefaultAdmin(ctx context.Context) error
}

// StudentService owns CRUD over student records.
type StudentService interface {
	// List returns students newest-id-first, optionally filtered by a
	// case-insensitive substring match on name or email.
	List(ctx context.Context, search string) ([]*models.Student, error)

	// Add inserts a new record and returns its id.
	Add(ctx context.Context, actor string, form StudentForm) (uint, error)

	// Update overwrites all editable fields of the record with the given
	// id. A missing id is a silent no-op.
	Update(ctx context.Context, actor string, id uint, form StudentForm) error

	// Delete removes the record with the given id, silently succeeding
	// when it does not exist.
	Delete(ctx context.Context, actor string, id uint) error
}

// ExportService produces spreadsheet exports of the student list.
type ExportService interface {
	ExportStudents(ctx context.Context, search string) (*bytes.Buffer, error)
}

// ServiceManager provides access to all services and owns their lifecycle.
type ServiceManager interface {
	Auth() AuthService
	Student() StudentService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
