package repositories

import (
	"context"

	"github.com/edupanel/student-portal/internal/models"
)

// StudentFilters defines filters for student queries
type StudentFilters struct {
	// Search matches name or email as a case-insensitive substring.
	// Empty means no filtering. Wildcard characters in the term are not
	// escaped and keep their SQL LIKE meaning.
	Search string
}

// StudentRepository interface for student record operations.
type StudentRepository interface {
	// List returns students ordered by descending id.
	List(ctx context.Context, filters StudentFilters) ([]*models.Student, error)

	GetByID(ctx context.Context, id uint) (*models.Student, error)
	Create(ctx context.Context, student *models.Student) error

	// Update overwrites name, email and phone for the given id. A missing
	// row is a silent no-op, not an error.
	Update(ctx context.Context, id uint, name, email, phone string) error

	// Delete removes the row with the given id, silently succeeding when
	// it does not exist.
	Delete(ctx context.Context, id uint) error
}
