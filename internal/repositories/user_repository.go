package repositories

import (
	"context"

	"github.com/edupanel/student-portal/internal/models"
)

// UserRepository interface for account rows. The credential check itself
// lives in the auth service; this layer only moves rows.
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
