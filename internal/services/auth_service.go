package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/edupanel/student-portal/internal/models"
	"github.com/edupanel/student-portal/internal/repositories"
	"github.com/edupanel/student-portal/internal/validator"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

type authService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) AuthService {
	return &authService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *authService) Verify(ctx context.Context, username, password string) (bool, error) {
	// Malformed credentials can never match an account; skip the store
	// round-trip.
	req := LoginRequest{Username: username, Password: password}
	if err := s.validator.Validate(req); err != nil {
		return false, nil
	}

	user, err := s.repo.User().GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Indistinguishable from a wrong password for the caller.
			return false, nil
		}
		return false, fmt.Errorf("verify credentials: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}

	return true, nil
}

func (s *authService) EnsureDefaultAdmin(ctx context.Context) error {
	var created bool
	err := s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		exists, err := tx.User().ExistsByUsername(ctx, defaultAdminUsername)
		if err != nil {
			return fmt.Errorf("check default admin: %w", err)
		}
		if exists {
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(defaultAdminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash default admin password: %w", err)
		}

		if err := tx.User().Create(ctx, &models.User{
			Username:     defaultAdminUsername,
			PasswordHash: string(hash),
		}); err != nil {
			return fmt.Errorf("create default admin: %w", err)
		}
		created = true
		return nil
	})
	if err != nil {
		// A concurrent boot may commit the row between the check and the
		// insert; the unique constraint makes that benign.
		if errors.Is(err, repositories.ErrDuplicate) {
			s.logger.Debug("Default admin already created by a concurrent boot")
			return nil
		}
		return err
	}

	if created {
		s.logger.Info("Created default admin account", "username", defaultAdminUsername)
	}
	return nil
}
