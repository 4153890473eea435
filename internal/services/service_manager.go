package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/gorm"

	"github.com/edupanel/student-portal/internal/events"
	"github.com/edupanel/student-portal/internal/repositories"
	"github.com/edupanel/student-portal/internal/validator"
)

// serviceManager implements ServiceManager interface
type serviceManager struct {
	db        *gorm.DB
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	authService    AuthService
	studentService StudentService
	exportService  ExportService

	initialized bool
	shutdown    bool
	mu          sync.RWMutex
}

// NewServiceManager creates a service manager with all dependencies.
func NewServiceManager(db *gorm.DB, repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger, validator *validator.Validator) ServiceManager {
	return &serviceManager{
		db:        db,
		repo:      repo,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Initialize builds the service instances and runs the default admin
// bootstrap. A bootstrap failure is logged, not fatal: the server keeps
// serving and logins simply fail until the store comes back.
func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return fmt.Errorf("service manager already initialized")
	}

	m.authService = NewAuthService(m.repo, m.logger, m.validator)
	m.studentService = NewStudentService(m.repo, m.publisher, m.logger)
	m.exportService = NewExportService(m.repo, m.logger)

	if err := m.authService.EnsureDefaultAdmin(ctx); err != nil {
		m.logger.Error("Default admin bootstrap failed, continuing degraded", "error", err)
	}

	m.initialized = true
	return nil
}

func (m *serviceManager) Auth() AuthService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authService
}

func (m *serviceManager) Student() StudentService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.studentService
}

func (m *serviceManager) Export() ExportService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exportService
}

// Shutdown releases service-owned resources.
func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.shutdown {
		return nil
	}
	m.shutdown = true

	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			return fmt.Errorf("close event publisher: %w", err)
		}
	}
	return nil
}
