package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/edupanel/student-portal/internal/models"
	"github.com/edupanel/student-portal/internal/repositories"
)

type studentRepository struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &studentRepository{db: db}
}

// ===== QUERY OPERATIONS =====

func (r *studentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, error) {
	var students []*models.Student

	query := r.db.WithContext(ctx).Model(&models.Student{})

	if filters.Search != "" {
		// The term is bound as a parameter; only the surrounding
		// wildcards are added here.
		term := "%" + filters.Search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", term, term)
	}

	if err := query.Order("id DESC").Find(&students).Error; err != nil {
		return nil, r.handleDBError(err, "list students")
	}

	return students, nil
}

func (r *studentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	var student models.Student

	if err := r.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, r.handleDBError(err, "get student by id")
	}

	return &student, nil
}

// ===== MUTATION OPERATIONS =====

func (r *studentRepository) Create(ctx context.Context, student *models.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return r.handleDBError(err, "create student")
	}
	return nil
}

func (r *studentRepository) Update(ctx context.Context, id uint, name, email, phone string) error {
	// Zero rows affected means the id does not exist; that is deliberately
	// not reported as an error.
	err := r.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":  name,
			"email": email,
			"phone": phone,
		}).Error
	if err != nil {
		return r.handleDBError(err, "update student")
	}
	return nil
}

func (r *studentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Student{}, id).Error; err != nil {
		return r.handleDBError(err, "delete student")
	}
	return nil
}

func (r *studentRepository) handleDBError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
