package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/edupanel/student-portal/internal/events"
	"github.com/edupanel/student-portal/internal/models"
	"github.com/edupanel/student-portal/internal/repositories"
)

type studentService struct {
	repo      repositories.Repository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewStudentService(repo repositories.Repository, publisher events.EventPublisher, logger *slog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *studentService) List(ctx context.Context, search string) ([]*models.Student, error) {
	students, err := s.repo.Student().List(ctx, repositories.StudentFilters{Search: search})
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

func (s *studentService) Add(ctx context.Context, actor string, form StudentForm) (uint, error) {
	student := &models.Student{
		Name:  form.Name,
		Email: form.Email,
		Phone: form.Phone,
	}

	if err := s.repo.Student().Create(ctx, student); err != nil {
		return 0, fmt.Errorf("add student: %w", err)
	}

	s.logger.Info("Student added", "student_id", student.ID, "actor", actor)
	s.publishEvent(ctx, events.StudentCreated, student.ID, form, actor)

	return student.ID, nil
}

func (s *studentService) Update(ctx context.Context, actor string, id uint, form StudentForm) error {
	if err := s.repo.Student().Update(ctx, id, form.Name, form.Email, form.Phone); err != nil {
		return fmt.Errorf("update student: %w", err)
	}

	s.logger.Info("Student updated", "student_id", id, "actor", actor)
	s.publishEvent(ctx, events.StudentUpdated, id, form, actor)

	return nil
}

func (s *studentService) Delete(ctx context.Context, actor string, id uint) error {
	// Snapshot the record for the audit event before it is gone. A missing
	// id still deletes as a silent no-op, with an empty snapshot.
	var snapshot StudentForm
	if student, err := s.repo.Student().GetByID(ctx, id); err == nil {
		snapshot = StudentForm{Name: student.Name, Email: student.Email, Phone: student.Phone}
	} else if !errors.Is(err, repositories.ErrNotFound) {
		s.logger.Warn("Failed to load student before delete", "error", err, "student_id", id)
	}

	if err := s.repo.Student().Delete(ctx, id); err != nil {
		return fmt.Errorf("delete student: %w", err)
	}

	s.logger.Info("Student deleted", "student_id", id, "actor", actor)
	s.publishEvent(ctx, events.StudentDeleted, id, snapshot, actor)

	return nil
}

// publishEvent sends an audit event; a publish failure is logged but never
// fails the mutation that already committed.
func (s *studentService) publishEvent(ctx context.Context, eventType events.EventType, id uint, form StudentForm, actor string) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishStudentEvent(ctx, &events.StudentEvent{
		Type:       eventType,
		StudentID:  id,
		Name:       form.Name,
		Email:      form.Email,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error("Failed to publish student event",
			"error", err,
			"event", string(eventType),
			"student_id", id)
	}
}
