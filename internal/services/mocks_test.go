package services

import (
	"context"
	"sort"

	"github.com/edupanel/student-portal/internal/events"
	"github.com/edupanel/student-portal/internal/models"
	"github.com/edupanel/student-portal/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

// mockRepository is an in-memory repositories.Repository for service tests.
type mockRepository struct {
	users    *mockUserRepository
	students *mockStudentRepository
	txCalls  int
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		users:    &mockUserRepository{byUsername: map[string]*models.User{}},
		students: &mockStudentRepository{byID: map[uint]*models.Student{}},
	}
}

func (m *mockRepository) User() repositories.UserRepository       { return m.users }
func (m *mockRepository) Student() repositories.StudentRepository { return m.students }
func (m *mockRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	m.txCalls++
	return fn(m)
}
func (m *mockRepository) Ping(ctx context.Context) error { return nil }
func (m *mockRepository) Close() error                   { return nil }

// seedUser inserts a user with a bcrypt hash of password.
func (m *mockRepository) seedUser(username, password string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	m.users.byUsername[username] = &models.User{
		ID:           uint(len(m.users.byUsername) + 1),
		Username:     username,
		PasswordHash: string(hash),
	}
}

type mockUserRepository struct {
	byUsername map[string]*models.User
	err        error
}

func (r *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.byUsername[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return user, nil
}

func (r *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	if r.err != nil {
		return r.err
	}
	if _, exists := r.byUsername[user.Username]; exists {
		return repositories.ErrDuplicate
	}
	user.ID = uint(len(r.byUsername) + 1)
	r.byUsername[user.Username] = user
	return nil
}

func (r *mockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.byUsername[username]
	return ok, nil
}

type mockStudentRepository struct {
	byID       map[uint]*models.Student
	nextID     uint
	lastSearch string
	err        error
}

func (r *mockStudentRepository) List(ctx context.Context, filters repositories.StudentFilters) ([]*models.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.lastSearch = filters.Search

	students := make([]*models.Student, 0, len(r.byID))
	for _, s := range r.byID {
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID > students[j].ID })
	return students, nil
}

func (r *mockStudentRepository) GetByID(ctx context.Context, id uint) (*models.Student, error) {
	if r.err != nil {
		return nil, r.err
	}
	student, ok := r.byID[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return student, nil
}

func (r *mockStudentRepository) Create(ctx context.Context, student *models.Student) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	student.ID = r.nextID
	r.byID[student.ID] = student
	return nil
}

func (r *mockStudentRepository) Update(ctx context.Context, id uint, name, email, phone string) error {
	if r.err != nil {
		return r.err
	}
	if student, ok := r.byID[id]; ok {
		student.Name, student.Email, student.Phone = name, email, phone
	}
	return nil
}

func (r *mockStudentRepository) Delete(ctx context.Context, id uint) error {
	if r.err != nil {
		return r.err
	}
	delete(r.byID, id)
	return nil
}

// mockPublisher records published events.
type mockPublisher struct {
	published []*events.StudentEvent
	closed    bool
}

func (p *mockPublisher) PublishStudentEvent(ctx context.Context, event *events.StudentEvent) error {
	p.published = append(p.published, event)
	return nil
}

func (p *mockPublisher) Close() error {
	p.closed = true
	return nil
}
