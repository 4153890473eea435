package postgres

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/edupanel/student-portal/internal/repositories"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open gorm: %v", err)
	}

	return db, mock
}

func TestStudentRepositoryListSearchClause(t *testing.T) {
	listSQL := regexp.QuoteMeta(
		`SELECT * FROM "students" WHERE name ILIKE $1 OR email ILIKE $2 ORDER BY id DESC`)

	tests := []struct {
		name   string
		search string
		// The term is wrapped in wildcards; user-supplied % and _ pass
		// through unescaped and keep their LIKE meaning.
		wantArg string
	}{
		{name: "plain term", search: "ana", wantArg: "%ana%"},
		{name: "percent passes through", search: "50%", wantArg: "%50%%"},
		{name: "underscore passes through", search: "a_a", wantArg: "%a_a%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := NewStudentPostgreSQL(db)

			mock.ExpectQuery(listSQL).
				WithArgs(tt.wantArg, tt.wantArg).
				WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}).
					AddRow(2, "Ana Lima", "ana.lima@example.com", "222").
					AddRow(1, "Ana Souza", "ana@example.com", "111"))

			students, err := repo.List(context.Background(), repositories.StudentFilters{Search: tt.search})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(students) != 2 || students[0].ID != 2 {
				t.Fatalf("unexpected result set: %+v", students)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Fatalf("expectations: %v", err)
			}
		})
	}
}

func TestStudentRepositoryListWithoutSearch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewStudentPostgreSQL(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "students" ORDER BY id DESC`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "phone"}))

	if _, err := repo.List(context.Background(), repositories.StudentFilters{}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
