package catalogrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/coursepay/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	return New(mockDB), mockDB
}

func TestFindCourseByID(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta("SELECT id, title, category, price FROM courses WHERE id = $1")

	tests := []struct {
		name      string
		courseID  string
		mockSetup func()
		expectErr bool
		result    *domain.Course
	}{
		{
			name:     "Course found",
			courseID: "c1",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("c1").
					WillReturnRows(pgxmock.NewRows([]string{"id", "title", "category", "price"}).
						AddRow("c1", "Go basics", "programming", 499.0))
			},
			result: &domain.Course{ID: "c1", Title: "Go basics", Category: "programming", Price: 499.0},
		},
		{
			name:     "Course not found",
			courseID: "c404",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("c404").WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:     "Database error",
			courseID: "c1",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("c1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindCourseByID(context.Background(), tt.courseID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTestsByCourse(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`SELECT course_id, COUNT(*) FROM tests WHERE course_id = ANY($1) GROUP BY course_id`)

	mock.ExpectQuery(query).
		WithArgs([]string{"c1", "c2", "c3"}).
		WillReturnRows(pgxmock.NewRows([]string{"course_id", "count"}).
			AddRow("c1", int64(4)).
			AddRow("c2", int64(1)))
	mock.ExpectQuery(query).
		WithArgs([]string{"c1"}).
		WillReturnError(errors.New("database error"))

	counts, err := repo.CountTestsByCourse(context.Background(), []string{"c1", "c2", "c3"})
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"c1": 4, "c2": 1}, counts)

	counts, err = repo.CountTestsByCourse(context.Background(), []string{"c1"})
	assert.Error(t, err)
	assert.Nil(t, counts)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountCompletedTestsByCourse(t *testing.T) {
	repo, mock := NewMock(t)
	query := regexp.QuoteMeta(`
		SELECT t.course_id, COUNT(DISTINCT r.test_id)
		FROM results r
		JOIN tests t ON t.id = r.test_id
		WHERE r.user_id = $1
		GROUP BY t.course_id`)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    map[string]int
	}{
		{
			name: "Completed tests counted",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("u1").
					WillReturnRows(pgxmock.NewRows([]string{"course_id", "count"}).AddRow("c1", int64(2)))
			},
			result: map[string]int{"c1": 2},
		},
		{
			name: "No results",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("u1").
					WillReturnRows(pgxmock.NewRows([]string{"course_id", "count"}))
			},
			result: map[string]int{},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(query).WithArgs("u1").WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.CountCompletedTestsByCourse(context.Background(), "u1")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.result, result)
		})
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
