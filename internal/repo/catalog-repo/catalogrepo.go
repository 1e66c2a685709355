package catalogrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/pg"
)

// Repository reads catalog data (courses, tests, results) owned by other services.
type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (repo *Repository) FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error) {
	var course domain.Course
	err := repo.db.QueryRow(ctx, "SELECT id, title, category, price FROM courses WHERE id = $1", courseID).
		Scan(&course.ID, &course.Title, &course.Category, &course.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find course", zap.Error(err))
		return nil, err
	}
	return &course, nil
}

// CountTestsByCourse returns the number of tests per course. Courses without
// tests are absent from the map.
func (repo *Repository) CountTestsByCourse(ctx context.Context, courseIDs []string) (map[string]int, error) {
	query := `
        SELECT course_id, COUNT(*)
        FROM tests
        WHERE course_id = ANY($1)
        GROUP BY course_id
    `
	return repo.countByCourse(ctx, query, courseIDs)
}

// CountCompletedTestsByCourse counts, per course, the distinct tests the user
// has at least one result for.
func (repo *Repository) CountCompletedTestsByCourse(ctx context.Context, userID string) (map[string]int, error) {
	query := `
        SELECT t.course_id, COUNT(DISTINCT r.test_id)
        FROM results r
        JOIN tests t ON t.id = r.test_id
        WHERE r.user_id = $1
        GROUP BY t.course_id
    `
	return repo.countByCourse(ctx, query, userID)
}

func (repo *Repository) countByCourse(ctx context.Context, query string, args ...any) (map[string]int, error) {
	rows, err := repo.db.Query(ctx, query, args...)
	if err != nil {
		zap.L().Error("can't count tests", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			courseID string
			n        int64
		)
		if err := rows.Scan(&courseID, &n); err != nil {
			zap.L().Error("can't scan test count", zap.Error(err))
			return nil, err
		}
		counts[courseID] = int(n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}
