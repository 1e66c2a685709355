package enrollmentrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/pg"
)

const userCourseKey = "enrollments_user_course_key"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	query := `
        SELECT id, user_id, course_id, progress, created_at
        FROM enrollments
        WHERE user_id = $1 AND course_id = $2
    `
	var e domain.Enrollment
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get enrollment", zap.Error(err))
		return nil, err
	}
	return &e, nil
}

// Create inserts a fresh enrollment with zero progress. An existing row for the
// same user and course is reported as domain.ErrConflict.
func (r *Repository) Create(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	query := `
        INSERT INTO enrollments (user_id, course_id, progress)
        VALUES ($1, $2, 0)
        RETURNING id, user_id, course_id, progress, created_at
    `
	var e domain.Enrollment
	err := r.db.QueryRow(ctx, query, userID, courseID).Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.CreatedAt)
	if err != nil {
		if pg.IsUniqueViolation(err, userCourseKey) {
			return nil, fmt.Errorf("enrollment of %s in %s: %w", userID, courseID, domain.ErrConflict)
		}
		zap.L().Error("failed to create enrollment", zap.Error(err))
		return nil, err
	}
	return &e, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	query := `
        SELECT id, user_id, course_id, progress, created_at
        FROM enrollments
        WHERE user_id = $1
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch enrollments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var enrollments []domain.Enrollment
	for rows.Next() {
		var e domain.Enrollment
		if err := rows.Scan(&e.ID, &e.UserID, &e.CourseID, &e.Progress, &e.CreatedAt); err != nil {
			zap.L().Error("failed to scan enrollment row", zap.Error(err))
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return enrollments, nil
}
