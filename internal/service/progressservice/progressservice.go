package progressservice

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/coursepay/internal/domain"
)

//go:generate mockgen -source=progressservice.go -destination=mock_progressservice.go -package=progressservice

type EnrollmentRepo interface {
	FindByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error)
}

type CatalogRepo interface {
	CountTestsByCourse(ctx context.Context, courseIDs []string) (map[string]int, error)
	CountCompletedTestsByCourse(ctx context.Context, userID string) (map[string]int, error)
}

type Service struct {
	enrollments EnrollmentRepo
	catalog     CatalogRepo
}

func New(enrollments EnrollmentRepo, catalog CatalogRepo) *Service {
	return &Service{
		enrollments: enrollments,
		catalog:     catalog,
	}
}

// ComputeProgress reports completion for every course the user is enrolled in,
// oldest enrollment first. It never writes.
func (s *Service) ComputeProgress(ctx context.Context, userID string) (*domain.Progress, error) {
	var (
		enrollments []domain.Enrollment
		totals      map[string]int
		completed   map[string]int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		enrollments, err = s.enrollments.FindByUserID(gctx, userID)
		if err != nil || len(enrollments) == 0 {
			return err
		}
		courseIDs := make([]string, 0, len(enrollments))
		for _, e := range enrollments {
			courseIDs = append(courseIDs, e.CourseID)
		}
		totals, err = s.catalog.CountTestsByCourse(gctx, courseIDs)
		return err
	})
	g.Go(func() error {
		var err error
		completed, err = s.catalog.CountCompletedTestsByCourse(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		zap.L().Error("failed to compute progress", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	progress := &domain.Progress{PerCourse: make([]domain.CourseProgress, 0, len(enrollments))}
	sum := 0
	for _, e := range enrollments {
		cp := domain.CourseProgress{
			CourseID:  e.CourseID,
			Completed: completed[e.CourseID],
			Total:     totals[e.CourseID],
		}
		cp.Percent = percent(cp.Completed, cp.Total)
		sum += cp.Percent
		progress.PerCourse = append(progress.PerCourse, cp)
	}
	if n := len(progress.PerCourse); n > 0 {
		progress.OverallPercent = (2*sum + n) / (2 * n)
	}
	return progress, nil
}

// percent is round-half-up(100*completed/total), or 0 when the course has no tests.
func percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	if completed > total {
		completed = total
	}
	return (200*completed + total) / (2 * total)
}
