package enrollmentservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
)

//go:generate mockgen -source=enrollmentservice.go -destination=mock_enrollmentservice.go -package=enrollmentservice

type Repo interface {
	FindByUserAndCourse(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	Create(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	FindByUserID(ctx context.Context, userID string) ([]domain.Enrollment, error)
}

type Service struct {
	repo Repo
}

func New(repo Repo) *Service {
	return &Service{
		repo: repo,
	}
}

var (
	ErrInvalidGrant = errors.New("user id and course id are required")
	ErrLostGrant    = errors.New("enrollment conflict reported but no enrollment found")
)

// Grant gives the user access to the course. It is idempotent: an existing
// enrollment is returned unchanged. Concurrent grants for the same pair rely
// on the (user_id, course_id) unique constraint; the loser of the race reads
// back the winner's row.
func (s *Service) Grant(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	if userID == "" || courseID == "" {
		return nil, ErrInvalidGrant
	}

	existing, err := s.repo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		zap.L().Error("failed to check enrollment", zap.Error(err))
		return nil, err
	}
	if existing != nil {
		zap.L().Debug("user already enrolled", zap.String("user_id", userID), zap.String("course_id", courseID))
		return existing, nil
	}

	created, err := s.repo.Create(ctx, userID, courseID)
	if err == nil {
		zap.L().Info("enrollment granted", zap.String("user_id", userID), zap.String("course_id", courseID))
		return created, nil
	}
	if !errors.Is(err, domain.ErrConflict) {
		zap.L().Error("failed to create enrollment", zap.Error(err))
		return nil, err
	}

	existing, err = s.repo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		zap.L().Error("failed to read enrollment after conflict", zap.Error(err))
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: user %s course %s", ErrLostGrant, userID, courseID)
	}
	return existing, nil
}

func (s *Service) GetEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error) {
	enrollment, err := s.repo.FindByUserAndCourse(ctx, userID, courseID)
	if err != nil {
		zap.L().Error("failed to get enrollment", zap.Error(err))
		return nil, err
	}
	return enrollment, nil
}

func (s *Service) ListEnrollments(ctx context.Context, userID string) ([]domain.Enrollment, error) {
	enrollments, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to list enrollments", zap.Error(err))
		return nil, err
	}
	return enrollments, nil
}
