package checkoutservice

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
)

//go:generate mockgen -source=checkoutservice.go -destination=mock_checkoutservice.go -package=checkoutservice

type OrderRepo interface {
	FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
}

type CourseRepo interface {
	FindCourseByID(ctx context.Context, courseID string) (*domain.Course, error)
}

type EnrollmentFinder interface {
	GetEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
}

const orderIDPrefix = "order_"

type Service struct {
	orders      OrderRepo
	courses     CourseRepo
	enrollments EnrollmentFinder
	newID       func() string
}

func New(orders OrderRepo, courses CourseRepo, enrollments EnrollmentFinder) *Service {
	return &Service{
		orders:      orders,
		courses:     courses,
		enrollments: enrollments,
		newID: func() string {
			return orderIDPrefix + uuid.NewString()
		},
	}
}

var (
	ErrInvalidOrder    = errors.New("user id and course id are required")
	ErrCourseNotFound  = errors.New("course not found")
	ErrAlreadyEnrolled = errors.New("user is already enrolled in the course")
)

// CreateOrder opens a checkout for the course at its current price. The
// returned order id is what the gateway echoes back in its callback.
func (s *Service) CreateOrder(ctx context.Context, userID, courseID string) (*domain.Order, error) {
	if userID == "" || courseID == "" {
		return nil, ErrInvalidOrder
	}

	course, err := s.courses.FindCourseByID(ctx, courseID)
	if err != nil {
		zap.L().Error("failed to get course", zap.String("course_id", courseID), zap.Error(err))
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	enrollment, err := s.enrollments.GetEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if enrollment != nil {
		return nil, ErrAlreadyEnrolled
	}

	order := &domain.Order{
		GatewayOrderID: s.newID(),
		UserID:         userID,
		CourseID:       courseID,
		Amount:         course.Price,
	}
	if err := s.orders.Save(ctx, order); err != nil {
		zap.L().Error("failed to save order", zap.Error(err))
		return nil, err
	}

	zap.L().Info("order created",
		zap.String("order_id", order.GatewayOrderID),
		zap.String("user_id", userID),
		zap.String("course_id", courseID),
	)
	return order, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.FindByOrderID(ctx, orderID)
	if err != nil {
		zap.L().Error("failed to get order", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}
	return order, nil
}
