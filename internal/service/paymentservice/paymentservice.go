package paymentservice

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
)

//go:generate mockgen -source=paymentservice.go -destination=mock_paymentservice.go -package=paymentservice

type Repo interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
	FindByID(ctx context.Context, id int64) (*domain.Payment, error)
	FindSuccessByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*domain.Payment, error)
	FindUngranted(ctx context.Context, limit uint32) ([]domain.Payment, error)
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
	ErrInvalidPayment = errors.New("invalid payment")
	// ErrDuplicatePayment means a SUCCESS payment with the same gateway payment id is already stored.
	ErrDuplicatePayment = errors.New("payment already recorded as successful")
)

type RecordInput struct {
	UserID           string
	CourseID         string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
	Amount           float64
	Status           domain.PaymentStatus
}

func (in RecordInput) validate() error {
	switch {
	case in.UserID == "":
		return fmt.Errorf("%w: user id is required", ErrInvalidPayment)
	case in.CourseID == "":
		return fmt.Errorf("%w: course id is required", ErrInvalidPayment)
	case in.GatewayPaymentID == "":
		return fmt.Errorf("%w: gateway payment id is required", ErrInvalidPayment)
	case !in.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrInvalidPayment, in.Status)
	case in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0):
		return fmt.Errorf("%w: amount must be a non-negative number", ErrInvalidPayment)
	}
	return nil
}

// Record stores one payment attempt. Every call writes a new row; deduplication
// of retried callbacks is left to the caller.
func (s *Service) Record(ctx context.Context, in RecordInput) (*domain.Payment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	payment, err := s.repo.Create(ctx, &domain.Payment{
		UserID:           in.UserID,
		CourseID:         in.CourseID,
		GatewayOrderID:   in.GatewayOrderID,
		GatewayPaymentID: in.GatewayPaymentID,
		GatewaySignature: in.Signature,
		Amount:           in.Amount,
		Status:           in.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePayment, in.GatewayPaymentID)
		}
		zap.L().Error("can't record payment", zap.String("gateway_payment_id", in.GatewayPaymentID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("payment recorded",
		zap.Int64("payment_id", payment.ID),
		zap.String("gateway_payment_id", payment.GatewayPaymentID),
		zap.String("status", string(payment.Status)),
	)
	return payment, nil
}

func (s *Service) GetPayment(ctx context.Context, id int64) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("failed to get payment", zap.Int64("payment_id", id), zap.Error(err))
		return nil, err
	}
	return payment, nil
}

// FindSuccessful returns the SUCCESS payment for a gateway payment id, or nil.
func (s *Service) FindSuccessful(ctx context.Context, gatewayPaymentID string) (*domain.Payment, error) {
	payment, err := s.repo.FindSuccessByGatewayPaymentID(ctx, gatewayPaymentID)
	if err != nil {
		zap.L().Error("failed to find successful payment", zap.String("gateway_payment_id", gatewayPaymentID), zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (s *Service) ListUngranted(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	payments, err := s.repo.FindUngranted(ctx, limit)
	if err != nil {
		zap.L().Error("failed to list ungranted payments", zap.Error(err))
		return nil, err
	}
	return payments, nil
}
