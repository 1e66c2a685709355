package transactionservice

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/service/paymentservice"
	"github.com/GlebRadaev/coursepay/pkg/signature"
)

//go:generate mockgen -source=transactionservice.go -destination=mock_transactionservice.go -package=transactionservice

type Recorder interface {
	Record(ctx context.Context, in paymentservice.RecordInput) (*domain.Payment, error)
	GetPayment(ctx context.Context, id int64) (*domain.Payment, error)
	FindSuccessful(ctx context.Context, gatewayPaymentID string) (*domain.Payment, error)
}

type Granter interface {
	Grant(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
	GetEnrollment(ctx context.Context, userID, courseID string) (*domain.Enrollment, error)
}

type OrderFinder interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

type State string

const (
	StateReceived  State = "RECEIVED"
	StateVerifying State = "VERIFYING"
	StateVerified  State = "VERIFIED"
	StateRejected  State = "REJECTED"
	StateRecording State = "RECORDING"
	StateRecorded  State = "RECORDED"
	StateGranting  State = "GRANTING"
	StateGranted   State = "GRANTED"
	StateDone      State = "DONE"
)

// Outcome is the last state a call reached plus whatever was persisted on the way.
type Outcome struct {
	State      State
	Payment    *domain.Payment
	Enrollment *domain.Enrollment
}

type CallbackInput struct {
	OrderID   string
	PaymentID string
	Signature string
}

type EnrollInput struct {
	UserID           string
	CourseID         string
	GatewayPaymentID string
	Amount           float64
	Status           domain.PaymentStatus
}

type Service struct {
	verifier signature.VerifierInterface
	recorder Recorder
	granter  Granter
	orders   OrderFinder
}

func New(verifier signature.VerifierInterface, recorder Recorder, granter Granter, orders OrderFinder) *Service {
	return &Service{
		verifier: verifier,
		recorder: recorder,
		granter:  granter,
		orders:   orders,
	}
}

// HandleCallback runs a gateway callback through verification, recording and
// granting. The payment is committed before the grant is attempted, so a
// failure after that point leaves a SUCCESS payment the reconciler can pick up.
func (s *Service) HandleCallback(ctx context.Context, in CallbackInput) (*Outcome, error) {
	out := &Outcome{State: StateReceived}
	if in.OrderID == "" || in.PaymentID == "" || in.Signature == "" {
		out.State = StateRejected
		return out, fmt.Errorf("%w: orderId, paymentId and signature are required", ErrValidation)
	}

	out.State = StateVerifying
	order, err := s.orders.GetOrder(ctx, in.OrderID)
	if err != nil {
		return out, storageErr(err)
	}
	if order == nil {
		out.State = StateRejected
		return out, fmt.Errorf("%w: unknown order %s", ErrValidation, in.OrderID)
	}

	record := paymentservice.RecordInput{
		UserID:           order.UserID,
		CourseID:         order.CourseID,
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: in.PaymentID,
		Signature:        in.Signature,
		Amount:           order.Amount,
	}

	if !s.verifier.Verify(in.OrderID, in.PaymentID, in.Signature) {
		out.State = StateRejected
		zap.L().Warn("callback signature mismatch",
			zap.String("order_id", in.OrderID),
			zap.String("gateway_payment_id", in.PaymentID),
		)
		record.Status = domain.PaymentFailed
		failed, err := s.recorder.Record(ctx, record)
		if err != nil {
			return out, storageErr(err)
		}
		out.Payment = failed
		return out, ErrSignatureMismatch
	}
	out.State = StateVerified

	record.Status = domain.PaymentSuccess
	if err := s.recordSuccess(ctx, out, record); err != nil {
		return out, err
	}
	return s.grant(ctx, out)
}

// Enroll records a payment reported by a trusted internal caller. Only SUCCESS
// payments grant access.
func (s *Service) Enroll(ctx context.Context, in EnrollInput) (*Outcome, error) {
	out := &Outcome{State: StateReceived}
	if err := validateEnroll(in); err != nil {
		out.State = StateRejected
		return out, err
	}

	record := paymentservice.RecordInput{
		UserID:           in.UserID,
		CourseID:         in.CourseID,
		GatewayPaymentID: in.GatewayPaymentID,
		Amount:           in.Amount,
		Status:           in.Status,
	}

	if in.Status != domain.PaymentSuccess {
		out.State = StateRecording
		payment, err := s.recorder.Record(ctx, record)
		if err != nil {
			return out, recordErr(err)
		}
		out.Payment = payment
		out.State = StateDone
		return out, nil
	}

	if err := s.recordSuccess(ctx, out, record); err != nil {
		return out, err
	}
	return s.grant(ctx, out)
}

// RetryGrant re-runs the grant step for an already recorded SUCCESS payment.
// The signature and amount are not checked again.
func (s *Service) RetryGrant(ctx context.Context, paymentID int64) (*Outcome, error) {
	out := &Outcome{State: StateReceived}
	payment, err := s.recorder.GetPayment(ctx, paymentID)
	if err != nil {
		return out, storageErr(err)
	}
	if payment == nil {
		out.State = StateRejected
		return out, fmt.Errorf("%w: %d", ErrPaymentNotFound, paymentID)
	}
	if payment.Status != domain.PaymentSuccess {
		out.State = StateRejected
		return out, fmt.Errorf("%w: payment %d is %s", ErrPaymentNotSuccessful, paymentID, payment.Status)
	}
	out.Payment = payment
	out.State = StateRecorded

	return s.grant(ctx, out)
}

// recordSuccess stores a SUCCESS payment, or reuses the one already stored
// for the same gateway payment id, and advances out to RECORDED.
func (s *Service) recordSuccess(ctx context.Context, out *Outcome, in paymentservice.RecordInput) error {
	existing, err := s.recorder.FindSuccessful(ctx, in.GatewayPaymentID)
	if err != nil {
		return storageErr(err)
	}

	if existing == nil {
		out.State = StateRecording
		payment, err := s.recorder.Record(ctx, in)
		if err == nil {
			out.Payment = payment
			out.State = StateRecorded
			return nil
		}
		if !errors.Is(err, paymentservice.ErrDuplicatePayment) {
			return recordErr(err)
		}
		// a concurrent delivery of the same callback won the insert
		existing, err = s.recorder.FindSuccessful(ctx, in.GatewayPaymentID)
		if err != nil {
			return storageErr(err)
		}
		if existing == nil {
			return fmt.Errorf("%w: duplicate payment %s not readable", ErrStorage, in.GatewayPaymentID)
		}
	}

	if existing.UserID != in.UserID || existing.CourseID != in.CourseID {
		out.State = StateRejected
		return fmt.Errorf("%w: gateway payment %s already used for another purchase", ErrValidation, in.GatewayPaymentID)
	}
	zap.L().Debug("reusing recorded payment", zap.Int64("payment_id", existing.ID))
	out.Payment = existing
	out.State = StateRecorded
	return nil
}

func (s *Service) grant(ctx context.Context, out *Outcome) (*Outcome, error) {
	payment := out.Payment
	out.State = StateGranting

	enrollment, err := s.granter.Grant(ctx, payment.UserID, payment.CourseID)
	if err != nil {
		zap.L().Error("grant failed, payment left for retry", zap.Int64("payment_id", payment.ID), zap.Error(err))
		return out, &GrantError{PaymentID: payment.ID, Err: err}
	}
	out.State = StateGranted

	confirmed, err := s.granter.GetEnrollment(ctx, payment.UserID, payment.CourseID)
	if err != nil {
		return out, &GrantError{PaymentID: payment.ID, Err: err}
	}
	if confirmed == nil || confirmed.ID != enrollment.ID {
		zap.L().Error("consistency violation",
			zap.Int64("payment_id", payment.ID),
			zap.String("user_id", payment.UserID),
			zap.String("course_id", payment.CourseID),
		)
		return out, fmt.Errorf("%w: payment %d has no matching enrollment", ErrConsistencyViolation, payment.ID)
	}

	out.Enrollment = confirmed
	out.State = StateDone
	zap.L().Info("payment settled",
		zap.Int64("payment_id", payment.ID),
		zap.Int64("enrollment_id", confirmed.ID),
	)
	return out, nil
}

func validateEnroll(in EnrollInput) error {
	switch {
	case in.UserID == "" || in.CourseID == "" || in.GatewayPaymentID == "":
		return fmt.Errorf("%w: userId, courseId and gatewayPaymentId are required", ErrValidation)
	case !in.Status.Valid():
		return fmt.Errorf("%w: unknown status %q", ErrValidation, in.Status)
	case in.Amount < 0 || math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0):
		return fmt.Errorf("%w: amount must be a non-negative number", ErrValidation)
	}
	return nil
}

func recordErr(err error) error {
	if errors.Is(err, paymentservice.ErrInvalidPayment) {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return storageErr(err)
}
