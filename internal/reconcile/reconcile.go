package reconcile

import (
	"context"
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GlebRadaev/coursepay/internal/config"
	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/service/transactionservice"
)

//go:generate mockgen -source=reconcile.go -destination=mock_reconcile.go -package=reconcile

type PaymentLister interface {
	ListUngranted(ctx context.Context, limit uint32) ([]domain.Payment, error)
}

type Granter interface {
	RetryGrant(ctx context.Context, paymentID int64) (*transactionservice.Outcome, error)
}

// Service periodically finds SUCCESS payments that have no enrollment and
// re-runs the grant step for them.
type Service struct {
	payments   PaymentLister
	granter    Granter
	schedule   string
	limit      uint32
	workerPool WorkerPoolI
	inFlight   sync.Map
	cron       *cron.Cron
}

func New(cfg *config.Config, payments PaymentLister, granter Granter) *Service {
	logger := cronLogger{}
	return &Service{
		payments:   payments,
		granter:    granter,
		schedule:   cfg.ReconcileSchedule,
		limit:      cfg.ReconcileLimit,
		workerPool: NewWorkerPool(cfg.ReconcileWorkers),
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Start schedules the job and returns. The scheduler and the worker pool are
// stopped once ctx is done; done is closed after that.
func (s *Service) Start(ctx context.Context) (done <-chan struct{}, err error) {
	if _, err := s.cron.AddFunc(s.schedule, func() { s.reconcile(ctx) }); err != nil {
		return nil, fmt.Errorf("invalid reconcile schedule %q: %w", s.schedule, err)
	}
	s.cron.Start()
	zap.L().Info("reconciler started", zap.String("schedule", s.schedule))

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		<-s.cron.Stop().Done()
		s.workerPool.Close()
		zap.L().Info("reconciler stopped")
	}()
	return stopped, nil
}

func (s *Service) reconcile(ctx context.Context) {
	payments, err := s.payments.ListUngranted(ctx, s.limit)
	if err != nil {
		zap.L().Error("failed to fetch ungranted payments", zap.Error(err))
		return
	}
	if len(payments) == 0 {
		return
	}
	zap.L().Info("reconciling ungranted payments", zap.Int("count", len(payments)))

	var g errgroup.Group
	for _, payment := range payments {
		payment := payment

		if _, loaded := s.inFlight.LoadOrStore(payment.ID, struct{}{}); loaded {
			continue
		}

		g.Go(func() error {
			err := s.workerPool.AddTask(ctx, func() error {
				defer s.inFlight.Delete(payment.ID)
				return s.retry(ctx, payment)
			})
			if err != nil {
				s.inFlight.Delete(payment.ID)
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		zap.L().Error("error scheduling grant retries", zap.Error(err))
	}
}

func (s *Service) retry(ctx context.Context, payment domain.Payment) error {
	out, err := s.granter.RetryGrant(ctx, payment.ID)
	if err != nil {
		return fmt.Errorf("retry grant for payment %d: %w", payment.ID, err)
	}
	fields := []zap.Field{zap.Int64("payment_id", payment.ID)}
	if out != nil && out.Enrollment != nil {
		fields = append(fields, zap.Int64("enrollment_id", out.Enrollment.ID))
	}
	zap.L().Info("payment reconciled", fields...)
	return nil
}

// cronLogger routes robfig/cron's logging into zap.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	zap.L().Sugar().Debugw(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	zap.L().Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
