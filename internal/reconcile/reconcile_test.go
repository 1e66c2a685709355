package reconcile

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursepay/internal/config"
	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/service/transactionservice"
)

// inlinePool runs every task on the caller's goroutine.
type inlinePool struct{}

func (inlinePool) AddTask(_ context.Context, task Task) error { return task() }

func (inlinePool) Close() {}

func testConfig() *config.Config {
	return &config.Config{ReconcileSchedule: "@every 1s", ReconcileLimit: 10, ReconcileWorkers: 2}
}

func NewMock(t *testing.T) (*Service, *MockPaymentLister, *MockGranter) {
	ctrl := gomock.NewController(t)
	payments := NewMockPaymentLister(ctrl)
	granter := NewMockGranter(ctrl)
	service := New(testConfig(), payments, granter)
	service.workerPool.Close()
	service.workerPool = inlinePool{}
	return service, payments, granter
}

func inFlightCount(s *Service) int {
	n := 0
	s.inFlight.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func TestReconcile(t *testing.T) {
	ungranted := []domain.Payment{
		{ID: 1, UserID: "u1", CourseID: "c1", Status: domain.PaymentSuccess},
		{ID: 2, UserID: "u2", CourseID: "c1", Status: domain.PaymentSuccess},
	}

	tests := []struct {
		name        string
		preInFlight []int64
		prepareMock func(payments *MockPaymentLister, granter *MockGranter)
	}{
		{
			name: "Every ungranted payment is retried",
			prepareMock: func(payments *MockPaymentLister, granter *MockGranter) {
				payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).Return(ungranted, nil)
				granter.EXPECT().RetryGrant(gomock.Any(), int64(1)).
					Return(&transactionservice.Outcome{State: transactionservice.StateDone, Enrollment: &domain.Enrollment{ID: 5}}, nil)
				granter.EXPECT().RetryGrant(gomock.Any(), int64(2)).
					Return(&transactionservice.Outcome{State: transactionservice.StateDone}, nil)
			},
		},
		{
			name:        "Payment already in flight is skipped",
			preInFlight: []int64{1},
			prepareMock: func(payments *MockPaymentLister, granter *MockGranter) {
				payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).Return(ungranted, nil)
				granter.EXPECT().RetryGrant(gomock.Any(), int64(2)).
					Return(&transactionservice.Outcome{State: transactionservice.StateDone}, nil)
			},
		},
		{
			name: "Failed retry is released for the next run",
			prepareMock: func(payments *MockPaymentLister, granter *MockGranter) {
				payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).Return(ungranted[:1], nil)
				granter.EXPECT().RetryGrant(gomock.Any(), int64(1)).
					Return(&transactionservice.Outcome{}, transactionservice.ErrStorage)
			},
		},
		{
			name: "Listing fails",
			prepareMock: func(payments *MockPaymentLister, granter *MockGranter) {
				payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).Return(nil, errors.New("db down"))
			},
		},
		{
			name: "Nothing to do",
			prepareMock: func(payments *MockPaymentLister, granter *MockGranter) {
				payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).Return(nil, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, payments, granter := NewMock(t)
			for _, id := range tt.preInFlight {
				service.inFlight.Store(id, struct{}{})
			}
			tt.prepareMock(payments, granter)

			service.reconcile(context.Background())

			assert.Equal(t, len(tt.preInFlight), inFlightCount(service))
		})
	}
}

func TestReconcileAddTaskFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	service, payments, _ := NewMock(t)
	pool := NewMockWorkerPoolI(ctrl)
	service.workerPool = pool

	payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).Return([]domain.Payment{{ID: 1}}, nil)
	pool.EXPECT().AddTask(gomock.Any(), gomock.Any()).Return(context.Canceled)

	service.reconcile(context.Background())

	assert.Equal(t, 0, inFlightCount(service))
}

func TestStartInvalidSchedule(t *testing.T) {
	service, _, _ := NewMock(t)
	service.schedule = "not a schedule"

	done, err := service.Start(context.Background())
	assert.Error(t, err)
	assert.Nil(t, done)
}

func TestStartRunsAndStops(t *testing.T) {
	service, payments, _ := NewMock(t)

	var runs atomic.Int32
	payments.EXPECT().ListUngranted(gomock.Any(), uint32(10)).
		DoAndReturn(func(context.Context, uint32) ([]domain.Payment, error) {
			runs.Add(1)
			return nil, nil
		}).MinTimes(1)

	ctx, cancel := context.WithCancel(context.Background())
	done, err := service.Start(ctx)
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return runs.Load() > 0 }, 3*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("reconciler did not stop")
	}
}
