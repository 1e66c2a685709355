package transactionservice

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/service/enrollmentservice"
	"github.com/GlebRadaev/coursepay/internal/service/paymentservice"
	"github.com/GlebRadaev/coursepay/pkg/signature"
)

// store keeps payments and enrollments in memory with the same uniqueness
// rules the database enforces.
type store struct {
	mu          sync.Mutex
	payments    []domain.Payment
	enrollments []domain.Enrollment
	orders      map[string]*domain.Order
}

func newStore() *store {
	return &store{orders: make(map[string]*domain.Order)}
}

func (s *store) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Status == domain.PaymentSuccess {
		for _, existing := range s.payments {
			if existing.Status == domain.PaymentSuccess && existing.GatewayPaymentID == p.GatewayPaymentID {
				return nil, domain.ErrConflict
			}
		}
	}
	created := *p
	created.ID = int64(len(s.payments) + 1)
	created.CreatedAt = time.Now()
	s.payments = append(s.payments, created)
	return &created, nil
}

func (s *store) FindByID(_ context.Context, id int64) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *store) FindSuccessByGatewayPaymentID(_ context.Context, id string) (*domain.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.Status == domain.PaymentSuccess && p.GatewayPaymentID == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (s *store) FindUngranted(context.Context, uint32) ([]domain.Payment, error) {
	return nil, nil
}

func (s *store) GetOrder(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orders[orderID], nil
}

type enrollmentStore struct {
	*store
}

func (s enrollmentStore) FindByUserAndCourse(_ context.Context, userID, courseID string) (*domain.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return &e, nil
		}
	}
	return nil, nil
}

func (s enrollmentStore) Create(_ context.Context, userID, courseID string) (*domain.Enrollment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return nil, domain.ErrConflict
		}
	}
	e := domain.Enrollment{ID: int64(len(s.enrollments) + 1), UserID: userID, CourseID: courseID}
	s.enrollments = append(s.enrollments, e)
	return &e, nil
}

func (s enrollmentStore) FindByUserID(context.Context, string) ([]domain.Enrollment, error) {
	return nil, nil
}

func newFlow(st *store) *Service {
	return New(
		signature.NewVerifier(secret),
		paymentservice.New(st),
		enrollmentservice.New(enrollmentStore{st}),
		st,
	)
}

func TestCallbackFlow(t *testing.T) {
	st := newStore()
	st.orders["order_1"] = &domain.Order{GatewayOrderID: "order_1", UserID: "u1", CourseID: "c1", Amount: 499}
	service := newFlow(st)

	out, err := service.HandleCallback(context.Background(), validCallback())
	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Len(t, st.payments, 1)
	assert.Len(t, st.enrollments, 1)

	// the gateway redelivers the same callback
	again, err := service.HandleCallback(context.Background(), validCallback())
	require.NoError(t, err)
	assert.Equal(t, out.Payment.ID, again.Payment.ID)
	assert.Equal(t, out.Enrollment.ID, again.Enrollment.ID)
	assert.Len(t, st.payments, 1)
	assert.Len(t, st.enrollments, 1)
}

func TestCallbackFlowUnverified(t *testing.T) {
	st := newStore()
	st.orders["order_1"] = &domain.Order{GatewayOrderID: "order_1", UserID: "u1", CourseID: "c1", Amount: 499}
	service := newFlow(st)

	in := validCallback()
	in.Signature = signature.Sign("order_1", "pay_1", "wrong")
	out, err := service.HandleCallback(context.Background(), in)
	assert.ErrorIs(t, err, ErrSignatureMismatch)
	assert.Equal(t, StateRejected, out.State)
	require.Len(t, st.payments, 1)
	assert.Equal(t, domain.PaymentFailed, st.payments[0].Status)
	assert.Empty(t, st.enrollments)
}

func TestConcurrentCallbacksForSameCourse(t *testing.T) {
	st := newStore()
	st.orders["order_1"] = &domain.Order{GatewayOrderID: "order_1", UserID: "u1", CourseID: "c1", Amount: 499}
	st.orders["order_2"] = &domain.Order{GatewayOrderID: "order_2", UserID: "u1", CourseID: "c1", Amount: 499}
	service := newFlow(st)

	inputs := []CallbackInput{
		{OrderID: "order_1", PaymentID: "pay_1", Signature: signature.Sign("order_1", "pay_1", secret)},
		{OrderID: "order_2", PaymentID: "pay_2", Signature: signature.Sign("order_2", "pay_2", secret)},
	}
	outcomes := make([]*Outcome, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			outcomes[i], errs[i] = service.HandleCallback(context.Background(), inputs[i])
		}(i)
	}
	wg.Wait()

	for i := range inputs {
		require.NoError(t, errs[i])
		assert.Equal(t, StateDone, outcomes[i].State)
	}
	assert.Len(t, st.payments, 2)
	assert.Len(t, st.enrollments, 1)
	assert.Equal(t, outcomes[0].Enrollment.ID, outcomes[1].Enrollment.ID)
}

func TestRetryGrantFlow(t *testing.T) {
	st := newStore()
	service := newFlow(st)

	// payment committed by an earlier request whose grant never ran
	payment, err := st.Create(context.Background(), &domain.Payment{
		UserID: "u1", CourseID: "c1", GatewayPaymentID: "pay_1", Status: domain.PaymentSuccess,
	})
	require.NoError(t, err)

	out, err := service.RetryGrant(context.Background(), payment.ID)
	require.NoError(t, err)
	assert.Equal(t, StateDone, out.State)
	assert.Len(t, st.enrollments, 1)
}
