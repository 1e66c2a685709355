package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursepay/internal/handlers/checkout"
	"github.com/GlebRadaev/coursepay/internal/handlers/payments"
	"github.com/GlebRadaev/coursepay/internal/handlers/progress"
	"github.com/GlebRadaev/coursepay/internal/reconcile"
	"github.com/GlebRadaev/coursepay/internal/service"
	"github.com/GlebRadaev/coursepay/pkg/auth"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	services := &service.Services{
		PaymentService:     reconcile.NewMockPaymentLister(ctrl),
		TransactionService: payments.NewMockService(ctrl),
		CheckoutService:    checkout.NewMockService(ctrl),
		ProgressService:    progress.NewMockService(ctrl),
	}

	h := New(services, auth.NewJWTService("secret", "identity"))
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.PaymentHandler)
	assert.NotNil(t, h.CheckoutHandler)
	assert.NotNil(t, h.ProgressHandler)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ok := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	mockPaymentHandler := NewMockPaymentHandler(ctrl)
	mockCheckoutHandler := NewMockCheckoutHandler(ctrl)
	mockProgressHandler := NewMockProgressHandler(ctrl)

	mockPaymentHandler.EXPECT().Callback(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockPaymentHandler.EXPECT().Enroll(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockPaymentHandler.EXPECT().RetryGrant(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockCheckoutHandler.EXPECT().CreateOrder(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()
	mockProgressHandler.EXPECT().GetProgress(gomock.Any(), gomock.Any()).Do(ok).AnyTimes()

	tokens := auth.NewJWTService("secret", "identity")
	userToken, err := tokens.GenerateJWT("u1", "", time.Now().Add(time.Hour))
	require.NoError(t, err)
	serviceToken, err := tokens.GenerateJWT("billing", auth.RoleService, time.Now().Add(time.Hour))
	require.NoError(t, err)

	h := &Handlers{
		PaymentHandler:  mockPaymentHandler,
		CheckoutHandler: mockCheckoutHandler,
		ProgressHandler: mockProgressHandler,
		Tokens:          tokens,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"POST", "/api/payments/callback", "", http.StatusOK},
		{"POST", "/api/payments/orders", "", http.StatusUnauthorized},
		{"POST", "/api/payments/orders", "garbage", http.StatusUnauthorized},
		{"POST", "/api/payments/orders", userToken, http.StatusOK},
		{"GET", "/api/users/u1/progress", "", http.StatusUnauthorized},
		{"GET", "/api/users/u1/progress", userToken, http.StatusOK},
		{"POST", "/api/payments/enroll", "", http.StatusUnauthorized},
		{"POST", "/api/payments/enroll", userToken, http.StatusForbidden},
		{"POST", "/api/payments/enroll", serviceToken, http.StatusOK},
		{"POST", "/api/payments/grants/1/retry", userToken, http.StatusForbidden},
		{"POST", "/api/payments/grants/1/retry", serviceToken, http.StatusOK},
		{"GET", "/api/payments/callback", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
