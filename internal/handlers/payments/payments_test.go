package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/dto"
	"github.com/GlebRadaev/coursepay/internal/service/transactionservice"
	"github.com/GlebRadaev/coursepay/pkg/utils"
)

func NewMock(t *testing.T) (*PaymentHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	return handler, service
}

var validSignature = strings.Repeat("ab", 32)

func TestCallback(t *testing.T) {
	handler, service := NewMock(t)

	callbackBody := `{"orderId":"order_1","paymentId":"pay_1","signature":"` + validSignature + `"}`
	callbackInput := transactionservice.CallbackInput{OrderID: "order_1", PaymentID: "pay_1", Signature: validSignature}

	tests := []struct {
		name             string
		body             string
		prepareMock      func()
		expectedCode     int
		expectedVerified bool
		expectedMessage  string
	}{
		{
			name: "Verified payment",
			body: callbackBody,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), callbackInput).
					Return(&transactionservice.Outcome{State: transactionservice.StateDone}, nil)
			},
			expectedCode:     http.StatusOK,
			expectedVerified: true,
			expectedMessage:  "payment verified",
		},
		{
			name:            "Malformed JSON",
			body:            `{"orderId":`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "invalid request body",
		},
		{
			name:            "Missing signature",
			body:            `{"orderId":"order_1","paymentId":"pay_1"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "signature is required",
		},
		{
			name:            "Signature of wrong length",
			body:            `{"orderId":"order_1","paymentId":"pay_1","signature":"abcd"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "signature must satisfy len=64",
		},
		{
			name: "Signature mismatch",
			body: callbackBody,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), callbackInput).
					Return(&transactionservice.Outcome{State: transactionservice.StateRejected}, transactionservice.ErrSignatureMismatch)
			},
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "signature mismatch",
		},
		{
			name: "Storage failure",
			body: callbackBody,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), callbackInput).
					Return(&transactionservice.Outcome{State: transactionservice.StateRecording}, transactionservice.ErrStorage)
			},
			expectedCode:     http.StatusInternalServerError,
			expectedVerified: true,
			expectedMessage:  "Internal server error",
		},
		{
			name: "Grant pending",
			body: callbackBody,
			prepareMock: func() {
				service.EXPECT().HandleCallback(gomock.Any(), callbackInput).
					Return(&transactionservice.Outcome{State: transactionservice.StateGranting},
						&transactionservice.GrantError{PaymentID: 1, Err: errors.New("db down")})
			},
			expectedCode:     http.StatusInternalServerError,
			expectedVerified: true,
			expectedMessage:  "payment recorded, enrollment pending",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/payments/callback", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Callback(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			var resp dto.CallbackResponseDTO
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedVerified, resp.Verified)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}
}

func TestEnroll(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name            string
		body            string
		prepareMock     func()
		expectedCode    int
		expectedMessage string
		withEnrollment  bool
	}{
		{
			name: "Success payment with numeric string amount",
			body: `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","amount":"499.50","status":"SUCCESS"}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), transactionservice.EnrollInput{
					UserID: "u1", CourseID: "c1", GatewayPaymentID: "pay_1", Amount: 499.5, Status: domain.PaymentSuccess,
				}).Return(&transactionservice.Outcome{
					State:      transactionservice.StateDone,
					Payment:    &domain.Payment{ID: 1, UserID: "u1", CourseID: "c1", Status: domain.PaymentSuccess},
					Enrollment: &domain.Enrollment{ID: 2, UserID: "u1", CourseID: "c1"},
				}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "enrollment granted",
			withEnrollment:  true,
		},
		{
			name: "Failed payment is recorded only",
			body: `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","amount":499,"status":"FAILED"}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), gomock.Any()).Return(&transactionservice.Outcome{
					State:   transactionservice.StateDone,
					Payment: &domain.Payment{ID: 1, Status: domain.PaymentFailed},
				}, nil)
			},
			expectedCode:    http.StatusOK,
			expectedMessage: "payment recorded",
		},
		{
			name:            "Non-numeric amount",
			body:            `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","amount":"abc","status":"SUCCESS"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: dto.ErrInvalidAmount.Error(),
		},
		{
			name:            "Negative amount",
			body:            `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","amount":-1,"status":"SUCCESS"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: dto.ErrInvalidAmount.Error(),
		},
		{
			name:            "Missing amount",
			body:            `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","status":"SUCCESS"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "amount is required",
		},
		{
			name:            "Unknown status",
			body:            `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","amount":1,"status":"PAID"}`,
			expectedCode:    http.StatusBadRequest,
			expectedMessage: "status must be one of [PENDING SUCCESS FAILED]",
		},
		{
			name: "Storage failure",
			body: `{"userId":"u1","courseId":"c1","gatewayPaymentId":"pay_1","amount":1,"status":"SUCCESS"}`,
			prepareMock: func() {
				service.EXPECT().Enroll(gomock.Any(), gomock.Any()).
					Return(&transactionservice.Outcome{State: transactionservice.StateRecording}, transactionservice.ErrStorage)
			},
			expectedCode:    http.StatusInternalServerError,
			expectedMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/payments/enroll", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			handler.Enroll(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode != http.StatusOK {
				var resp utils.Response
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Equal(t, tt.expectedMessage, resp.Message)
				return
			}
			var resp dto.EnrollResponseDTO
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Equal(t, tt.expectedMessage, resp.Message)
			assert.Equal(t, tt.withEnrollment, resp.Enrollment != nil)
		})
	}
}

func withPaymentID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("paymentID", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestRetryGrant(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		paymentID    string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:      "Grant retried",
			paymentID: "5",
			prepareMock: func() {
				service.EXPECT().RetryGrant(gomock.Any(), int64(5)).Return(&transactionservice.Outcome{
					State:      transactionservice.StateDone,
					Payment:    &domain.Payment{ID: 5},
					Enrollment: &domain.Enrollment{ID: 1},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid id",
			paymentID:    "abc",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Zero id",
			paymentID:    "0",
			expectedCode: http.StatusBadRequest,
		},
		{
			name:      "Unknown payment",
			paymentID: "6",
			prepareMock: func() {
				service.EXPECT().RetryGrant(gomock.Any(), int64(6)).
					Return(&transactionservice.Outcome{}, transactionservice.ErrPaymentNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:      "Failed payment",
			paymentID: "7",
			prepareMock: func() {
				service.EXPECT().RetryGrant(gomock.Any(), int64(7)).
					Return(&transactionservice.Outcome{}, transactionservice.ErrPaymentNotSuccessful)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:      "Consistency violation",
			paymentID: "8",
			prepareMock: func() {
				service.EXPECT().RetryGrant(gomock.Any(), int64(8)).
					Return(&transactionservice.Outcome{}, transactionservice.ErrConsistencyViolation)
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.prepareMock != nil {
				tt.prepareMock()
			}

			req := httptest.NewRequest(http.MethodPost, "/api/payments/grants/"+tt.paymentID+"/retry", nil)
			req = withPaymentID(req, tt.paymentID)
			rec := httptest.NewRecorder()

			handler.RetryGrant(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}
