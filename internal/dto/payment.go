package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"
)

var ErrInvalidAmount = errors.New("amount must be a non-negative number")

type CallbackRequestDTO struct {
	OrderID   string `json:"orderId" validate:"required,max=128" example:"order_1"`
	PaymentID string `json:"paymentId" validate:"required,max=128" example:"pay_1"`
	Signature string `json:"signature" validate:"required,hexadecimal,len=64" example:"3f0c..."`
}

type CallbackResponseDTO struct {
	Verified bool   `json:"verified" example:"true"`
	Message  string `json:"message" example:"payment verified"`
}

// Amount accepts a JSON number or a numeric string. Anything else,
// including negative values, fails to decode.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		data = []byte(s)
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidAmount
	}
	*a = Amount(v)
	return nil
}

type EnrollRequestDTO struct {
	UserID           string  `json:"userId" validate:"required,max=128" example:"u1"`
	CourseID         string  `json:"courseId" validate:"required,max=128" example:"c1"`
	GatewayPaymentID string  `json:"gatewayPaymentId" validate:"required,max=128" example:"pay_1"`
	Amount           *Amount `json:"amount" validate:"required" swaggertype:"number" example:"499"`
	Status           string  `json:"status" validate:"required,oneof=PENDING SUCCESS FAILED" example:"SUCCESS"`
}

type PaymentResponseDTO struct {
	ID               int64     `json:"id" example:"1"`
	UserID           string    `json:"userId" example:"u1"`
	CourseID         string    `json:"courseId" example:"c1"`
	GatewayOrderID   string    `json:"gatewayOrderId,omitempty" example:"order_1"`
	GatewayPaymentID string    `json:"gatewayPaymentId" example:"pay_1"`
	Amount           float64   `json:"amount" example:"499"`
	Status           string    `json:"status" example:"SUCCESS"`
	CreatedAt        time.Time `json:"createdAt" example:"2024-12-09T16:09:57+03:00"`
}

type EnrollmentResponseDTO struct {
	ID        int64     `json:"id" example:"1"`
	UserID    string    `json:"userId" example:"u1"`
	CourseID  string    `json:"courseId" example:"c1"`
	Progress  int       `json:"progress" example:"0"`
	CreatedAt time.Time `json:"createdAt" example:"2024-12-09T16:09:57+03:00"`
}

type EnrollResponseDTO struct {
	Message    string                 `json:"message" example:"payment recorded"`
	Payment    PaymentResponseDTO     `json:"payment"`
	Enrollment *EnrollmentResponseDTO `json:"enrollment,omitempty"`
}

type CreateOrderRequestDTO struct {
	CourseID string `json:"courseId" validate:"required,max=128" example:"c1"`
}

type OrderResponseDTO struct {
	OrderID   string    `json:"orderId" example:"order_5f0c6a1e-8a4e-4bb0-9f58-3d2f1f9b8d11"`
	CourseID  string    `json:"courseId" example:"c1"`
	Amount    float64   `json:"amount" example:"499"`
	CreatedAt time.Time `json:"createdAt" example:"2024-12-09T16:09:57+03:00"`
}
