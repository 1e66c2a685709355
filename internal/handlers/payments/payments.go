package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/dto"
	"github.com/GlebRadaev/coursepay/internal/service/transactionservice"
	"github.com/GlebRadaev/coursepay/pkg/utils"
	"github.com/GlebRadaev/coursepay/pkg/validate"
)

//go:generate mockgen -source=payments.go -destination=mock_payments.go -package=payments

type Service interface {
	HandleCallback(ctx context.Context, in transactionservice.CallbackInput) (*transactionservice.Outcome, error)
	Enroll(ctx context.Context, in transactionservice.EnrollInput) (*transactionservice.Outcome, error)
	RetryGrant(ctx context.Context, paymentID int64) (*transactionservice.Outcome, error)
}

type PaymentHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// Callback godoc
//
//	@Summary		Payment gateway callback
//	@Description	Verifies the gateway signature, records the payment and grants access to the purchased course.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CallbackRequestDTO		true	"Gateway callback"
//	@Success		200		{object}	dto.CallbackResponseDTO		"Payment verified and course granted"
//	@Failure		400		{object}	dto.CallbackResponseDTO		"Malformed callback or signature mismatch"
//	@Failure		500		{object}	dto.CallbackResponseDTO		"Storage failure"
//	@Router			/api/payments/callback [post]
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	var req dto.CallbackRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.CallbackResponseDTO{Message: "invalid request body"})
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithJSON(w, http.StatusBadRequest, dto.CallbackResponseDTO{Message: err.Error()})
		return
	}

	out, err := h.paymentService.HandleCallback(r.Context(), transactionservice.CallbackInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		status, msg := errorStatus(err)
		utils.RespondWithJSON(w, status, dto.CallbackResponseDTO{Verified: verified(out), Message: msg})
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.CallbackResponseDTO{Verified: true, Message: "payment verified"})
}

// Enroll godoc
//
//	@Summary		Record a payment and enroll
//	@Description	Internal endpoint for trusted services. SUCCESS payments grant access, other statuses are only recorded.
//	@Tags			Payments
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.EnrollRequestDTO	true	"Payment"
//	@Success		200		{object}	dto.EnrollResponseDTO	"Payment recorded"
//	@Failure		400		{object}	utils.Response			"Invalid request"
//	@Failure		401		{object}	utils.Response			"Unauthorized"
//	@Failure		403		{object}	utils.Response			"Not a service token"
//	@Failure		500		{object}	utils.Response			"Internal server error"
//	@Router			/api/payments/enroll [post]
func (h *PaymentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	var req dto.EnrollRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, dto.ErrInvalidAmount) {
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := h.paymentService.Enroll(r.Context(), transactionservice.EnrollInput{
		UserID:           req.UserID,
		CourseID:         req.CourseID,
		GatewayPaymentID: req.GatewayPaymentID,
		Amount:           float64(*req.Amount),
		Status:           domain.PaymentStatus(req.Status),
	})
	if err != nil {
		status, msg := errorStatus(err)
		utils.RespondWithError(w, status, msg)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toEnrollResponse(out))
}

// RetryGrant godoc
//
//	@Summary		Retry a pending grant
//	@Description	Grants access for a recorded SUCCESS payment whose enrollment step failed. The signature is not checked again.
//	@Tags			Payments
//	@Produce		json
//	@Security		BearerAuth
//	@Param			paymentID	path		int						true	"Payment id"
//	@Success		200			{object}	dto.EnrollResponseDTO	"Enrollment granted"
//	@Failure		400			{object}	utils.Response			"Invalid payment id"
//	@Failure		404			{object}	utils.Response			"Payment not found"
//	@Failure		409			{object}	utils.Response			"Payment is not successful"
//	@Failure		500			{object}	utils.Response			"Internal server error"
//	@Router			/api/payments/grants/{paymentID}/retry [post]
func (h *PaymentHandler) RetryGrant(w http.ResponseWriter, r *http.Request) {
	paymentID, err := strconv.ParseInt(chi.URLParam(r, "paymentID"), 10, 64)
	if err != nil || paymentID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payment id")
		return
	}

	out, err := h.paymentService.RetryGrant(r.Context(), paymentID)
	if err != nil {
		status, msg := errorStatus(err)
		utils.RespondWithError(w, status, msg)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toEnrollResponse(out))
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, transactionservice.ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, transactionservice.ErrSignatureMismatch):
		return http.StatusBadRequest, "signature mismatch"
	case errors.Is(err, transactionservice.ErrPaymentNotFound):
		return http.StatusNotFound, "payment not found"
	case errors.Is(err, transactionservice.ErrPaymentNotSuccessful):
		return http.StatusConflict, "payment is not successful"
	case errors.Is(err, transactionservice.ErrGrantPending):
		return http.StatusInternalServerError, "payment recorded, enrollment pending"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// verified reports whether the callback got past signature verification.
func verified(out *transactionservice.Outcome) bool {
	if out == nil {
		return false
	}
	switch out.State {
	case transactionservice.StateReceived, transactionservice.StateVerifying, transactionservice.StateRejected:
		return false
	}
	return true
}

func toEnrollResponse(out *transactionservice.Outcome) dto.EnrollResponseDTO {
	resp := dto.EnrollResponseDTO{Message: "payment recorded"}
	if p := out.Payment; p != nil {
		resp.Payment = dto.PaymentResponseDTO{
			ID:               p.ID,
			UserID:           p.UserID,
			CourseID:         p.CourseID,
			GatewayOrderID:   p.GatewayOrderID,
			GatewayPaymentID: p.GatewayPaymentID,
			Amount:           p.Amount,
			Status:           string(p.Status),
			CreatedAt:        p.CreatedAt,
		}
	}
	if e := out.Enrollment; e != nil {
		resp.Message = "enrollment granted"
		resp.Enrollment = &dto.EnrollmentResponseDTO{
			ID:        e.ID,
			UserID:    e.UserID,
			CourseID:  e.CourseID,
			Progress:  e.Progress,
			CreatedAt: e.CreatedAt,
		}
	}
	return resp
}
