package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/dto"
	"github.com/GlebRadaev/coursepay/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursepay/pkg/auth"
	"github.com/GlebRadaev/coursepay/pkg/utils"
	"github.com/GlebRadaev/coursepay/pkg/validate"
)

//go:generate mockgen -source=checkout.go -destination=mock_checkout.go -package=checkout

type Service interface {
	CreateOrder(ctx context.Context, userID, courseID string) (*domain.Order, error)
}

type CheckoutHandler struct {
	checkoutService Service
}

func New(checkoutService Service) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateOrder godoc
//
//	@Summary		Start a course purchase
//	@Description	Creates the gateway order for a course at its current price. The order id is echoed back by the gateway callback.
//	@Tags			Checkout
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		dto.CreateOrderRequestDTO	true	"Course to buy"
//	@Success		201		{object}	dto.OrderResponseDTO		"Order created"
//	@Failure		400		{object}	utils.Response				"Invalid request"
//	@Failure		401		{object}	utils.Response				"User not authorized"
//	@Failure		404		{object}	utils.Response				"Course not found"
//	@Failure		409		{object}	utils.Response				"Already enrolled"
//	@Failure		500		{object}	utils.Response				"Internal server error"
//	@Router			/api/payments/orders [post]
func (h *CheckoutHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		utils.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req dto.CreateOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.checkoutService.CreateOrder(r.Context(), claims.UserID, req.CourseID)
	if err != nil {
		switch {
		case errors.Is(err, checkoutservice.ErrInvalidOrder):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, checkoutservice.ErrCourseNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, checkoutservice.ErrAlreadyEnrolled):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dto.OrderResponseDTO{
		OrderID:   order.GatewayOrderID,
		CourseID:  order.CourseID,
		Amount:    order.Amount,
		CreatedAt: order.CreatedAt,
	})
}
