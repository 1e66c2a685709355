package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/coursepay/docs"
	checkouthandlers "github.com/GlebRadaev/coursepay/internal/handlers/checkout"
	paymenthandlers "github.com/GlebRadaev/coursepay/internal/handlers/payments"
	progresshandlers "github.com/GlebRadaev/coursepay/internal/handlers/progress"
	"github.com/GlebRadaev/coursepay/internal/service"
	"github.com/GlebRadaev/coursepay/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type PaymentHandler interface {
	Callback(w http.ResponseWriter, r *http.Request)
	Enroll(w http.ResponseWriter, r *http.Request)
	RetryGrant(w http.ResponseWriter, r *http.Request)
}

type CheckoutHandler interface {
	CreateOrder(w http.ResponseWriter, r *http.Request)
}

type ProgressHandler interface {
	GetProgress(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	PaymentHandler  PaymentHandler
	CheckoutHandler CheckoutHandler
	ProgressHandler ProgressHandler
	Tokens          auth.TokenValidator
}

func New(s *service.Services, tokens auth.TokenValidator) *Handlers {
	return &Handlers{
		PaymentHandler:  paymenthandlers.New(s.TransactionService),
		CheckoutHandler: checkouthandlers.New(s.CheckoutService),
		ProgressHandler: progresshandlers.New(s.ProgressService),
		Tokens:          tokens,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		// the gateway authenticates with the payload signature
		r.Post("/payments/callback", h.PaymentHandler.Callback)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthMiddleware(h.Tokens))
			r.Post("/payments/orders", h.CheckoutHandler.CreateOrder)
			r.Get("/users/{userID}/progress", h.ProgressHandler.GetProgress)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleService))
				r.Post("/payments/enroll", h.PaymentHandler.Enroll)
				r.Post("/payments/grants/{paymentID}/retry", h.PaymentHandler.RetryGrant)
			})
		})
	})

	return r
}
