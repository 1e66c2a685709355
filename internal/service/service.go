package service

import (
	"github.com/GlebRadaev/coursepay/internal/handlers/checkout"
	"github.com/GlebRadaev/coursepay/internal/handlers/payments"
	"github.com/GlebRadaev/coursepay/internal/handlers/progress"
	"github.com/GlebRadaev/coursepay/internal/reconcile"
	"github.com/GlebRadaev/coursepay/internal/repo"
	"github.com/GlebRadaev/coursepay/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursepay/internal/service/enrollmentservice"
	"github.com/GlebRadaev/coursepay/internal/service/paymentservice"
	"github.com/GlebRadaev/coursepay/internal/service/progressservice"
	"github.com/GlebRadaev/coursepay/internal/service/transactionservice"
	"github.com/GlebRadaev/coursepay/pkg/signature"
)

type Services struct {
	PaymentService     reconcile.PaymentLister
	TransactionService payments.Service
	CheckoutService    checkout.Service
	ProgressService    progress.Service
}

func New(repo *repo.Repositories, verifier signature.VerifierInterface) *Services {
	paymentService := paymentservice.New(repo.PaymentRepo)
	enrollmentService := enrollmentservice.New(repo.EnrollmentRepo)
	checkoutService := checkoutservice.New(repo.OrderRepo, repo.CourseRepo, enrollmentService)
	progressService := progressservice.New(repo.EnrollmentRepo, repo.CatalogRepo)
	transactionService := transactionservice.New(verifier, paymentService, enrollmentService, checkoutService)

	return &Services{
		PaymentService:     paymentService,
		TransactionService: transactionService,
		CheckoutService:    checkoutService,
		ProgressService:    progressService,
	}
}
