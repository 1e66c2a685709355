package repo

import (
	"github.com/GlebRadaev/coursepay/internal/pg"
	catalogrepo "github.com/GlebRadaev/coursepay/internal/repo/catalog-repo"
	enrollmentrepo "github.com/GlebRadaev/coursepay/internal/repo/enrollment-repo"
	orderrepo "github.com/GlebRadaev/coursepay/internal/repo/order-repo"
	paymentrepo "github.com/GlebRadaev/coursepay/internal/repo/payment-repo"
	"github.com/GlebRadaev/coursepay/internal/service/checkoutservice"
	"github.com/GlebRadaev/coursepay/internal/service/enrollmentservice"
	"github.com/GlebRadaev/coursepay/internal/service/paymentservice"
	"github.com/GlebRadaev/coursepay/internal/service/progressservice"
)

type Repositories struct {
	PaymentRepo    paymentservice.Repo
	EnrollmentRepo enrollmentservice.Repo
	OrderRepo      checkoutservice.OrderRepo
	CourseRepo     checkoutservice.CourseRepo
	CatalogRepo    progressservice.CatalogRepo
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	catalogRepo := catalogrepo.New(conn)

	return &Repositories{
		PaymentRepo:    paymentrepo.New(conn, txManager),
		EnrollmentRepo: enrollmentrepo.New(conn),
		OrderRepo:      orderrepo.New(conn, txManager),
		CourseRepo:     catalogRepo,
		CatalogRepo:    catalogRepo,
	}
}
