package paymentrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/pg"
)

const successPaymentKey = "payments_success_gateway_payment_id_key"

type Repository struct {
	db        pg.Database
	txManager pg.TXManager
}

func New(db pg.Database, txManager pg.TXManager) *Repository {
	return &Repository{
		db:        db,
		txManager: txManager,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPayment(row scanner) (*domain.Payment, error) {
	var (
		p      domain.Payment
		status string
	)
	err := row.Scan(&p.ID, &p.UserID, &p.CourseID, &p.GatewayOrderID, &p.GatewayPaymentID,
		&p.GatewaySignature, &p.Amount, &status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Status = domain.PaymentStatus(status)
	return &p, nil
}

// Create inserts one payment row. A second SUCCESS row for the same gateway
// payment id is refused by the database and reported as domain.ErrConflict.
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	query := `
        INSERT INTO payments (user_id, course_id, gateway_order_id, gateway_payment_id, gateway_signature, amount, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at
    `
	created := *payment
	err := r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query,
			payment.UserID, payment.CourseID, payment.GatewayOrderID, payment.GatewayPaymentID,
			payment.GatewaySignature, payment.Amount, string(payment.Status),
		).Scan(&created.ID, &created.CreatedAt)
		if err != nil {
			if pg.IsUniqueViolation(err, successPaymentKey) {
				return fmt.Errorf("payment %s: %w", payment.GatewayPaymentID, domain.ErrConflict)
			}
			zap.L().Error("can't save payment", zap.Error(err))
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*domain.Payment, error) {
	query := `
        SELECT id, user_id, course_id, gateway_order_id, gateway_payment_id, gateway_signature, amount, status, created_at
        FROM payments
        WHERE id = $1
    `
	payment, err := scanPayment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

func (r *Repository) FindSuccessByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*domain.Payment, error) {
	query := `
        SELECT id, user_id, course_id, gateway_order_id, gateway_payment_id, gateway_signature, amount, status, created_at
        FROM payments
        WHERE gateway_payment_id = $1 AND status = 'SUCCESS'
    `
	payment, err := scanPayment(r.db.QueryRow(ctx, query, gatewayPaymentID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find payment by gateway payment id", zap.Error(err))
		return nil, err
	}
	return payment, nil
}

// FindUngranted returns SUCCESS payments whose user has no enrollment in the paid course.
func (r *Repository) FindUngranted(ctx context.Context, limit uint32) ([]domain.Payment, error) {
	query := `
        SELECT p.id, p.user_id, p.course_id, p.gateway_order_id, p.gateway_payment_id, p.gateway_signature, p.amount, p.status, p.created_at
        FROM payments p
        LEFT JOIN enrollments e ON e.user_id = p.user_id AND e.course_id = p.course_id
        WHERE p.status = 'SUCCESS' AND e.id IS NULL
        ORDER BY p.created_at ASC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, int(limit))
	if err != nil {
		zap.L().Error("can't get ungranted payments", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var payments []domain.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			zap.L().Error("can't scan ungranted payment row", zap.Error(err))
			return nil, err
		}
		payments = append(payments, *payment)
	}
	if err := rows.Err(); err != nil {
		zap.L().Error("ungranted payments iteration failed", zap.Error(err))
		return nil, err
	}
	return payments, nil
}
