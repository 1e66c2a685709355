package orderrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/coursepay/internal/domain"
	"github.com/GlebRadaev/coursepay/internal/pg"
)

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

func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
        SELECT gateway_order_id, user_id, course_id, amount, created_at
        FROM orders
        WHERE gateway_order_id = $1
    `
	var order domain.Order
	err := r.db.QueryRow(ctx, query, orderID).Scan(&order.GatewayOrderID, &order.UserID, &order.CourseID, &order.Amount, &order.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Error(err))
		return nil, err
	}
	return &order, nil
}

func (r *Repository) Save(ctx context.Context, order *domain.Order) error {
	query := `
        INSERT INTO orders (gateway_order_id, user_id, course_id, amount)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, query, order.GatewayOrderID, order.UserID, order.CourseID, order.Amount).Scan(&order.CreatedAt)
		if err != nil {
			zap.L().Error("can't save order", zap.Error(err))
			return err
		}
		return nil
	})
}
