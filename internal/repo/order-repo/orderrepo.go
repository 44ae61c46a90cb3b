package orderrepo

import (
	"context"
	"errors"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const orderColumns = `id, user_id, status, type, price, created_at, expires_at,
        cpu_percent, ram_mb, disk_mb, backup_count,
        game, flavor, version, server_name, refund_status, server_id`

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Order, error) {
	query := `
        SELECT ` + orderColumns + `
        FROM orders
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)

	var order domain.Order
	err := row.Scan(
		&order.ID, &order.UserID, &order.Status, &order.Type, &order.Price, &order.CreatedAt, &order.ExpiresAt,
		&order.CPUPercent, &order.RAMMB, &order.DiskMB, &order.BackupCount,
		&order.Game, &order.Flavor, &order.Version, &order.ServerName, &order.RefundStatus, &order.ServerID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find order", zap.Int("order_id", id), zap.Error(err))
		return nil, err
	}
	return &order, nil
}
