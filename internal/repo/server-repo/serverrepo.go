package serverrepo

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

var ErrOrderTaken = errors.New("order already has a server or is not paid")

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

const serverColumns = `id, order_id, user_id, pt_server_id, pt_admin_id, status, expires,
        last_extended, free_server, type, suspended, created_at`

// Terminal rows never match this predicate.
const mutableStatus = `(status IS NULL OR status NOT IN ('DELETED', 'CREATION_FAILED'))`

func scanServer(row pgx.Row) (*domain.Server, error) {
	var (
		server domain.Server
		status *string
	)
	err := row.Scan(
		&server.ID, &server.OrderID, &server.UserID, &server.PtServerID, &server.PtAdminID, &status, &server.Expires,
		&server.LastExtended, &server.FreeServer, &server.Type, &server.Suspended, &server.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if status != nil {
		server.Status = domain.ServerStatus(*status)
	}
	return &server, nil
}

func nullableStatus(status domain.ServerStatus) *string {
	if status == domain.ServerStatusNone {
		return nil
	}
	s := string(status)
	return &s
}

func (r *Repository) queryServers(ctx context.Context, query string, args ...any) ([]domain.Server, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var servers []domain.Server
	for rows.Next() {
		server, err := scanServer(rows)
		if err != nil {
			return nil, err
		}
		servers = append(servers, *server)
	}
	return servers, rows.Err()
}

func (r *Repository) findOne(ctx context.Context, query string, arg any) (*domain.Server, error) {
	server, err := scanServer(r.db.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		zap.L().Error("can't find server", zap.Error(err))
		return nil, err
	}
	return server, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.Server, error) {
	return r.findOne(ctx, `SELECT `+serverColumns+` FROM servers WHERE id = $1`, id)
}

func (r *Repository) FindByOrderID(ctx context.Context, orderID int) (*domain.Server, error) {
	return r.findOne(ctx, `SELECT `+serverColumns+` FROM servers WHERE order_id = $1`, orderID)
}

// CreateProvisioned stores a server the panel accepted and attaches it to its paid order.
func (r *Repository) CreateProvisioned(ctx context.Context, server *domain.Server) error {
	insert := `
        INSERT INTO servers (order_id, user_id, pt_server_id, pt_admin_id, status, expires, free_server, type, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	attach := `
        UPDATE orders
        SET server_id = $1
        WHERE id = $2 AND server_id IS NULL AND status = 'PAID'
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, insert,
			server.OrderID, server.UserID, server.PtServerID, server.PtAdminID, nullableStatus(server.Status),
			server.Expires, server.FreeServer, server.Type, server.CreatedAt,
		).Scan(&server.ID)
		if err != nil {
			zap.L().Error("can't save server", zap.Int("order_id", server.OrderID), zap.Error(err))
			return err
		}
		tag, err := r.db.Exec(ctx, attach, server.ID, server.OrderID)
		if err != nil {
			zap.L().Error("can't attach server to order", zap.Int("order_id", server.OrderID), zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrOrderTaken
		}
		return nil
	})
}

// CreateFailed records a server that never reached the panel and fails its order.
func (r *Repository) CreateFailed(ctx context.Context, server *domain.Server) error {
	insert := `
        INSERT INTO servers (order_id, user_id, status, expires, free_server, type, created_at)
        VALUES ($1, $2, 'CREATION_FAILED', $3, $4, $5, $6)
        RETURNING id
    `
	fail := `
        UPDATE orders
        SET status = 'CREATION_FAILED', server_id = $1
        WHERE id = $2 AND server_id IS NULL
    `
	return r.txManager.Begin(ctx, func(ctx context.Context) error {
		err := r.db.QueryRow(ctx, insert,
			server.OrderID, server.UserID, server.Expires, server.FreeServer, server.Type, server.CreatedAt,
		).Scan(&server.ID)
		if err != nil {
			zap.L().Error("can't save failed server", zap.Int("order_id", server.OrderID), zap.Error(err))
			return err
		}
		tag, err := r.db.Exec(ctx, fail, server.ID, server.OrderID)
		if err != nil {
			zap.L().Error("can't fail order", zap.Int("order_id", server.OrderID), zap.Error(err))
			return err
		}
		if tag.RowsAffected() == 0 {
			return ErrOrderTaken
		}
		server.Status = domain.ServerStatusCreationFailed
		return nil
	})
}

// Activate confirms a finished install. Returns false if the row had already moved on.
func (r *Repository) Activate(ctx context.Context, id int) (bool, error) {
	query := `
        UPDATE servers
        SET status = 'ACTIVE'
        WHERE id = $1 AND status IS NULL
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("failed to activate server", zap.Int("server_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const expiredFilter = `expires <= $1 AND (status IS NULL OR status NOT IN ('EXPIRED', 'DELETED', 'CREATION_FAILED'))`

func (r *Repository) CountExpired(ctx context.Context, now time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM servers WHERE `+expiredFilter, now).Scan(&count)
	if err != nil {
		zap.L().Error("can't count expired servers", zap.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *Repository) FindExpired(ctx context.Context, now time.Time, limit int) ([]domain.Server, error) {
	query := `
        SELECT ` + serverColumns + `
        FROM servers
        WHERE ` + expiredFilter + `
        ORDER BY expires ASC, id ASC
        LIMIT $2
    `
	servers, err := r.queryServers(ctx, query, now, limit)
	if err != nil {
		zap.L().Error("can't get expired servers", zap.Error(err))
		return nil, err
	}
	return servers, nil
}

func (r *Repository) MarkExpired(ctx context.Context, id int, suspended bool, now time.Time) (bool, error) {
	query := `
        UPDATE servers
        SET status = 'EXPIRED', suspended = suspended OR $2
        WHERE id = $1 AND ` + mutableStatus + ` AND expires <= $3
    `
	tag, err := r.db.Exec(ctx, query, id, suspended, now)
	if err != nil {
		zap.L().Error("failed to expire server", zap.Int("server_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

const deletableFilter = `status = 'EXPIRED' AND expires <= $1`

func (r *Repository) CountDeletable(ctx context.Context, before time.Time) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM servers WHERE `+deletableFilter, before).Scan(&count)
	if err != nil {
		zap.L().Error("can't count deletable servers", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// FindDeletable pages by id so rows whose remote delete failed do not block later ones.
func (r *Repository) FindDeletable(ctx context.Context, before time.Time, afterID, limit int) ([]domain.Server, error) {
	query := `
        SELECT ` + serverColumns + `
        FROM servers
        WHERE ` + deletableFilter + ` AND id > $2
        ORDER BY id ASC
        LIMIT $3
    `
	servers, err := r.queryServers(ctx, query, before, afterID, limit)
	if err != nil {
		zap.L().Error("can't get deletable servers", zap.Error(err))
		return nil, err
	}
	return servers, nil
}

func (r *Repository) MarkDeleted(ctx context.Context, id int) (bool, error) {
	query := `
        UPDATE servers
        SET status = 'DELETED'
        WHERE id = $1 AND status = 'EXPIRED'
    `
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		zap.L().Error("failed to delete server", zap.Int("server_id", id), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) FindInstalling(ctx context.Context, afterID, limit int) ([]domain.Server, error) {
	query := `
        SELECT ` + serverColumns + `
        FROM servers
        WHERE status IS NULL AND pt_server_id IS NOT NULL AND pt_admin_id IS NOT NULL AND id > $1
        ORDER BY id ASC
        LIMIT $2
    `
	servers, err := r.queryServers(ctx, query, afterID, limit)
	if err != nil {
		zap.L().Error("can't get installing servers", zap.Error(err))
		return nil, err
	}
	return servers, nil
}

// Extend writes a free-tier extension. Returns false if the row was not extendable anymore.
func (r *Repository) Extend(ctx context.Context, server *domain.Server) (bool, error) {
	query := `
        UPDATE servers
        SET status = 'ACTIVE', expires = $2, last_extended = $3, suspended = $4
        WHERE id = $1 AND status IN ('ACTIVE', 'EXPIRED')
    `
	tag, err := r.db.Exec(ctx, query, server.ID, server.Expires, server.LastExtended, server.Suspended)
	if err != nil {
		zap.L().Error("failed to extend server", zap.Int("server_id", server.ID), zap.Error(err))
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
