package serverrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/pg"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var serverRowColumns = []string{
	"id", "order_id", "user_id", "pt_server_id", "pt_admin_id", "status", "expires",
	"last_extended", "free_server", "type", "suspended", "created_at",
}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface, *pg.MockTXManager) {
	ctrl := gomock.NewController(t)
	mockTxManager := pg.NewMockTXManager(ctrl)

	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)

	return New(mockDB, mockTxManager), mockDB, mockTxManager
}

func passThroughTx(txManager *pg.MockTXManager) {
	txManager.EXPECT().
		Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestRepository_FindByID(t *testing.T) {
	repo, mock, _ := NewMock(t)
	expires := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	created := expires.AddDate(0, -1, 0)
	query := regexp.QuoteMeta("FROM servers WHERE id = $1")

	t.Run("active server", func(t *testing.T) {
		rows := pgxmock.NewRows(serverRowColumns).
			AddRow(3, 1, 5, strPtr("1a7ce997"), intPtr(42), strPtr("ACTIVE"), expires,
				(*time.Time)(nil), false, domain.OrderTypeNew, false, created)
		mock.ExpectQuery(query).WithArgs(3).WillReturnRows(rows)

		server, err := repo.FindByID(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, domain.ServerStatusActive, server.Status)
		assert.Equal(t, "1a7ce997", *server.PtServerID)
		assert.Equal(t, 42, *server.PtAdminID)
		assert.True(t, server.Provisioned())
	})

	t.Run("installing server has no status", func(t *testing.T) {
		rows := pgxmock.NewRows(serverRowColumns).
			AddRow(4, 2, 5, strPtr("2b8df008"), intPtr(43), (*string)(nil), expires,
				(*time.Time)(nil), true, domain.OrderTypeFreeServer, false, created)
		mock.ExpectQuery(query).WithArgs(4).WillReturnRows(rows)

		server, err := repo.FindByID(context.Background(), 4)
		require.NoError(t, err)
		assert.Equal(t, domain.ServerStatusNone, server.Status)
		assert.True(t, server.FreeServer)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(5).WillReturnError(pgx.ErrNoRows)

		server, err := repo.FindByID(context.Background(), 5)
		assert.NoError(t, err)
		assert.Nil(t, server)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs(6).WillReturnError(errors.New("database error"))

		server, err := repo.FindByID(context.Background(), 6)
		assert.Error(t, err)
		assert.Nil(t, server)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateProvisioned(t *testing.T) {
	expires := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	insert := regexp.QuoteMeta("INSERT INTO servers (order_id, user_id, pt_server_id, pt_admin_id, status")
	attach := regexp.QuoteMeta("UPDATE orders SET server_id = $1 WHERE id = $2 AND server_id IS NULL AND status = 'PAID'")

	tests := []struct {
		name      string
		mockSetup func(mock pgxmock.PgxPoolIface)
		expectErr error
	}{
		{
			name: "attached",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insert).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(10))
				mock.ExpectExec(attach).WithArgs(10, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "order already attached",
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(insert).WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(10))
				mock.ExpectExec(attach).WithArgs(10, 1).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: ErrOrderTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, txManager := NewMock(t)
			passThroughTx(txManager)
			tt.mockSetup(mock)

			server := &domain.Server{
				OrderID:    1,
				UserID:     5,
				PtServerID: strPtr("1a7ce997"),
				PtAdminID:  intPtr(42),
				Expires:    expires,
				Type:       domain.OrderTypeNew,
			}
			err := repo.CreateProvisioned(context.Background(), server)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 10, server.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_CreateFailed(t *testing.T) {
	repo, mock, txManager := NewMock(t)
	passThroughTx(txManager)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO servers (order_id, user_id, status, expires")).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE orders SET status = 'CREATION_FAILED', server_id = $1")).
		WithArgs(11, 2).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	server := &domain.Server{OrderID: 2, UserID: 5, Expires: time.Now(), Type: domain.OrderTypeNew}
	err := repo.CreateFailed(context.Background(), server)

	assert.NoError(t, err)
	assert.Equal(t, 11, server.ID)
	assert.Equal(t, domain.ServerStatusCreationFailed, server.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ExpiredPage(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM servers WHERE expires <= $1")).
		WithArgs(now).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))

	rows := pgxmock.NewRows(serverRowColumns).
		AddRow(1, 1, 5, strPtr("a"), intPtr(1), strPtr("ACTIVE"), now.Add(-2*time.Hour),
			(*time.Time)(nil), false, domain.OrderTypeNew, false, now.AddDate(0, -1, 0)).
		AddRow(2, 2, 6, strPtr("b"), intPtr(2), (*string)(nil), now.Add(-time.Hour),
			(*time.Time)(nil), false, domain.OrderTypeNew, false, now.AddDate(0, -1, 0))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY expires ASC, id ASC LIMIT $2")).
		WithArgs(now, 100).
		WillReturnRows(rows)

	count, err := repo.CountExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	servers, err := repo.FindExpired(context.Background(), now, 100)
	require.NoError(t, err)
	require.Len(t, servers, 2)
	assert.Equal(t, 1, servers[0].ID)
	assert.Equal(t, domain.ServerStatusNone, servers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkExpired(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	query := regexp.QuoteMeta("UPDATE servers SET status = 'EXPIRED', suspended = suspended OR $2")

	mock.ExpectExec(query).WithArgs(1, true, now).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(query).WithArgs(2, false, now).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectExec(query).WithArgs(3, false, now).WillReturnError(errors.New("database error"))

	updated, err := repo.MarkExpired(context.Background(), 1, true, now)
	assert.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.MarkExpired(context.Background(), 2, false, now)
	assert.NoError(t, err)
	assert.False(t, updated)

	_, err = repo.MarkExpired(context.Background(), 3, false, now)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_MarkDeleted(t *testing.T) {
	repo, mock, _ := NewMock(t)
	query := regexp.QuoteMeta("UPDATE servers SET status = 'DELETED' WHERE id = $1 AND status = 'EXPIRED'")

	mock.ExpectExec(query).WithArgs(1).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(query).WithArgs(2).WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := repo.MarkDeleted(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.MarkDeleted(context.Background(), 2)
	assert.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Extend(t *testing.T) {
	repo, mock, _ := NewMock(t)
	now := time.Now()
	server := &domain.Server{ID: 9, Expires: now.Add(72 * time.Hour), LastExtended: &now}

	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $1 AND status IN ('ACTIVE', 'EXPIRED')")).
		WithArgs(9, server.Expires, server.LastExtended, false).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := repo.Extend(context.Background(), server)
	assert.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Activate(t *testing.T) {
	repo, mock, _ := NewMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE servers SET status = 'ACTIVE' WHERE id = $1 AND status IS NULL")).
		WithArgs(4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	updated, err := repo.Activate(context.Background(), 4)
	assert.NoError(t, err)
	assert.True(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}
