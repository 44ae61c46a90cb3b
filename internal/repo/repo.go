package repo

import (
	"github.com/GlebRadaev/gamehost/internal/pg"
	jobrunrepo "github.com/GlebRadaev/gamehost/internal/repo/jobrun-repo"
	orderrepo "github.com/GlebRadaev/gamehost/internal/repo/order-repo"
	refundrepo "github.com/GlebRadaev/gamehost/internal/repo/refund-repo"
	serverrepo "github.com/GlebRadaev/gamehost/internal/repo/server-repo"
)

// Repositories are concrete so each service can narrow them to its own interface.
type Repositories struct {
	OrderRepo  *orderrepo.Repository
	ServerRepo *serverrepo.Repository
	RefundRepo *refundrepo.Repository
	JobRunRepo *jobrunrepo.Repository
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		OrderRepo:  orderrepo.New(conn),
		ServerRepo: serverrepo.New(conn, txManager),
		RefundRepo: refundrepo.New(conn),
		JobRunRepo: jobrunrepo.New(conn),
	}
}
