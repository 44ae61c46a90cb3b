package domain

import (
	"errors"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending           OrderStatus = "PENDING"
	OrderStatusPaid              OrderStatus = "PAID"
	OrderStatusPaymentFailed     OrderStatus = "PAYMENT_FAILED"
	OrderStatusPartiallyRefunded OrderStatus = "PARTIALLY_REFUNDED"
	OrderStatusRefunded          OrderStatus = "REFUNDED"
	OrderStatusCreationFailed    OrderStatus = "CREATION_FAILED"
	OrderStatusExpired           OrderStatus = "EXPIRED"
)

type OrderType string

const (
	OrderTypeNew        OrderType = "NEW"
	OrderTypeUpgrade    OrderType = "UPGRADE"
	OrderTypePackage    OrderType = "PACKAGE"
	OrderTypeFreeServer OrderType = "FREE_SERVER"
	OrderTypeToPayed    OrderType = "TO_PAYED"
)

type RefundStatus string

const (
	RefundStatusNone    RefundStatus = "NONE"
	RefundStatusPartial RefundStatus = "PARTIAL"
	RefundStatusFull    RefundStatus = "FULL"
)

type ServerStatus string

const (
	// ServerStatusNone is a provisioned server whose install has not been confirmed yet.
	ServerStatusNone           ServerStatus = ""
	ServerStatusActive         ServerStatus = "ACTIVE"
	ServerStatusExpired        ServerStatus = "EXPIRED"
	ServerStatusDeleted        ServerStatus = "DELETED"
	ServerStatusCreationFailed ServerStatus = "CREATION_FAILED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type JobStatus string

const (
	JobStatusRunning   JobStatus = "RUNNING"
	JobStatusCompleted JobStatus = "COMPLETED"
	JobStatusFailed    JobStatus = "FAILED"
	JobStatusCancelled JobStatus = "CANCELLED"
)

var ErrInvalidOrderPeriod = errors.New("order expires before it is created")

type Hardware struct {
	CPUPercent  int `db:"cpu_percent"  json:"cpu_percent"`
	RAMMB       int `db:"ram_mb"       json:"ram_mb"`
	DiskMB      int `db:"disk_mb"      json:"disk_mb"`
	BackupCount int `db:"backup_count" json:"backup_count"`
}

type GameConfig struct {
	Game       string `db:"game"        json:"game"`
	Flavor     string `db:"flavor"      json:"flavor"`
	Version    string `db:"version"     json:"version"`
	ServerName string `db:"server_name" json:"server_name"`
}

type Order struct {
	ID           int          `db:"id"`
	UserID       int          `db:"user_id"`
	Status       OrderStatus  `db:"status"`
	Type         OrderType    `db:"type"`
	Price        int64        `db:"price"`
	CreatedAt    time.Time    `db:"created_at"`
	ExpiresAt    time.Time    `db:"expires_at"`
	RefundStatus RefundStatus `db:"refund_status"`
	ServerID     *int         `db:"server_id"`
	Hardware
	GameConfig
}

func (o *Order) Validate() error {
	if !o.ExpiresAt.After(o.CreatedAt) {
		return ErrInvalidOrderPeriod
	}
	return nil
}

type Server struct {
	ID           int          `db:"id"`
	OrderID      int          `db:"order_id"`
	UserID       int          `db:"user_id"`
	PtServerID   *string      `db:"pt_server_id"`
	PtAdminID    *int         `db:"pt_admin_id"`
	Status       ServerStatus `db:"status"`
	Expires      time.Time    `db:"expires"`
	LastExtended *time.Time   `db:"last_extended"`
	FreeServer   bool         `db:"free_server"`
	Type         OrderType    `db:"type"`
	Suspended    bool         `db:"suspended"`
	CreatedAt    time.Time    `db:"created_at"`
}

// Provisioned reports whether the panel call for this server ever succeeded.
func (s *Server) Provisioned() bool {
	return s.PtAdminID != nil && s.PtServerID != nil
}

type Refund struct {
	ID          int           `db:"id"`
	OrderID     int           `db:"order_id"`
	Amount      int64         `db:"amount"`
	Status      PaymentStatus `db:"status"`
	IsAutomatic bool          `db:"is_automatic"`
	Type        string        `db:"type"`
	CreatedAt   time.Time     `db:"created_at"`
}

type JobRun struct {
	ID             string     `db:"id"`
	JobType        string     `db:"job_type"`
	Status         JobStatus  `db:"status"`
	StartedAt      time.Time  `db:"started_at"`
	EndedAt        *time.Time `db:"ended_at"`
	ItemsProcessed int        `db:"items_processed"`
	ItemsTotal     *int       `db:"items_total"`
	ItemsFailed    int        `db:"items_failed"`
	ErrorMessage   *string    `db:"error_message"`
}

type JobRunLog struct {
	ID        int       `db:"id"`
	RunID     string    `db:"run_id"`
	Level     string    `db:"level"`
	Message   string    `db:"message"`
	CreatedAt time.Time `db:"created_at"`
}
