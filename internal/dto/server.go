package dto

import (
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
)

type ServerResponseDTO struct {
	ID           int        `json:"id" example:"7"`
	OrderID      int        `json:"orderId" example:"42"`
	Status       string     `json:"status" example:"ACTIVE"`
	Expires      time.Time  `json:"expires" example:"2026-03-13T12:00:00Z"`
	LastExtended *time.Time `json:"lastExtended,omitempty" example:"2026-03-10T12:00:00Z"`
	FreeServer   bool       `json:"freeServer" example:"true"`
	Suspended    bool       `json:"suspended" example:"false"`
}

type CooldownResponseDTO struct {
	Message          string    `json:"message" example:"server can be extended again later"`
	CanExtendAt      time.Time `json:"canExtendAt" example:"2026-03-11T12:00:00Z"`
	RemainingSeconds int64     `json:"remainingSeconds" example:"3600"`
}

func NewServerResponseDTO(server *domain.Server) ServerResponseDTO {
	return ServerResponseDTO{
		ID:           server.ID,
		OrderID:      server.OrderID,
		Status:       server.Status.String(),
		Expires:      server.Expires,
		LastExtended: server.LastExtended,
		FreeServer:   server.FreeServer,
		Suspended:    server.Suspended,
	}
}
