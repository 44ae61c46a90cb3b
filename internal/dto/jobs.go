package dto

import (
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
)

// ProvisionPayload is the queue item body of the provision worker.
type ProvisionPayload struct {
	OrderID int `json:"orderId" example:"42"`
}

type EnqueueResponseDTO struct {
	Job        string    `json:"job" example:"provision"`
	ItemID     string    `json:"itemId" example:"0b8e2c36-2f0a-4c59-9a59-3f0e1c7f4b11"`
	EnqueuedAt time.Time `json:"enqueuedAt" example:"2026-03-10T12:00:00Z"`
}

// TriggerFailedDTO reports a triggered run that ended in failure. Details stay in the run log.
type TriggerFailedDTO struct {
	Message   string `json:"message" example:"Job run failed"`
	RunID     string `json:"runId,omitempty" example:"0b8e2c36-2f0a-4c59-9a59-3f0e1c7f4b11"`
	Processed int    `json:"processed" example:"10"`
	Total     int    `json:"total" example:"12"`
	Failed    int    `json:"failed" example:"2"`
}

type JobRunDTO struct {
	ID             string     `json:"id" example:"0b8e2c36-2f0a-4c59-9a59-3f0e1c7f4b11"`
	JobType        string     `json:"jobType" example:"maintenance_sweep"`
	Status         string     `json:"status" example:"COMPLETED"`
	StartedAt      time.Time  `json:"startedAt" example:"2026-03-10T12:00:00Z"`
	EndedAt        *time.Time `json:"endedAt,omitempty" example:"2026-03-10T12:00:04Z"`
	ItemsProcessed int        `json:"itemsProcessed" example:"12"`
	ItemsTotal     *int       `json:"itemsTotal,omitempty" example:"12"`
	ItemsFailed    int        `json:"itemsFailed" example:"1"`
	ErrorMessage   *string    `json:"errorMessage,omitempty"`
}

type JobRunLogDTO struct {
	Level     string    `json:"level" example:"INFO"`
	Message   string    `json:"message" example:"server 7 suspended"`
	CreatedAt time.Time `json:"createdAt" example:"2026-03-10T12:00:01Z"`
}

type JobRunDetailDTO struct {
	Run  JobRunDTO      `json:"run"`
	Logs []JobRunLogDTO `json:"logs"`
}

func NewJobRunDTO(run domain.JobRun) JobRunDTO {
	return JobRunDTO{
		ID:             run.ID,
		JobType:        run.JobType,
		Status:         string(run.Status),
		StartedAt:      run.StartedAt,
		EndedAt:        run.EndedAt,
		ItemsProcessed: run.ItemsProcessed,
		ItemsTotal:     run.ItemsTotal,
		ItemsFailed:    run.ItemsFailed,
		ErrorMessage:   run.ErrorMessage,
	}
}

func NewJobRunDTOs(runs []domain.JobRun) []JobRunDTO {
	out := make([]JobRunDTO, 0, len(runs))
	for _, run := range runs {
		out = append(out, NewJobRunDTO(run))
	}
	return out
}

func NewJobRunDetailDTO(run domain.JobRun, logs []domain.JobRunLog) JobRunDetailDTO {
	detail := JobRunDetailDTO{Run: NewJobRunDTO(run), Logs: make([]JobRunLogDTO, 0, len(logs))}
	for _, entry := range logs {
		detail.Logs = append(detail.Logs, JobRunLogDTO{
			Level:     entry.Level,
			Message:   entry.Message,
			CreatedAt: entry.CreatedAt,
		})
	}
	return detail
}
