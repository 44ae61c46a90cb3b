package jobs

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/dto"
	"github.com/GlebRadaev/gamehost/internal/queue"
	"github.com/GlebRadaev/gamehost/internal/scheduler"
	"github.com/GlebRadaev/gamehost/internal/service/provisionservice"
	"github.com/GlebRadaev/gamehost/pkg/utils"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 100
)

type Service interface {
	Status() []scheduler.JobStatus
	LatestRuns(ctx context.Context) ([]domain.JobRun, error)
	Runs(ctx context.Context, jobType string, limit int) ([]domain.JobRun, error)
	RunDetail(ctx context.Context, id string) (*scheduler.RunDetail, error)
	Trigger(ctx context.Context, name string) (*scheduler.Result, error)
	Enqueue(ctx context.Context, name string, payload any) (*queue.Item, error)
}

type JobHandler struct {
	jobService Service
}

func New(jobService Service) *JobHandler {
	return &JobHandler{
		jobService: jobService,
	}
}

// GetStatus godoc
//
//	@Summary		Registered jobs
//	@Description	List every cron job and queue worker with its schedule and whether it is running now.
//	@Tags			Jobs
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		scheduler.JobStatus
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Router			/api/admin/jobs/status [get]
func (h *JobHandler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, h.jobService.Status())
}

// GetRuns godoc
//
//	@Summary		Job run history
//	@Description	Without type, the latest run of every job. With type, that job's runs, newest first.
//	@Tags			Jobs
//	@Produce		json
//	@Param			type	query	string	false	"Job name"
//	@Param			limit	query	int		false	"Maximum runs returned (1-100, default 20)"
//	@Security		BearerAuth
//	@Success		200	{array}		dto.JobRunDTO
//	@Failure		400	{object}	utils.Response	"Invalid limit"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/jobs/runs [get]
func (h *JobHandler) GetRuns(w http.ResponseWriter, r *http.Request) {
	jobType := r.URL.Query().Get("type")

	limit := defaultRunsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxRunsLimit {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	var (
		runs []domain.JobRun
		err  error
	)
	if jobType == "" {
		runs, err = h.jobService.LatestRuns(r.Context())
	} else {
		runs, err = h.jobService.Runs(r.Context(), jobType, limit)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewJobRunDTOs(runs))
}

// GetRun godoc
//
//	@Summary		Job run with its log
//	@Tags			Jobs
//	@Produce		json
//	@Param			id	path	string	true	"Run id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.JobRunDetailDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Run not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/jobs/runs/{id} [get]
func (h *JobHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	detail, err := h.jobService.RunDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, scheduler.ErrRunNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, "Run not found")
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewJobRunDetailDTO(detail.Run, detail.Logs))
}

// Trigger godoc
//
//	@Summary		Run a cron job now
//	@Description	Runs an allowed cron job and waits for it to finish.
//	@Tags			Jobs
//	@Produce		json
//	@Param			name	path	string	true	"Job name"
//	@Security		BearerAuth
//	@Success		200	{object}	scheduler.Result
//	@Success		202	{object}	utils.Response	"Job keeps running after the request ended"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		404	{object}	utils.Response	"Unknown or not triggerable job"
//	@Failure		409	{object}	utils.Response	"Job is already running"
//	@Failure		500	{object}	dto.TriggerFailedDTO	"Job failed"
//	@Failure		503	{object}	utils.Response	"Scheduler is shutting down"
//	@Router			/api/admin/jobs/{name}/trigger [post]
func (h *JobHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	result, err := h.jobService.Trigger(r.Context(), name)
	if err != nil {
		switch {
		case errors.Is(err, scheduler.ErrUnknownJob):
			utils.RespondWithError(w, http.StatusNotFound, "Unknown job")
		case errors.Is(err, scheduler.ErrJobRunning), errors.Is(err, scheduler.ErrSkipped):
			utils.RespondWithError(w, http.StatusConflict, "Job is already running")
		case errors.Is(err, scheduler.ErrStopped):
			utils.RespondWithError(w, http.StatusServiceUnavailable, "Scheduler is shutting down")
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			utils.RespondWithError(w, http.StatusAccepted, "Job is still running")
		default:
			zap.L().Error("triggered job failed", zap.String("job", name), zap.Error(err))
			body := dto.TriggerFailedDTO{Message: "Job run failed"}
			if result != nil {
				body.RunID = result.RunID
				body.Processed = result.Processed
				body.Total = result.Total
				body.Failed = result.Failed
			}
			utils.RespondWithJSON(w, http.StatusInternalServerError, body)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// Provision godoc
//
//	@Summary		Queue provisioning of a paid order
//	@Tags			Jobs
//	@Produce		json
//	@Param			id	path	int	true	"Order id"
//	@Security		BearerAuth
//	@Success		202	{object}	dto.EnqueueResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid order id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin role required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/orders/{id}/provision [post]
func (h *JobHandler) Provision(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || orderID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return
	}

	item, err := h.jobService.Enqueue(r.Context(), provisionservice.JobName, dto.ProvisionPayload{OrderID: orderID})
	if err != nil {
		zap.L().Error("failed to enqueue provisioning", zap.Int("order_id", orderID), zap.Error(err))
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusAccepted, dto.EnqueueResponseDTO{
		Job:        provisionservice.JobName,
		ItemID:     item.ID,
		EnqueuedAt: item.EnqueuedAt,
	})
}
