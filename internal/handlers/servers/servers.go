package servers

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/gamehost/internal/domain"
	"github.com/GlebRadaev/gamehost/internal/dto"
	"github.com/GlebRadaev/gamehost/internal/service/maintenanceservice"
	"github.com/GlebRadaev/gamehost/internal/service/orderservice"
	"github.com/GlebRadaev/gamehost/pkg/auth"
	"github.com/GlebRadaev/gamehost/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type ExtendService interface {
	ExtendFreeServer(ctx context.Context, userID, serverID int) (*domain.Server, error)
}

type LifecycleService interface {
	ServerLifecycle(ctx context.Context, userID, serverID int) (*orderservice.LifecycleView, error)
}

type ServerHandler struct {
	extendService    ExtendService
	lifecycleService LifecycleService
}

func New(extendService ExtendService, lifecycleService LifecycleService) *ServerHandler {
	return &ServerHandler{
		extendService:    extendService,
		lifecycleService: lifecycleService,
	}
}

func serverID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid server id")
		return 0, false
	}
	return id, true
}

// Extend godoc
//
//	@Summary		Extend a free server
//	@Description	Renews a free server for another term. Allowed once per cooldown period.
//	@Tags			Servers
//	@Produce		json
//	@Param			id	path	int	true	"Server id"
//	@Security		BearerAuth
//	@Success		200	{object}	dto.ServerResponseDTO
//	@Failure		400	{object}	utils.Response	"Invalid server id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Server belongs to another user"
//	@Failure		404	{object}	utils.Response	"Server not found"
//	@Failure		409	{object}	utils.Response	"Server cannot be extended in its status"
//	@Failure		422	{object}	utils.Response	"Server is not free"
//	@Failure		429	{object}	dto.CooldownResponseDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/servers/{id}/extend [post]
func (h *ServerHandler) Extend(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, ok := serverID(w, r)
	if !ok {
		return
	}

	server, err := h.extendService.ExtendFreeServer(r.Context(), userID, id)
	if err != nil {
		var cooldown *maintenanceservice.CooldownError
		switch {
		case errors.As(err, &cooldown):
			seconds := int64(math.Ceil(cooldown.Remaining.Seconds()))
			w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))
			utils.RespondWithJSON(w, http.StatusTooManyRequests, dto.CooldownResponseDTO{
				Message:          err.Error(),
				CanExtendAt:      cooldown.CanExtendAt,
				RemainingSeconds: seconds,
			})
		case errors.Is(err, maintenanceservice.ErrServerNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Server not found")
		case errors.Is(err, maintenanceservice.ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		case errors.Is(err, maintenanceservice.ErrNotFreeServer):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, maintenanceservice.ErrNotExtendable), errors.Is(err, domain.ErrTerminalStatus):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewServerResponseDTO(server))
}

// GetLifecycle godoc
//
//	@Summary		Server lifecycle state
//	@Tags			Servers
//	@Produce		json
//	@Param			id	path	int	true	"Server id"
//	@Security		BearerAuth
//	@Success		200	{object}	orderservice.LifecycleView
//	@Failure		400	{object}	utils.Response	"Invalid server id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Server belongs to another user"
//	@Failure		404	{object}	utils.Response	"Server not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/servers/{id}/lifecycle [get]
func (h *ServerHandler) GetLifecycle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, ok := serverID(w, r)
	if !ok {
		return
	}

	view, err := h.lifecycleService.ServerLifecycle(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrServerNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Server not found")
		case errors.Is(err, orderservice.ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}
