package orders

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/gamehost/internal/refund"
	"github.com/GlebRadaev/gamehost/internal/service/orderservice"
	"github.com/GlebRadaev/gamehost/internal/service/refundservice"
	"github.com/GlebRadaev/gamehost/pkg/auth"
	"github.com/GlebRadaev/gamehost/pkg/utils"
	"github.com/go-chi/chi/v5"
)

type RefundService interface {
	EvaluateOrder(ctx context.Context, userID, orderID int) (*refund.Verdict, error)
}

type LifecycleService interface {
	OrderLifecycle(ctx context.Context, userID, orderID int) (*orderservice.LifecycleView, error)
}

type OrderHandler struct {
	refundService    RefundService
	lifecycleService LifecycleService
}

func New(refundService RefundService, lifecycleService LifecycleService) *OrderHandler {
	return &OrderHandler{
		refundService:    refundService,
		lifecycleService: lifecycleService,
	}
}

func orderID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid order id")
		return 0, false
	}
	return id, true
}

// GetRefund godoc
//
//	@Summary		Evaluate a refund
//	@Description	Reports whether the order can be refunded now and the pro-rated amount in cents.
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	int	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	refund.Verdict
//	@Failure		400	{object}	utils.Response	"Invalid order id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Order belongs to another user"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/refund [get]
func (h *OrderHandler) GetRefund(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	verdict, err := h.refundService.EvaluateOrder(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, refundservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, refundservice.ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, verdict)
}

// GetLifecycle godoc
//
//	@Summary		Order lifecycle state
//	@Tags			Orders
//	@Produce		json
//	@Param			id	path	int	true	"Order id"
//	@Security		BearerAuth
//	@Success		200	{object}	orderservice.LifecycleView
//	@Failure		400	{object}	utils.Response	"Invalid order id"
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Order belongs to another user"
//	@Failure		404	{object}	utils.Response	"Order not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/orders/{id}/lifecycle [get]
func (h *OrderHandler) GetLifecycle(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())
	id, ok := orderID(w, r)
	if !ok {
		return
	}

	view, err := h.lifecycleService.OrderLifecycle(r.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, orderservice.ErrOrderNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "Order not found")
		case errors.Is(err, orderservice.ErrNotOwner):
			utils.RespondWithError(w, http.StatusForbidden, "Forbidden")
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, view)
}
