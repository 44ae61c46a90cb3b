// Package refund computes self-service refund eligibility and pro-rata amounts.
package refund

import (
	"time"

	"github.com/GlebRadaev/gamehost/internal/domain"
)

const DefaultWindow = 14 * 24 * time.Hour

const day = 24 * time.Hour

// Reasons are checked in this order; the first failing one is reported.
const (
	ReasonOrderStatus   = "order is not in a refundable status"
	ReasonAlreadyFull   = "order has already been fully refunded"
	ReasonSingleUse     = "self-service refund has already been used for this order"
	ReasonFreeServer    = "free servers are not refundable"
	ReasonWindowExpired = "refund window has expired"
	ReasonNoAmount      = "no refundable amount remaining"
)

type Verdict struct {
	Eligible              bool   `json:"eligible"`
	RefundableAmountCents int64  `json:"refundableAmountCents"`
	UsedDays              int64  `json:"usedDays"`
	TotalDays             int64  `json:"totalDays"`
	Reason                string `json:"reason,omitempty"`
}

type Engine struct {
	window time.Duration
}

func New(window time.Duration) *Engine {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Engine{window: window}
}

func (e *Engine) Evaluate(order domain.Order, refunds []domain.Refund, now time.Time) Verdict {
	if reason := e.gate(order, refunds, now); reason != "" {
		return Verdict{Reason: reason}
	}

	totalDays := ceilDays(order.ExpiresAt.Sub(order.CreatedAt))
	if totalDays < 1 {
		totalDays = 1
	}
	usedDays := ceilDays(now.Sub(order.CreatedAt))
	if usedDays < 0 {
		usedDays = 0
	}

	unusedDays := totalDays - usedDays
	if unusedDays < 0 {
		unusedDays = 0
	}
	// floor(price * unused / total) without floating point.
	proRata := order.Price * unusedDays / totalDays

	remaining := order.Price - committed(refunds)
	amount := min(proRata, remaining)

	verdict := Verdict{
		UsedDays:  usedDays,
		TotalDays: totalDays,
	}
	if amount <= 0 {
		verdict.Reason = ReasonNoAmount
		return verdict
	}
	verdict.Eligible = true
	verdict.RefundableAmountCents = amount
	return verdict
}

func (e *Engine) gate(order domain.Order, refunds []domain.Refund, now time.Time) string {
	if order.Status != domain.OrderStatusPaid && order.Status != domain.OrderStatusPartiallyRefunded {
		return ReasonOrderStatus
	}
	if order.RefundStatus == domain.RefundStatusFull {
		return ReasonAlreadyFull
	}
	for _, r := range refunds {
		if r.IsAutomatic && counts(r.Status) {
			return ReasonSingleUse
		}
	}
	if order.Type == domain.OrderTypeFreeServer {
		return ReasonFreeServer
	}
	if now.Sub(order.CreatedAt) > e.window {
		return ReasonWindowExpired
	}
	return ""
}

func counts(status domain.PaymentStatus) bool {
	return status == domain.PaymentStatusSucceeded || status == domain.PaymentStatusPending
}

func committed(refunds []domain.Refund) int64 {
	var sum int64
	for _, r := range refunds {
		if counts(r.Status) {
			sum += r.Amount
		}
	}
	return sum
}

func ceilDays(d time.Duration) int64 {
	days := int64(d / day)
	if d%day > 0 {
		days++
	}
	return days
}
