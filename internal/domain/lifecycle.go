package domain

import "errors"

var ErrTerminalStatus = errors.New("server is in a terminal status")

var serverTransitions = map[ServerStatus][]ServerStatus{
	ServerStatusNone:    {ServerStatusActive, ServerStatusExpired},
	ServerStatusActive:  {ServerStatusActive, ServerStatusExpired},
	ServerStatusExpired: {ServerStatusActive, ServerStatusDeleted},
}

func (s ServerStatus) Terminal() bool {
	return s == ServerStatusDeleted || s == ServerStatusCreationFailed
}

func (s ServerStatus) CanTransitionTo(next ServerStatus) bool {
	for _, allowed := range serverTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Transition moves the server to next or explains why it cannot.
func (s *Server) Transition(next ServerStatus) error {
	if s.Status.Terminal() {
		return ErrTerminalStatus
	}
	if !s.Status.CanTransitionTo(next) {
		return &TransitionError{From: s.Status, To: next}
	}
	s.Status = next
	return nil
}

type TransitionError struct {
	From ServerStatus
	To   ServerStatus
}

func (e *TransitionError) Error() string {
	return "transition " + e.From.String() + " -> " + e.To.String() + " is not allowed"
}

func (s ServerStatus) String() string {
	if s == ServerStatusNone {
		return "NONE"
	}
	return string(s)
}

type LifecycleState string

const (
	LifecycleAwaitingPayment LifecycleState = "AWAITING_PAYMENT"
	LifecyclePaymentFailed   LifecycleState = "PAYMENT_FAILED"
	LifecycleCreationFailed  LifecycleState = "CREATION_FAILED"
	LifecycleProvisioning    LifecycleState = "PROVISIONING"
	LifecycleInstalling      LifecycleState = "INSTALLING"
	LifecycleActive          LifecycleState = "ACTIVE"
	LifecycleExpired         LifecycleState = "EXPIRED"
	LifecycleDeleted         LifecycleState = "DELETED"
)

// Lifecycle reports the caller-visible state of an order and its server.
// Terminal statuses win over the installing signal.
func Lifecycle(order *Order, server *Server, installing bool) LifecycleState {
	if server != nil {
		switch server.Status {
		case ServerStatusDeleted:
			return LifecycleDeleted
		case ServerStatusCreationFailed:
			return LifecycleCreationFailed
		case ServerStatusExpired:
			return LifecycleExpired
		}
	}
	if order != nil {
		switch order.Status {
		case OrderStatusCreationFailed:
			return LifecycleCreationFailed
		case OrderStatusExpired:
			return LifecycleExpired
		case OrderStatusPending:
			return LifecycleAwaitingPayment
		case OrderStatusPaymentFailed:
			return LifecyclePaymentFailed
		}
	}
	if server == nil {
		return LifecycleProvisioning
	}
	if installing || server.Status == ServerStatusNone {
		return LifecycleInstalling
	}
	return LifecycleActive
}
