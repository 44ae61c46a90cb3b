package panel

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is a 4xx answer other than 404 and 429. Retrying will not help.
	ErrValidation = errors.New("panel rejected request")
	ErrNotFound   = errors.New("panel resource not found")
	// ErrUnavailable covers 5xx, 429, timeouts, network failures and an open breaker.
	ErrUnavailable = errors.New("panel unavailable")
)

type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("panel %s %s: status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == 404:
		return ErrNotFound
	case e.Code == 429 || e.Code >= 500:
		return ErrUnavailable
	default:
		return ErrValidation
	}
}

// IsTransient reports whether err may succeed on a later attempt.
func IsTransient(err error) bool {
	return err != nil && !errors.Is(err, ErrValidation) && !errors.Is(err, ErrNotFound)
}
