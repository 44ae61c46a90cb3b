package panel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/GlebRadaev/gamehost/internal/config"
	"github.com/GlebRadaev/gamehost/internal/metrics"
	"github.com/GlebRadaev/gamehost/pkg/clients"
	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const breakerName = "panel"

const maxErrorBody = 512

// Client talks to the hosting panel. It keeps no session between calls.
type Client struct {
	baseURL   string
	appKey    string
	clientKey string
	location  int
	http      clients.HTTPClientI
	limiter   *rate.Limiter
	cb        *gobreaker.CircuitBreaker[[]byte]
	metrics   *metrics.Metrics
}

func New(cfg config.Panel, httpClient clients.HTTPClientI, m *metrics.Metrics) *Client {
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}

	c := &Client{
		baseURL:   cfg.URL,
		appKey:    cfg.AppKey,
		clientKey: cfg.ClientKey,
		location:  cfg.Location,
		http:      httpClient,
		limiter:   rate.NewLimiter(limit, 1),
		metrics:   m,
	}
	m.BreakerState(breakerName, stateToFloat(gobreaker.StateClosed))

	c.cb = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 2,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// The panel answered; the request itself was wrong.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			zap.L().Warn("panel circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
			c.metrics.BreakerState(name, stateToFloat(to))
		},
	})
	return c
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func (c *Client) do(ctx context.Context, method, path, key string, in any) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return nil, fmt.Errorf("encode panel request: %w", err)
		}
	}
	headers := http.Header{
		"Authorization": []string{"Bearer " + key},
		"Accept":        []string{"application/json"},
		"Content-Type":  []string{"application/json"},
	}

	resp, err := c.cb.Execute(func() ([]byte, error) {
		status, respBody, err := c.http.Send(ctx, method, c.baseURL+path, headers, body)
		if err != nil {
			return nil, fmt.Errorf("%w: %s %s: %w", ErrUnavailable, method, path, err)
		}
		if status < 200 || status > 299 {
			if len(respBody) > maxErrorBody {
				respBody = respBody[:maxErrorBody]
			}
			return nil, &StatusError{Method: method, Path: path, Code: status, Body: string(respBody)}
		}
		return respBody, nil
	})

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.PanelRequest(breakerName, "rejected")
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	case err != nil:
		c.metrics.PanelRequest(breakerName, "failure")
		return nil, err
	}
	c.metrics.PanelRequest(breakerName, "success")
	return resp, nil
}

func decode[T any](data []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(data, &env); err != nil {
		var zero T
		return zero, fmt.Errorf("decode panel response: %w", err)
	}
	return env.Attributes, nil
}

func (c *Client) GetUserByExternalID(ctx context.Context, externalID string) (*User, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/application/users/external/"+url.PathEscape(externalID), c.appKey, nil)
	if err != nil {
		return nil, err
	}
	user, err := decode[User](data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateServer fills in the configured deploy location when the request has none.
func (c *Client) CreateServer(ctx context.Context, req CreateServerRequest) (*Server, error) {
	if len(req.Deploy.Locations) == 0 {
		req.Deploy.Locations = []int{c.location}
	}
	if req.Deploy.PortRange == nil {
		req.Deploy.PortRange = []string{}
	}
	data, err := c.do(ctx, http.MethodPost, "/api/application/servers", c.appKey, req)
	if err != nil {
		return nil, err
	}
	server, err := decode[Server](data)
	if err != nil {
		return nil, err
	}
	if server.Identifier == "" || server.ID == 0 {
		return nil, fmt.Errorf("%w: create server response without identifiers", ErrUnavailable)
	}
	return &server, nil
}

// GetServerByExternalID finds a server created earlier with the given external id.
func (c *Client) GetServerByExternalID(ctx context.Context, externalID string) (*Server, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/application/servers/external/"+url.PathEscape(externalID), c.appKey, nil)
	if err != nil {
		return nil, err
	}
	server, err := decode[Server](data)
	if err != nil {
		return nil, err
	}
	return &server, nil
}

func (c *Client) GetServer(ctx context.Context, identifier string) (*Server, error) {
	data, err := c.do(ctx, http.MethodGet, "/api/client/servers/"+url.PathEscape(identifier), c.clientKey, nil)
	if err != nil {
		return nil, err
	}
	server, err := decode[Server](data)
	if err != nil {
		return nil, err
	}
	return &server, nil
}

func (c *Client) DeleteServer(ctx context.Context, adminID int) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/application/servers/"+strconv.Itoa(adminID), c.appKey, nil)
	return err
}

func (c *Client) Power(ctx context.Context, identifier string, signal PowerSignal) error {
	_, err := c.do(ctx, http.MethodPost, "/api/client/servers/"+url.PathEscape(identifier)+"/power", c.clientKey,
		powerRequest{Signal: signal})
	return err
}

// Suspend stops the server and then suspends it. A failed stop is logged and
// does not prevent the suspend call.
func (c *Client) Suspend(ctx context.Context, identifier string, adminID int) error {
	if err := c.Power(ctx, identifier, SignalStop); err != nil {
		zap.L().Warn("failed to stop server before suspend",
			zap.String("identifier", identifier), zap.Error(err))
	}
	_, err := c.do(ctx, http.MethodPost, "/api/application/servers/"+strconv.Itoa(adminID)+"/suspend", c.appKey, nil)
	return err
}

func (c *Client) Unsuspend(ctx context.Context, adminID int) error {
	_, err := c.do(ctx, http.MethodPost, "/api/application/servers/"+strconv.Itoa(adminID)+"/unsuspend", c.appKey, nil)
	return err
}
