package handlers

import (
	"net/http"

	_ "github.com/GlebRadaev/gamehost/docs"
	jobshandlers "github.com/GlebRadaev/gamehost/internal/handlers/jobs"
	ordershandlers "github.com/GlebRadaev/gamehost/internal/handlers/orders"
	servershandlers "github.com/GlebRadaev/gamehost/internal/handlers/servers"
	"github.com/GlebRadaev/gamehost/internal/service"
	"github.com/GlebRadaev/gamehost/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type JobHandler interface {
	GetStatus(w http.ResponseWriter, r *http.Request)
	GetRuns(w http.ResponseWriter, r *http.Request)
	GetRun(w http.ResponseWriter, r *http.Request)
	Trigger(w http.ResponseWriter, r *http.Request)
	Provision(w http.ResponseWriter, r *http.Request)
}

type ServerHandler interface {
	Extend(w http.ResponseWriter, r *http.Request)
	GetLifecycle(w http.ResponseWriter, r *http.Request)
}

type OrderHandler interface {
	GetRefund(w http.ResponseWriter, r *http.Request)
	GetLifecycle(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	JobHandler    JobHandler
	ServerHandler ServerHandler
	OrderHandler  OrderHandler

	Tokens  auth.JWTServiceInterface
	Metrics http.Handler
}

func New(s *service.Services, jobs jobshandlers.Service, tokens auth.JWTServiceInterface, gatherer prometheus.Gatherer) *Handlers {
	return &Handlers{
		JobHandler:    jobshandlers.New(jobs),
		ServerHandler: servershandlers.New(s.MaintenanceService, s.OrderService),
		OrderHandler:  ordershandlers.New(s.RefundService, s.OrderService),
		Tokens:        tokens,
		Metrics:       promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.AuthMiddleware(h.Tokens))

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/status", h.JobHandler.GetStatus)
				r.Get("/runs", h.JobHandler.GetRuns)
				r.Get("/runs/{id}", h.JobHandler.GetRun)
				r.Post("/{name}/trigger", h.JobHandler.Trigger)
			})
			r.Post("/orders/{id}/provision", h.JobHandler.Provision)
		})

		r.Route("/servers/{id}", func(r chi.Router) {
			r.Post("/extend", h.ServerHandler.Extend)
			r.Get("/lifecycle", h.ServerHandler.GetLifecycle)
		})
		r.Route("/orders/{id}", func(r chi.Router) {
			r.Get("/refund", h.OrderHandler.GetRefund)
			r.Get("/lifecycle", h.OrderHandler.GetLifecycle)
		})
	})

	return r
}
