package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/gamehost/internal/handlers/jobs"
	"github.com/GlebRadaev/gamehost/internal/service"
	"github.com/GlebRadaev/gamehost/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)

	h := New(&service.Services{}, jobs.NewMockService(ctrl), auth.NewJWTService("secret"), prometheus.NewRegistry())
	assert.NotNil(t, h, "Handlers should not be nil")
	assert.NotNil(t, h.JobHandler)
	assert.NotNil(t, h.ServerHandler)
	assert.NotNil(t, h.OrderHandler)
	assert.NotNil(t, h.Metrics)
}

func TestInitRoutes(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockJobHandler := NewMockJobHandler(ctrl)
	mockServerHandler := NewMockServerHandler(ctrl)
	mockOrderHandler := NewMockOrderHandler(ctrl)

	mockJobHandler.EXPECT().GetStatus(gomock.Any(), gomock.Any()).AnyTimes()
	mockJobHandler.EXPECT().GetRuns(gomock.Any(), gomock.Any()).AnyTimes()
	mockJobHandler.EXPECT().GetRun(gomock.Any(), gomock.Any()).AnyTimes()
	mockJobHandler.EXPECT().Trigger(gomock.Any(), gomock.Any()).AnyTimes()
	mockJobHandler.EXPECT().Provision(gomock.Any(), gomock.Any()).AnyTimes()
	mockServerHandler.EXPECT().Extend(gomock.Any(), gomock.Any()).AnyTimes()
	mockServerHandler.EXPECT().GetLifecycle(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetRefund(gomock.Any(), gomock.Any()).AnyTimes()
	mockOrderHandler.EXPECT().GetLifecycle(gomock.Any(), gomock.Any()).AnyTimes()

	tokens := auth.NewJWTService("secret")
	userToken, _ := tokens.GenerateJWT(7, auth.RoleUser, time.Now().Add(time.Hour))
	adminToken, _ := tokens.GenerateJWT(1, auth.RoleAdmin, time.Now().Add(time.Hour))

	h := &Handlers{
		JobHandler:    mockJobHandler,
		ServerHandler: mockServerHandler,
		OrderHandler:  mockOrderHandler,
		Tokens:        tokens,
		Metrics:       New(&service.Services{}, nil, tokens, prometheus.NewRegistry()).Metrics,
	}

	router := chi.NewRouter()
	h.InitRoutes(router)

	tests := []struct {
		method string
		url    string
		token  string
		status int
	}{
		{"GET", "/metrics", "", http.StatusOK},
		{"GET", "/swagger/doc.json", "", http.StatusOK},
		{"GET", "/api/admin/jobs/status", "", http.StatusUnauthorized},
		{"GET", "/api/admin/jobs/status", userToken, http.StatusForbidden},
		{"GET", "/api/admin/jobs/status", adminToken, http.StatusOK},
		{"GET", "/api/admin/jobs/runs", adminToken, http.StatusOK},
		{"GET", "/api/admin/jobs/runs/abc", adminToken, http.StatusOK},
		{"POST", "/api/admin/jobs/maintenance_sweep/trigger", adminToken, http.StatusOK},
		{"POST", "/api/admin/jobs/maintenance_sweep/trigger", userToken, http.StatusForbidden},
		{"POST", "/api/admin/orders/5/provision", adminToken, http.StatusOK},
		{"POST", "/api/servers/7/extend", "", http.StatusUnauthorized},
		{"POST", "/api/servers/7/extend", userToken, http.StatusOK},
		{"GET", "/api/servers/7/lifecycle", userToken, http.StatusOK},
		{"GET", "/api/orders/5/refund", userToken, http.StatusOK},
		{"GET", "/api/orders/5/lifecycle", userToken, http.StatusOK},
		{"GET", "/api/orders/5/lifecycle", "", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.url, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
