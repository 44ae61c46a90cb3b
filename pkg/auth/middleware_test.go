package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	userToken, _ := jwtService.GenerateJWT(7, RoleUser, time.Now().Add(time.Hour))
	adminToken, _ := jwtService.GenerateJWT(1, RoleAdmin, time.Now().Add(time.Hour))

	var gotUser int
	var gotRole string
	protected := AuthMiddleware(jwtService)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserID(r.Context())
		gotRole, _ = r.Context().Value(RoleKey).(string)
		w.WriteHeader(http.StatusOK)
	}))
	admin := AuthMiddleware(jwtService)(RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	tests := []struct {
		name         string
		handler      http.Handler
		header       string
		expectedCode int
	}{
		{name: "no header", handler: protected, expectedCode: http.StatusUnauthorized},
		{name: "not bearer", handler: protected, header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "bad token", handler: protected, header: "Bearer nope", expectedCode: http.StatusUnauthorized},
		{name: "user", handler: protected, header: "Bearer " + userToken, expectedCode: http.StatusOK},
		{name: "user on admin route", handler: admin, header: "Bearer " + userToken, expectedCode: http.StatusForbidden},
		{name: "admin on admin route", handler: admin, header: "Bearer " + adminToken, expectedCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			tt.handler.ServeHTTP(w, r)
			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer "+userToken)
	protected.ServeHTTP(httptest.NewRecorder(), r)
	assert.Equal(t, 7, gotUser)
	assert.Equal(t, RoleUser, gotRole)
}
