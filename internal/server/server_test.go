package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mm "github.com/rockrider-app/backend/internal/middleware"
	"github.com/rockrider-app/backend/internal/service/mock"
)

// The health route is mounted on the bare mux after SetupRouter, the same
// order main uses. chi panics if a route is registered before the router's
// middlewares, so the order must stay route-last.
func TestSetupRouter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	svc := mock.NewMockService(ctrl)

	r := chi.NewMux()

	require.NotPanics(t, func() {
		SetupRouter(svc, mm.NewAuth("secret", time.Hour), mm.NewRateLimiter(10, time.Minute), r, time.Second)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// a v1 route is reachable through the middleware chain
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/feed/following", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
