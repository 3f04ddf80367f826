package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"venue-scheduler/internal/data/repository"
	"venue-scheduler/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func testApp() *App {
	config := &utils.Config{
		App:      utils.AppConfig{Timezone: "UTC"},
		Redis:    utils.RedisConfig{LockTTL: time.Second},
		Schedule: utils.ScheduleConfig{BookingWindowDays: 30},
	}
	return Wiring(&repository.Repository{}, config, Infra{}, zap.NewNop())
}

// Every route below is rejected before any repository call.
func TestRoutes(t *testing.T) {
	app := testApp()

	tests := []struct {
		method string
		target string
		body   string
		code   int
	}{
		{http.MethodGet, "/health", "", http.StatusOK},
		{http.MethodGet, "/api/halls/not-a-uuid", "", http.StatusBadRequest},
		{http.MethodGet, "/api/halls/not-a-uuid/seats", "", http.StatusBadRequest},
		{http.MethodPost, "/api/halls/not-a-uuid/seats/validate", `{"seats":"A1"}`, http.StatusBadRequest},
		{http.MethodPost, "/api/halls", `{"name":""}`, http.StatusBadRequest},
		{http.MethodGet, "/api/movies/not-a-uuid/showtimes", "", http.StatusBadRequest},
		{http.MethodGet, "/api/movies/now-showing?date=tomorrow", "", http.StatusBadRequest},
		{http.MethodGet, "/api/schedules?date=1999-01-01", "", http.StatusBadRequest},
		{http.MethodPost, "/api/schedules", `{}`, http.StatusBadRequest},
		{http.MethodGet, "/api/schedules/not-a-uuid/booked-seats", "", http.StatusBadRequest},
		{http.MethodGet, "/api/bookings", "", http.StatusBadRequest},
		{http.MethodDelete, "/api/bookings/not-a-uuid?user_id=also-not", "", http.StatusBadRequest},
		{http.MethodGet, "/api/nowhere", "", http.StatusNotFound},
		{http.MethodPatch, "/api/halls/x", "", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}
