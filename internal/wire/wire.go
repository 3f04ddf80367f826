package wire

import (
	"net/http"

	"venue-scheduler/internal/adaptor"
	"venue-scheduler/internal/data/repository"
	"venue-scheduler/internal/usecase"
	"venue-scheduler/pkg/events"
	"venue-scheduler/pkg/lock"
	"venue-scheduler/pkg/middleware"
	"venue-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Infra carries the optional backends. A nil Redis disables the
// admission lock and the rate limiter; a nil Publisher drops events.
type Infra struct {
	Redis     *redis.Client
	Publisher events.Publisher
}

// Wiring builds services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, infra Infra, logger *zap.Logger) *App {
	var locker lock.Locker = lock.NopLocker{}
	if infra.Redis != nil {
		locker = lock.NewRedisLocker(infra.Redis, "venue", logger)
	}
	publisher := infra.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	service := usecase.NewService(repo, config, locker, publisher, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router: setupRouter(handler, infra.Redis, config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	rdb *redis.Client,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins...))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RateLimit(rdb, config.RateLimit, logger))

		wireHall(r, handler.Hall)
		wireMovie(r, handler.Movie)
		wireSchedule(r, handler.Schedule, handler.Booking)
		wireBooking(r, handler.Booking)
	})

	return r
}
