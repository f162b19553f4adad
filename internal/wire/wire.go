package wire

import (
	"box-office/internal/adaptor"
	"box-office/internal/data/repository"
	"box-office/internal/usecase"
	"box-office/pkg/database"
	"box-office/pkg/metrics"
	"box-office/pkg/middleware"
	"box-office/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Deps are the long-lived clients main hands to Wiring.
type Deps struct {
	DB       database.PgxIface
	Redis    *redis.Client
	Registry *prometheus.Registry
}

// Wiring builds services, handlers and the router.
func Wiring(deps Deps, config *utils.Config, logger *zap.Logger) *App {
	m := metrics.New(config.HTTP.MetricsNamespace, deps.Registry)

	repo := repository.NewRepository(deps.DB, logger)
	service := usecase.NewService(repo, config, deps.Redis, m, logger)
	handler := adaptor.NewHandler(service, deps.DB, logger)

	return &App{
		Router: setupRouter(handler, deps.Registry, m, config, logger),
	}
}

func setupRouter(
	handler *adaptor.Handler,
	registry *prometheus.Registry,
	m *metrics.Metrics,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.Metrics(m.HTTP))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.HTTP.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	wireVenue(r, handler.Venue)
	wireProduction(r, handler.Production, handler.Discount, handler.Booking)
	wireDiscount(r, handler.Discount)
	wireBooking(r, handler.Booking)

	r.Get("/health", handler.Health.Health)
	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	return r
}
