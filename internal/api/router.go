package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/eventbook/server/internal/api/handlers"
	"github.com/eventbook/server/internal/api/middleware"
	"github.com/eventbook/server/internal/auth"
	"github.com/eventbook/server/internal/config"
	"github.com/eventbook/server/internal/domain/accounts"
	"github.com/eventbook/server/internal/domain/events"
	"github.com/eventbook/server/internal/metrics"
	"github.com/eventbook/server/internal/storage/postgres"
)

// NewRouter wires repositories, services, and handlers onto a ServeMux and
// wraps the whole tree in the shared middleware chain.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool, version, gitCommit, buildDate string) http.Handler {
	eventsRepo := postgres.NewEventsRepository(pool)
	accountsRepo := postgres.NewAccountsRepository(pool)

	eventsService := events.NewService(eventsRepo, cfg.Server.BaseURL)
	accountsService := accounts.NewService(accountsRepo, logger)

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.Auth.Issuer)

	eventsHandler := handlers.NewEventsHandler(eventsService, cfg.Environment)
	authHandler := handlers.NewAuthHandler(accountsService, tokens, cfg.Environment)
	health := handlers.NewHealthChecker(pool, version, gitCommit)

	requireIdentity := middleware.RequireIdentity(cfg.Environment)

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", health.Readiness())
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.Handle("/version", VersionHandler(version, gitCommit, buildDate))

	mux.Handle("/api", handlers.Index(cfg.Server.BaseURL))
	mux.Handle("/api/auth/token", methodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Token),
	}))
	mux.Handle("/api/events", methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(eventsHandler.List),
		http.MethodPost: requireIdentity(http.HandlerFunc(eventsHandler.Create)),
	}))
	mux.Handle("/api/events/{id}", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(eventsHandler.Get),
		http.MethodPut: requireIdentity(http.HandlerFunc(eventsHandler.Update)),
	}))

	var handler http.Handler = mux
	handler = middleware.BearerAuth(tokens, cfg.Environment)(handler)
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler
}

func methodMux(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := handlers[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(handlers))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(handlers map[string]http.Handler) string {
	methods := make([]string, 0, len(handlers))
	for method := range handlers {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
