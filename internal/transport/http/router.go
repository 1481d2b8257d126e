// Package http
package http

import (
	"net/http"

	"socprobe/internal/config"
	"socprobe/internal/logger"
	"socprobe/internal/transport/http/middleware"
)

type RouterDeps struct {
	Telemetry *TelemetryHandler
	History   *HistoryHandler
	Auth      *AuthHandler

	Metrics   http.Handler
	Ws        http.HandlerFunc
	Validator middleware.TokenValidator

	Log logger.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))
	globalMw.Use(middleware.Logging(deps.Log))

	apiStack := middleware.New()
	if cfg.AuthEnabled() && deps.Validator != nil {
		apiStack.Use(middleware.JWT(deps.Validator))
	}

	// HEALTH
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	if deps.Ws != nil {
		mux.HandleFunc("GET /ws", deps.Ws)
	}

	// PROMETHEUS
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	// AUTH
	if deps.Auth != nil {
		mux.HandleFunc("POST /api/v1/auth/token", deps.Auth.Token)
	}

	// TELEMETRY
	mux.Handle("GET /api/v1/snapshot", apiStack.Then(http.HandlerFunc(deps.Telemetry.Snapshot)))
	mux.Handle("GET /api/v1/families", apiStack.Then(http.HandlerFunc(deps.Telemetry.Families)))
	mux.Handle("GET /api/v1/props/{key}", apiStack.Then(http.HandlerFunc(deps.Telemetry.Prop)))
	mux.Handle("GET /api/v1/stats", apiStack.Then(http.HandlerFunc(deps.Telemetry.Stats)))
	mux.Handle("POST /api/v1/reset", apiStack.Then(http.HandlerFunc(deps.Telemetry.Reset)))
	mux.Handle("GET /api/v1/{family...}", apiStack.Then(http.HandlerFunc(deps.Telemetry.Family)))

	// HISTORY
	mux.Handle("GET /api/v1/history", apiStack.Then(http.HandlerFunc(deps.History.Index)))

	return globalMw.Then(mux)
}
