package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"connectrpc.com/connect"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mmynk/attendance/internal/app"
	"github.com/mmynk/attendance/internal/auth"
	"github.com/mmynk/attendance/internal/metrics"
	"github.com/mmynk/attendance/internal/middleware"
	"github.com/mmynk/attendance/internal/service"
	"github.com/mmynk/attendance/internal/storage"
	"github.com/mmynk/attendance/pkg/api"
)

type routerDeps struct {
	app        *app.App
	gate       auth.Authenticator
	jwtManager *auth.JWTManager
	// store is nil when the server syncs through a remote group store.
	store      storage.GroupStore
	syncToken  string
	metrics    *metrics.Metrics
	staticPath string
}

// newRouter mounts the Connect services, /metrics, /healthz and the optional
// static directory.
func newRouter(deps routerDeps) (http.Handler, error) {
	router := mux.NewRouter()

	sessionInterceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(deps.jwtManager, api.AuthServiceLoginProcedure),
	)

	rosterPath, rosterHandler := api.NewRosterServiceHandler(service.NewRosterService(deps.app), sessionInterceptors)
	router.PathPrefix(rosterPath).Handler(rosterHandler)

	authPath, authHandler := api.NewAuthServiceHandler(service.NewAuthService(deps.gate, deps.jwtManager, deps.app, nil), sessionInterceptors)
	router.PathPrefix(authPath).Handler(authHandler)

	if deps.store != nil && deps.syncToken != "" {
		storePath, storeHandler := api.NewGroupStoreServiceHandler(service.NewStoreService(deps.store), connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			middleware.RequireToken(deps.syncToken),
		))
		router.PathPrefix(storePath).Handler(storeHandler)
		slog.Info("Group store service enabled", "path", storePath)
	}

	router.Handle("/metrics", deps.metrics.Handler()).Methods(http.MethodGet)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	if deps.staticPath != "" {
		staticDir, err := filepath.Abs(deps.staticPath)
		if err != nil {
			return nil, err
		}
		slog.Info("Serving static files", "path", staticDir)
		router.PathPrefix("/").Handler(staticHandler(staticDir))
	}

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodPost, http.MethodGet, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "Connect-Protocol-Version", "Connect-Timeout-Ms"}),
		handlers.ExposedHeaders([]string{"Connect-Protocol-Version", "Connect-Timeout-Ms"}),
	)
	recovery := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))

	return recovery(loggingMiddleware(cors(router))), nil
}

// staticHandler serves files from dir, falling back to index.html for
// unknown paths.
func staticHandler(dir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(dir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(dir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
