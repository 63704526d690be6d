// Package handler is the serverless entrypoint. The platform calls Handler for
// every request; the router is built once per instance.
package handler

import (
	"encoding/json"
	"net/http"
	"sync"

	"riverpatch-inquiry-backend/config"
	"riverpatch-inquiry-backend/internal/app"
	"riverpatch-inquiry-backend/pkg/logger"
	"riverpatch-inquiry-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

var (
	once    sync.Once
	router  http.Handler
	secLog  *security.SecurityLogger
	initErr error
)

func build() {
	cfg, err := config.LoadConfig()
	if err != nil {
		initErr = err
		return
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	log.Info("Cold start", "env", cfg.Environment, "allowed_origins", cfg.AllowedOrigins)

	secLog = security.NewProductionLogger("riverpatch-inquiry", cfg.Environment)
	router, initErr = app.New(cfg, log, secLog)
}

// Handler serves one request
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(build)

	if initErr != nil {
		logger.New("error", "json").Error("Inquiry backend is misconfigured", "error", initErr)
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Server misconfigured."})
		return
	}

	// The instance may be frozen as soon as the response is written.
	defer func() { _ = secLog.Sync() }()

	router.ServeHTTP(w, r)
}
