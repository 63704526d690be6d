package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"riverpatch-inquiry-backend/config"
	"riverpatch-inquiry-backend/internal/app"
	"riverpatch-inquiry-backend/pkg/logger"
	"riverpatch-inquiry-backend/pkg/security"

	"github.com/gin-gonic/gin"
)

// @title           RiverPatch Inquiry API
// @version         1.0
// @description     Relays project inquiries from the RiverPatch website to the studio mailbox.
// @host            localhost:5000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup Loggers
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	secLog := security.NewProductionLogger("riverpatch-inquiry", cfg.Environment)
	defer func() { _ = secLog.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	log.Info("Starting inquiry backend",
		"port", cfg.Port,
		"env", cfg.Environment,
		"mail_provider", cfg.MailProvider,
		"allowed_origins", cfg.AllowedOrigins,
	)

	// 3. Setup Router
	router, err := app.New(cfg, log, secLog)
	if err != nil {
		log.Error("Failed to build application", "error", err)
		os.Exit(1)
	}

	if cfg.Serverless {
		// The platform invokes api/index.go; nothing to listen on here.
		log.Info("Serverless environment detected, not starting listener")
		return
	}

	// 4. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Long enough for an in-flight send to finish
	ctx, cancel := context.WithTimeout(context.Background(), cfg.SendTimeout+time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", "error", err)
	}

	log.Info("Server exiting")
}
