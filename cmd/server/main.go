// Package main runs the ProctorAI backend HTTP server with graceful shutdown.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/proctorai/backend/config"
	"github.com/proctorai/backend/internal/auth"
	"github.com/proctorai/backend/internal/events"
	"github.com/proctorai/backend/internal/interviews"
	"github.com/proctorai/backend/internal/middleware"
	"github.com/proctorai/backend/internal/report"
	"github.com/proctorai/backend/internal/store"
	"github.com/proctorai/backend/internal/web"
	"github.com/proctorai/backend/pkg/database"
	"github.com/proctorai/backend/pkg/response"
)

const version = "1.0.0"

func main() {
	logger := newLogger()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	ctx := context.Background()

	// The database is optional. Any failure here drops the service into
	// degraded mode: handlers answer with synthetic, unpersisted data.
	var st store.Store = store.NewDisabled()
	pool, err := database.Connect(ctx, cfg.Database.DSN(), logger)
	if err != nil {
		logger.Warn("database unavailable, running in degraded mode", zap.Error(err))
	} else if err := database.Migrate(ctx, pool); err != nil {
		logger.Warn("schema migration failed, running in degraded mode", zap.Error(err))
		pool.Close()
		pool = nil
	} else {
		st = store.NewPostgres(pool)
	}
	if pool != nil {
		defer pool.Close()
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
	authHandler := auth.NewHandler(jwtService, logger)
	interviewHandler := interviews.NewHandler(st, logger)
	eventHandler := events.NewHandler(st, logger)
	reportHandler := report.NewHandler(st, logger)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.CORSAllowedOrigins))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))

	router.GET("/health", func(c *gin.Context) {
		response.OK(c, "Video Proctoring System API is running", gin.H{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   version,
		})
	})
	router.GET("/", web.Index)

	api := router.Group("/api")
	{
		api.POST("/interviews/start", interviewHandler.Start)
		api.POST("/interviews/stop", interviewHandler.Stop)

		api.POST("/events/log", eventHandler.Log)
		api.POST("/logs", eventHandler.LogLegacy)

		api.POST("/auth/login", authHandler.Login)
		api.POST("/auth/register", authHandler.Register)
		api.GET("/auth/profile", authHandler.Profile)

		api.POST("/whatsapp/send", reportHandler.Send)
		api.GET("/whatsapp/test", reportHandler.Test)
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info("server listening",
			zap.String("port", cfg.Server.Port),
			zap.Bool("store_available", st.Available()),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger() *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, _ := config.Build()
	return logger
}
