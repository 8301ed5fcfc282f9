package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kanban_board/internal/config"
	"kanban_board/internal/db"
	httpServer "kanban_board/internal/http"
	"kanban_board/internal/http/handlers"
	"kanban_board/internal/http/middleware"
	"kanban_board/internal/logger"
	"kanban_board/internal/repository"
	"kanban_board/internal/service"
	"kanban_board/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	r := gin.Default()

	// CORS for a frontend served from another origin.
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	middleware.InitRedisRateLimiter(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var dedup service.Deduper
	if rc := middleware.Client(); rc != nil {
		dedup = service.NewMoveDeduper(rc, cfg.MoveDedupTTL)
	} else {
		logger.Warn("redis not configured, move replay detection disabled")
	}

	hub := ws.NewHub()
	boardSvc := service.NewBoardService(
		repository.NewTaskRepository(pool),
		repository.NewBucketRepository(pool),
		dedup,
		hub,
	)

	h := handlers.NewHandler(boardSvc)
	health := handlers.NewHealthHandler(pool, cfg.Version)
	httpServer.RegisterRoutes(r, h, health, hub, cfg.APIRateLimit, cfg.APIRateWindow)

	srv := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: r,
	}

	go func() {
		logger.Info("server started", "port", cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
