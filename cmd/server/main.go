package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/aidesk/saas-backend/internal/cache"
	"github.com/aidesk/saas-backend/internal/config"
	"github.com/aidesk/saas-backend/internal/database"
	"github.com/aidesk/saas-backend/internal/handler"
	"github.com/aidesk/saas-backend/internal/logger"
	"github.com/aidesk/saas-backend/internal/middleware"
	"github.com/aidesk/saas-backend/internal/queue"
	"github.com/aidesk/saas-backend/internal/repository"
	"github.com/aidesk/saas-backend/internal/router"
	queue_publisher "github.com/aidesk/saas-backend/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	zl := logger.New()
	defer func() { _ = zl.Sync() }()
	log := zl.Sugar()

	client, db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalw("mongo unavailable", "error", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, list caching disabled")
	}
	pages := cache.New(rdb)

	userRepo := repository.NewUserRepo(db)
	businessRepo := repository.NewBusinessRepo(db)
	publisher := queue_publisher.New(cfg.AMQPURL, log)

	users := handler.NewUserHandler(cfg, userRepo, pages, log)
	business := handler.NewBusinessHandler(cfg, businessRepo, userRepo, pages, publisher, log)

	go func() {
		if err := queue.StartTicketConsumer(log, cfg.AMQPURL, businessRepo); err != nil {
			log.Errorw("ticket consumer stopped", "error", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(middleware.RequestLogger(zl))
	e.Use(middleware.Metrics())

	router.Register(e, users, business, cfg.JWTSecret)

	go func() {
		addr := ":" + cfg.Port
		log.Infow("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Warnw("http shutdown", "error", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := database.Close(client); err != nil {
		log.Warnw("mongo disconnect", "error", err)
	}
}
