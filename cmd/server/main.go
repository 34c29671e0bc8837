package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mzhdanov/bugtrack/internal/config"
	"github.com/mzhdanov/bugtrack/internal/events"
	"github.com/mzhdanov/bugtrack/internal/handlers"
	"github.com/mzhdanov/bugtrack/internal/logging"
	authmw "github.com/mzhdanov/bugtrack/internal/middleware/auth"
	"github.com/mzhdanov/bugtrack/internal/repository"
	"github.com/mzhdanov/bugtrack/internal/revocation"
	"github.com/mzhdanov/bugtrack/internal/search"
	"github.com/mzhdanov/bugtrack/internal/service"
	"github.com/mzhdanov/bugtrack/internal/token"
	httpserver "github.com/mzhdanov/bugtrack/internal/transport/http"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)
	slog.SetDefault(logger)

	db, err := cfg.InitDB()
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *events.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = events.NewProducer([]string{cfg.KAFKA_ADDRESS})
	}

	var searchSvc *search.Service
	if cfg.ES_URL != "" {
		esClient, err := search.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			logger.Warn("elasticsearch unavailable, search disabled", "error", err)
		} else {
			searchSvc = search.NewService(esClient)
		}
	}

	codec := token.NewCodec([]byte(cfg.JWT_SECRET), cfg.TokenTTL())

	var registry revocation.Registry = revocation.NewMemoryRegistry()
	if rdb := config.NewRedisClient(cfg); rdb != nil {
		registry = revocation.NewRedisRegistry(rdb, codec)
		logger.Info("using redis revocation registry", "addr", cfg.REDIS_ADDR)
	}

	userRepo := &repository.UserRepo{DB: db}
	menuRepo := &repository.MenuRepo{DB: db}
	reportRepo := &repository.ReportRepo{DB: db}
	commentRepo := &repository.CommentRepo{DB: db}

	authSvc := &service.AuthService{Users: userRepo, Codec: codec, Revoked: registry, Producer: producer}
	reportSvc := &service.ReportService{Reports: reportRepo, Menus: menuRepo, Users: userRepo, Producer: producer, Search: searchSvc}
	querySvc := &service.QueryService{Reports: reportRepo}
	menuSvc := &service.MenuService{Menus: menuRepo, Reports: reportRepo}
	commentSvc := &service.CommentService{Comments: commentRepo, Reports: reportRepo}

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := logging.IntoContext(c.Request().Context(), logger)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	})

	deps := httpserver.Deps{
		Auth:     &handlers.AuthHandler{Auth: authSvc, TokenTTL: cfg.TokenTTL()},
		Reports:  &handlers.ReportHandler{Reports: reportSvc, Query: querySvc},
		Menus:    &handlers.MenuHandler{Menus: menuSvc},
		Comments: &handlers.CommentHandler{Comments: commentSvc},
		Search:   &handlers.SearchHandler{Search: searchSvc},
		Admin:    &handlers.AdminHandler{Users: userRepo, Reports: reportRepo},
		Session:  &authmw.SessionMiddleware{Auth: authSvc},
	}
	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         cfg.HTTP_ADDR,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if err := producer.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
