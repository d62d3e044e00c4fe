package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"gorm.io/gorm"

	"github.com/totegamma/shoplist/internal/config"
	"github.com/totegamma/shoplist/internal/infra/database"
	"github.com/totegamma/shoplist/internal/infra/repository"
	"github.com/totegamma/shoplist/internal/infra/tracing"
	"github.com/totegamma/shoplist/internal/present/rest"
	"github.com/totegamma/shoplist/internal/present/rest/middleware"
	"github.com/totegamma/shoplist/internal/service"
	"github.com/totegamma/shoplist/internal/usecase"
)

const serviceName = "shoplist"

func main() {
	configPath := flag.String("config", os.Getenv("SHOPLIST_CONFIG"), "path to an optional YAML config file")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", slog.String("error", err.Error()), slog.String("module", "main"))
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()), slog.String("module", "main"))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, serviceName, conf.Server.EnableTrace, conf.Server.TraceEndpoint)
	if err != nil {
		slog.Error("failed to set up tracing", slog.String("error", err.Error()), slog.String("module", "main"))
		os.Exit(1)
	}

	db, err := database.NewPostgres(conf.Server.PostgresDsn)
	if err != nil {
		panic("failed to connect database")
	}

	err = database.MigratePostgres(db)
	if err != nil {
		panic("failed to migrate database")
	}
	slog.Info("database initialized", slog.String("module", "main"))

	var events usecase.EventPublisher
	var realtime rest.RealtimeSource
	if conf.Server.RedisAddr != "" {
		rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		if err != nil {
			slog.Error("failed to connect redis", slog.String("error", err.Error()), slog.String("module", "main"))
			os.Exit(1)
		}
		defer rdb.Close()

		signalService := service.NewSignalService(rdb)
		events = signalService
		realtime = signalService
		slog.Info("realtime updates enabled", slog.String("redis", conf.Server.RedisAddr), slog.String("module", "main"))
	}

	itemRepo := repository.NewItemRepository(db)
	tagRepo := repository.NewTagRepository(db)

	itemUsecase := usecase.NewItemUsecase(itemRepo, events)
	tagUsecase := usecase.NewTagUsecase(tagRepo, events)

	handler := rest.NewHandler(itemUsecase, tagUsecase, realtime, pingDatabase(db))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(otelecho.Middleware(serviceName))
	e.Use(middleware.Frontend(conf.Server.StaticDir))

	handler.RegisterRoutes(e)

	go func() {
		slog.Info("server running", slog.String("addr", conf.Server.ListenAddr()), slog.String("module", "main"))
		if err := e.Start(conf.Server.ListenAddr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server stopped", slog.String("error", err.Error()), slog.String("module", "main"))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shut down server", slog.String("error", err.Error()), slog.String("module", "main"))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		slog.Error("failed to flush traces", slog.String("error", err.Error()), slog.String("module", "main"))
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

func pingDatabase(db *gorm.DB) rest.HealthCheck {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
