package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/auth"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/config"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/database"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/events"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/handlers"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/logging"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/obs"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/repository/memory"
	"github.com/justsurfingit/Odd-Jobs-Marketplace/internal/services"
)

const serviceName = "odd-jobs-marketplace"

func main() {
	// 1. Load configuration (.env is optional)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.Production())
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracing
	shutdownTracer, err := obs.InitTracer(ctx, serviceName, cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		logger.WithError(err).Fatal("tracer init failed")
	}

	// 3. Storage
	store, ping, closeStore := openStore(cfg, logger)
	defer closeStore()

	// 4. Domain events
	var pub events.Publisher = events.Noop{}
	if cfg.RabbitURL != "" {
		p, err := events.NewAMQPPublisher(cfg.RabbitURL, cfg.EventsExchange)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, events disabled")
		} else {
			pub = p
			logger.WithField("exchange", cfg.EventsExchange).Info("publishing domain events")
		}
	}
	defer pub.Close()

	// 5. Services and router
	router := handlers.NewRouter(handlers.RouterConfig{
		ServiceName:  serviceName,
		CORSOrigins:  cfg.CORSOrigins,
		Jobs:         services.NewJobService(store, pub, logger),
		Applications: services.NewApplicationService(store, pub, logger),
		Profiles:     services.NewProfileService(store, pub, logger),
		Admin:        services.NewAdminService(store, pub, logger),
		Sessions:     auth.NewResolver(auth.NewVerifier(cfg.JWTSecret), store.Roles),
		Ping:         ping,
		Log:          logger,
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed to start")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.WithError(err).Warn("tracer shutdown")
	}
}

func openStore(cfg config.App, logger *logrus.Logger) (*repository.Store, func(context.Context) error, func()) {
	if cfg.StoreDriver == config.DriverMemory {
		logger.Warn("using in-memory store, data is lost on exit")
		return memory.NewStore().Repositories(), nil, func() {}
	}
	db, err := database.Connect(cfg.DatabaseURL, logger)
	if err != nil {
		logger.WithError(err).Fatal("database connection failed")
	}
	return repository.NewGormStore(db), database.Pinger(db), func() {
		if err := database.Close(db); err != nil {
			logger.WithError(err).Warn("close database")
		}
	}
}
