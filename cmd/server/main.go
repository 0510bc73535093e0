package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"consentd/internal/audit"
	consenthandler "consentd/internal/consent/handler"
	consentservice "consentd/internal/consent/service"
	eventhandler "consentd/internal/event/handler"
	eventservice "consentd/internal/event/service"
	eventstore "consentd/internal/event/store"
	"consentd/internal/platform/config"
	"consentd/internal/platform/database"
	"consentd/internal/platform/health"
	"consentd/internal/platform/httpserver"
	"consentd/internal/platform/kafka/producer"
	"consentd/internal/platform/logger"
	"consentd/internal/platform/metrics"
	httptransport "consentd/internal/transport/http"
	userhandler "consentd/internal/user/handler"
	userservice "consentd/internal/user/service"
	userstore "consentd/internal/user/store"
)

// main wires dependencies and owns the process lifecycle. Business logic
// lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	log.Info("initializing consentd",
		"addr", cfg.Addr,
		"postgres", cfg.DatabaseURL != "",
		"kafka", cfg.KafkaBrokers != "",
	)

	dbCfg := database.DefaultConfig()
	dbCfg.URL = cfg.DatabaseURL
	pool, err := database.New(dbCfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	var (
		users  userstore.Store
		events eventstore.Store
	)
	if pool != nil {
		users = userstore.NewPostgres(pool.DB())
		events = eventstore.NewPostgres(pool.DB())
	} else {
		// In-memory pair mirrors the schema's ON DELETE CASCADE by hand.
		memEvents := eventstore.NewInMemory()
		memUsers := userstore.NewInMemory(userstore.WithCascade(memEvents.DeleteByUser))
		users = memUsers
		events = memEvents
	}

	var kafkaProducer *producer.Producer
	var auditStore audit.Store = audit.NewInMemoryStore()
	if cfg.KafkaBrokers != "" {
		kafkaProducer, err = producer.New(producer.DefaultConfig(cfg.KafkaBrokers), log)
		if err != nil {
			log.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		auditStore = audit.NewKafkaStore(kafkaProducer, cfg.AuditTopic)
	}
	auditor := audit.NewPublisher(auditStore,
		audit.WithAsyncBuffer(256),
		audit.WithPublisherLogger(log),
	)

	userSvc := userservice.NewService(users, auditor, log, userservice.WithMetrics(m))
	eventSvc := eventservice.NewService(events, users, auditor, log, eventservice.WithMetrics(m))
	consentSvc := consentservice.NewService(events, users, log, consentservice.WithMetrics(m))

	healthHandler := health.New()
	if pool != nil {
		healthHandler.RegisterCheck("database", func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Health(ctx)
		})
	}

	router := httptransport.NewRouter(log,
		userhandler.New(userSvc, log, m),
		eventhandler.New(eventSvc, log, m),
		consenthandler.New(consentSvc, log, m),
		healthHandler,
	)

	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting http server", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}

	auditor.Close()
	if kafkaProducer != nil {
		kafkaProducer.Close()
	}
	if pool != nil {
		if err := pool.Close(); err != nil {
			log.Error("failed to close database pool", "error", err)
		}
	}

	log.Info("server stopped")
}
