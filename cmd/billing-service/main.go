package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Dhoini/Billing-microservice/internal/api/rest"
	"github.com/Dhoini/Billing-microservice/internal/api/rest/handlers"
	"github.com/Dhoini/Billing-microservice/internal/config"
	"github.com/Dhoini/Billing-microservice/internal/db"
	"github.com/Dhoini/Billing-microservice/internal/kafka"
	"github.com/Dhoini/Billing-microservice/internal/metrics"
	"github.com/Dhoini/Billing-microservice/internal/notification"
	"github.com/Dhoini/Billing-microservice/internal/repository"
	"github.com/Dhoini/Billing-microservice/internal/service"
	"github.com/Dhoini/Billing-microservice/pkg/logger"
)

func main() {
	log := logger.New(os.Getenv("LOG_LEVEL"))

	log.Infow("Billing microservice starting up...")

	cfg, err := config.LoadConfig(".env")
	if err != nil {
		log.Fatalw("Failed to load configuration", "error", err)
	}
	if os.Getenv("LOG_LEVEL") == "" {
		log = logger.New(cfg.App.LogLevel)
	}
	defer log.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbClient, err := db.NewDBClient(cfg.Database.DSN, log)
	if err != nil {
		log.Fatalw("Failed to connect to database", "error", err)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			log.Errorw("Error closing database connection", "error", err)
		}
	}()
	log.Infow("Database connection established")

	if err := repository.EnsureCustomerSchema(context.Background(), dbClient.DB()); err != nil {
		log.Fatalw("Failed to ensure database schema", "error", err)
	}

	baseRepo := repository.NewPostgresCustomerRepository(dbClient.DB(), log)

	customerRepo := baseRepo
	if cfg.Redis.Addr != "" {
		redisCache, err := repository.NewRedisCacheRepository(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, log)
		if err != nil {
			log.Warnw("Failed to initialize Redis cache, continuing without caching", "error", err)
		} else {
			log.Infow("Redis cache initialized")
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Errorw("Error closing Redis connection", "error", err)
				}
			}()
			customerRepo = repository.NewCachedCustomerRepository(baseRepo, redisCache, log)
		}
	}

	var producer kafka.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, log)
		if err != nil {
			log.Errorw("Failed to initialize Kafka producer, continuing without event publishing", "error", err)
			producer = nil
		} else {
			log.Infow("Kafka producer initialized")
			defer func() {
				if err := producer.Close(); err != nil {
					log.Errorw("Error closing Kafka producer", "error", err)
				}
			}()
		}
	}

	registry := prometheus.NewRegistry()
	processingMetrics := metrics.NewProcessingMetrics(registry)

	var mailer notification.Mailer
	if cfg.SMTP.Host != "" {
		mailer = notification.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From, log)
		log.Infow("SMTP mailer configured", "host", cfg.SMTP.Host)
	} else {
		mailer = notification.NewLogMailer(log)
		log.Warnw("SMTP host not configured, emails will only be logged")
	}

	pdfGenerator := notification.NewPDFGenerator(cfg.Notification.TemplatePath, cfg.Notification.OutputDir, log)
	notifier := notification.NewDebitNoteNotifier(pdfGenerator, mailer, log)

	customerService := service.NewCustomerService(customerRepo, processingMetrics, log)
	processingService := service.NewProcessingService(customerRepo, notifier, producer, processingMetrics, cfg.Processing.Workers, log)

	customerHandler := handlers.NewCustomerHandler(customerService, log)
	processHandler := handlers.NewProcessHandler(processingService, log)

	router := rest.SetupRouter(log, registry, customerHandler, processHandler)
	server := rest.NewServer(router, cfg, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalw("Failed to start HTTP server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Infow("HTTP server gracefully stopped")
	}

	log.Infow("Cleanup finished. Goodbye!")
}
