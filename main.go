package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediconnect/config"
	"mediconnect/cron"
	"mediconnect/database"
	appointmentRepoPkg "mediconnect/database/repository/appointment"
	doctorRepoPkg "mediconnect/database/repository/doctor"
	patientRepoPkg "mediconnect/database/repository/patient"
	"mediconnect/handlers"
	"mediconnect/routes"
	"mediconnect/services/assistant"
	"mediconnect/services/auth"
	"mediconnect/services/booking"
	"mediconnect/services/doctor"
	"mediconnect/services/notification"
	"mediconnect/services/payments"
	"mediconnect/services/scheduling"
	"mediconnect/services/storage"
	"mediconnect/services/tasks"
	"mediconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()
	utils.FirebaseInit()
	stripe.Key = config.AppConfig.StripeKey

	storageSvc, err := storage.NewCloudinaryStorage()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage: %v", err)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Repositories.
	doctorRepo := doctorRepoPkg.NewMongoDoctorRepo()
	patientRepo := patientRepoPkg.NewMongoPatientRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// Services.
	notificationSvc := notification.NewDefaultNotificationService(doctorRepo, patientRepo)

	reminderClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer reminderClient.Close()
	reminders := tasks.NewAsynqReminderScheduler(reminderClient)

	gateway := payments.NewStripeGateway("inr", logger)
	bookingSvc := booking.NewDefaultBookingService(
		scheduling.NewEngine(), doctorRepo, appointmentRepo, gateway, notificationSvc, reminders)
	authSvc := auth.NewDefaultAuthService(doctorRepo, patientRepo)
	doctorSvc := doctor.NewDefaultDoctorService(doctorRepo, appointmentRepo)
	webhooks := payments.NewWebhookProcessor(
		config.AppConfig.StripeWebhookSecret, appointmentRepo, notificationSvc, logger)

	var assistantSvc assistant.AssistantService
	if config.AppConfig.GeminiAPIKey != "" {
		gemini, err := assistant.NewGeminiClient(config.AppConfig.GeminiAPIKey)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize assistant: %v", err)
		}
		assistantSvc = assistant.NewDefaultAssistantService(gemini, doctorRepo)
	} else {
		logger.Info("assistant disabled, no gemini api key configured")
	}

	handlerBundle := handlers.NewHandlerBundle(
		authSvc, doctorSvc, bookingSvc, patientRepo, webhooks, assistantSvc, storageSvc)
	routes.RegisterRoutes(router, handlerBundle)

	// Background workers.
	cron.InitReminderWorker(notificationSvc)
	utils.StartHealthMonitor(map[string]*redis.Client{"sessions": utils.GetAuthCacheClient()}, database.MongoClient)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	logger.Sugar().Info("main: server stopped gracefully")
}
