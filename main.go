// File: subwatch/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"subwatch/config"
	croncmd "subwatch/cron"
	"subwatch/database"
	subscriptionRepo "subwatch/database/repository/subscription"
	userRepo "subwatch/database/repository/user"
	"subwatch/handlers"
	"subwatch/middleware"
	"subwatch/routes"
	"subwatch/services/notification"
	"subwatch/services/reminder"
	"subwatch/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	mongoClient, err := database.Connect(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(config.AppConfig.DatabaseName)
	logger.Info("Connected to MongoDB successfully!")

	redisClient, err := utils.NewDispatchCacheClient()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to Redis: %v", err)
	}

	messagingClient, err := utils.NewMessagingClient(ctx)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize Firebase messaging: %v", err)
	}

	// repositories.
	usersRepo := userRepo.NewMongoUserRepo(db, logger)
	subsRepo := subscriptionRepo.NewMongoSubscriptionRepo(db, logger)

	// services.
	pushSender, err := notification.NewFCMPushSender(messagingClient, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize push sender: %v", err)
	}

	engine := &reminder.Engine{
		Users:  usersRepo,
		Subs:   subsRepo,
		Push:   pushSender,
		Dedup:  reminder.NewRedisDedupStore(redisClient),
		Logger: logger,
		Hours: reminder.ClassHours{
			Billing:    config.AppConfig.BillingHour,
			Payday:     config.AppConfig.PaydayHour,
			Marketing:  config.AppConfig.MarketingHour,
			Engagement: config.AppConfig.EngagementHour,
		},
	}

	reminderCron, err := croncmd.StartReminderCron(engine, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to start reminder cron: %v", err)
	}

	// Create the Gin router.
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	healthHandler := handlers.NewHealthHandler(mongoClient, redisClient)
	reminderHandler := handlers.NewReminderHandler(engine, logger)
	routes.RegisterRoutes(router, healthHandler, reminderHandler)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: HTTP server failed: %v", err)
		}
	}()

	// Block until a shutdown signal arrives, then drain.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	cronCtx := reminderCron.Stop()
	<-cronCtx.Done()

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: HTTP shutdown failed: %v", err)
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Sugar().Errorf("main: MongoDB disconnect failed: %v", err)
	}
	if err := redisClient.Close(); err != nil {
		logger.Sugar().Errorf("main: Redis close failed: %v", err)
	}
	logger.Info("shutdown complete")
}
