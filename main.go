package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localconnect/config"
	"localconnect/cron"
	"localconnect/database"
	orderRepo "localconnect/database/repository/order"
	reviewRepo "localconnect/database/repository/review"
	ticketRepo "localconnect/database/repository/ticket"
	userRepo "localconnect/database/repository/user"
	workerRepo "localconnect/database/repository/worker"
	"localconnect/handlers"
	"localconnect/middleware"
	"localconnect/routes"
	"localconnect/services/cart"
	"localconnect/services/checkout"
	ai "localconnect/services/intelligence"
	"localconnect/services/listing"
	"localconnect/services/notification"
	"localconnect/services/order"
	"localconnect/services/payment"
	"localconnect/services/review"
	"localconnect/services/storage"
	"localconnect/services/tasks"
	"localconnect/services/user"
	"localconnect/services/worker"
	"localconnect/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	utils.InitRedis()
	utils.FirebaseInit()

	var store storage.StorageService
	if cloud, err := utils.Cloudinary(); err != nil {
		logger.Warn("main: cloudinary not configured, image uploads disabled", zap.Error(err))
	} else {
		store = cloud
	}

	// repositories.
	users := userRepo.NewMongoUserRepo(database.DB(database.MainConnection), logger)
	orders := orderRepo.NewMongoOrderRepo(database.DB(database.MainConnection), logger)
	workers := workerRepo.NewMongoWorkerRepo(database.DB(database.WorkersConnection), logger)
	tickets := ticketRepo.NewMongoTicketRepo(database.DB(database.TicketsConnection), logger)
	reviews := reviewRepo.NewMongoReviewRepo(database.DB(database.ReviewsConnection), logger)

	// services.
	cfg := config.AppConfig
	fees := cart.FeesFromConfig(cfg)
	policy := cart.DefaultPromoPolicy()
	sessions := utils.NewTokenSessions(utils.GetAuthCacheClient())

	listingService := listing.NewListingService(workers, tickets, store, logger)
	cartService := cart.NewCartService(
		cart.NewRedisStore(utils.GetCartCacheClient(), cfg.CartTTL),
		listingService, policy, fees, logger,
	)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.PaymentWindow, logger)

	queueOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
	queue := asynq.NewClient(queueOpts)
	defer queue.Close()
	expiry := tasks.NewExpiryScheduler(queue)

	checkoutConfig := checkout.Config{
		Currency:      cfg.Currency,
		Fees:          fees,
		PaymentWindow: cfg.PaymentWindow,
		ClientOrigin:  cfg.ClientOrigin,
	}
	flow := checkout.NewFlow(order.NewCheckoutStore(orders), gateway, expiry, checkoutConfig, logger)

	// A nil *messaging.Client must not reach the Sender interface.
	var sender notification.Sender
	if utils.FCMClient != nil {
		sender = utils.FCMClient
	}
	var notifier order.Notifier
	if svc, err := notification.NewDefaultNotificationService(sender, workers, logger); err != nil {
		logger.Warn("main: notifications disabled", zap.Error(err))
	} else {
		notifier = svc
	}

	orderService := &order.DefaultOrderService{
		Repo:     orders,
		Catalog:  listingService,
		Policy:   policy,
		Fees:     fees,
		Sessions: gateway,
		Carts:    cartService,
		Notifier: notifier,
		Profiles: workers,
		Expiry:   expiry,
		Config:   checkoutConfig,
		Logger:   logger,
	}

	userService := user.NewUserService(users, sessions, logger)
	workerService := worker.NewWorkerService(workers, sessions, logger)
	reviewService := review.NewReviewService(reviews, store, logger)

	var chatService ai.ChatService
	gemini, err := ai.NewGeminiClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Warn("main: chat assistant disabled", zap.Error(err))
	} else {
		defer gemini.Close()
		ctxStore := ai.NewRedisContextStore(utils.GetAIContextCacheClient(), ai.DefaultContextTTL)
		chatService = ai.NewChatService(ctxStore, gemini, logger)
	}

	var transcriber handlers.Transcriber
	if stt, err := handlers.NewGoogleTranscriber(context.Background(), cfg.GoogleCredentialsFile); err != nil {
		logger.Warn("main: speech-to-text disabled", zap.Error(err))
	} else {
		defer stt.Close()
		transcriber = stt
	}

	// background workers.
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	expiryWorker := cron.InitExpiryWorker(queueOpts, orderService, logger)
	queueClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB})
	defer queueClient.Close()
	go cron.MonitorRedisConnection(bgCtx, queueClient, logger)
	go utils.StartHealthMonitor(bgCtx, utils.RedisClients(), database.Clients)

	// Create the Gin router.
	router := gin.New()
	router.Use(middleware.RequestLogger(logger))
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Sessions: sessions,
		Auth:     handlers.NewAuthHandler(userService),
		Worker:   handlers.NewWorkerHandler(workerService, orderService),
		Listing:  handlers.NewListingHandler(listingService),
		Cart:     handlers.NewCartHandler(cartService),
		Checkout: handlers.NewCheckoutHandler(cartService, flow),
		Order:    handlers.NewOrderHandler(orderService),
		Payment:  handlers.NewPaymentHandler(gateway, orderService, cfg.Currency),
		Review:   handlers.NewReviewHandler(reviewService),
		AI:       handlers.NewAIHandler(chatService),
		STT:      handlers.NewSTTHandler(transcriber),
	}
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := cfg.AppPort
	if port == "" {
		port = "5003"
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

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	stopBackground()
	expiryWorker.Shutdown()
	database.Disconnect(ctx)

	logger.Sugar().Info("main: server stopped gracefully")
}
