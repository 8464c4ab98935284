package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"ripple/internal/adapter/api"
	"ripple/internal/adapter/api/handler"
	apimiddleware "ripple/internal/adapter/api/middleware"
	"ripple/internal/adapter/api/router"
	"ripple/internal/adapter/repository"
	"ripple/internal/domain/service"
	"ripple/internal/infrastructure/cache"
	"ripple/internal/infrastructure/firebase"
	"ripple/internal/infrastructure/storage"
	"ripple/internal/infrastructure/websocket"
	"ripple/internal/usecase"
	"ripple/pkg/config"
	"ripple/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)))
	} else if _, err := os.Stat(cfg.ServiceAccountPath); err == nil {
		logger.Info("Using Firebase service account from file: %s", cfg.ServiceAccountPath)
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	} else {
		logger.Warn("Service account file %s not found, using application default credentials", cfg.ServiceAccountPath)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		logger.Fatal("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		logger.Fatal("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	// uploads answer 503 until a bucket is configured
	var imageStore usecase.ImageStore
	if cfg.StorageBucket != "" {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.AllowedOrigins, opts...)
		switch {
		case storageClient == nil:
			logger.Error("Failed to initialize Cloud Storage: %v", err)
		default:
			if err != nil {
				logger.Warn("Cloud Storage ready without CORS update: %v", err)
			}
			defer storageClient.Close()
			imageStore = storageClient
		}
	}

	var appCache usecase.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, caching disabled: %v", err)
		} else {
			defer redisCache.Close()
			appCache = redisCache
		}
	}

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	vendorRepo := repository.NewFirestoreVendorRepository(firestoreClient)
	publicCharityRepo := repository.NewFirestorePublicCharityRepository(firestoreClient)
	listingRepo := repository.NewFirestoreListingRepository(firestoreClient)
	cartRepo := repository.NewFirestoreCartRepository(firestoreClient)
	orderRepo := repository.NewFirestoreOrderRepository(firestoreClient)
	checkoutRepo := repository.NewFirestoreCheckoutRepository(firestoreClient)
	walletRepo := repository.NewFirestoreWalletRepository(firestoreClient)
	postRepo := repository.NewFirestoreCharityPostRepository(firestoreClient)
	donationRepo := repository.NewFirestoreDonationRepository(firestoreClient)

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient, cfg.FirebaseAPIKey)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	wsManager := websocket.NewManager()
	wsManager.Start(runCtx)

	openAIService := service.NewOpenAIService(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cfg.OpenAITimeout)

	authUseCase := usecase.NewAuthUseCase(userRepo, vendorRepo, publicCharityRepo, firebaseAuthClient)
	profileUseCase := usecase.NewProfileUseCase(vendorRepo, publicCharityRepo, appCache)
	listingUseCase := usecase.NewListingUseCase(listingRepo, vendorRepo, imageStore)
	cartUseCase := usecase.NewCartUseCase(cartRepo, listingRepo, postRepo)
	donationUseCase := usecase.NewDonationUseCase(donationRepo, postRepo)
	charityUseCase := usecase.NewCharityUseCase(postRepo, userRepo, imageStore)
	orderUseCase := usecase.NewOrderUseCase(checkoutRepo, orderRepo, userRepo, donationUseCase, wsManager)
	walletUseCase := usecase.NewWalletUseCase(walletRepo)
	recommendationUseCase := usecase.NewRecommendationUseCase(openAIService, appCache)
	uploadUseCase := usecase.NewUploadUseCase(imageStore)

	handler.Setup(
		authUseCase,
		profileUseCase,
		listingUseCase,
		cartUseCase,
		orderUseCase,
		walletUseCase,
		charityUseCase,
		donationUseCase,
		recommendationUseCase,
		uploadUseCase,
	)
	handler.SetupHealthHandler(cfg.Environment)
	handler.SetupWebSocketHandler(wsManager, authUseCase, cfg.AllowedOrigins)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			reqLog := logger.With(
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
			)
			if v.Error != nil {
				reqLog.Warnw("request failed", "error", v.Error)
				return nil
			}
			reqLog.Info("request")
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit("10M"))

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(authUseCase)
	roleMiddleware := apimiddleware.NewRoleMiddleware(authUseCase)

	router.Setup(e, authMiddleware, roleMiddleware, cfg.AIRateLimitPerMinute)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server stopped: %v", err)
		}
	}()

	<-runCtx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
