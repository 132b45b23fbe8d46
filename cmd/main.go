package main

import (
  "context"
  "fmt"
  "os"
  "time"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/clients/functions"
  "github.com/WeBoost/aurora-backend/internal/config"
  "github.com/WeBoost/aurora-backend/internal/db"
  "github.com/WeBoost/aurora-backend/internal/handlers"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/observability"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/server"
  "github.com/WeBoost/aurora-backend/internal/services"
  "github.com/WeBoost/aurora-backend/internal/utils"
)

func main() {
  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Tracing
  ctx := context.Background()
  if shutdown := observability.Init(ctx, log, observability.Config{
    ServiceName: "aurora-backend",
    Environment: os.Getenv("APP_ENV"),
    Version:     os.Getenv("APP_VERSION"),
  }); shutdown != nil {
    defer shutdown(ctx)
  }

  // Config
  log.Info("Loading configuration from main...")
  cfg, err := config.Load(log)
  if err != nil {
    log.Error("Could not load config", "error", err)
    os.Exit(1)
  }
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

  // Database
  var theDB *gorm.DB
  databaseService, err := db.NewDatabaseService(log)
  if err != nil {
    log.Warn("Database init failed", "error", err)
  } else {
    if err = databaseService.AutoMigrateAll(); err != nil {
      log.Warn("Auto migration failed", "error", err)
    }
    theDB = databaseService.DB()
  }

  // Realtime hub
  log.Info("Setting up realtime hub from main...")
  hub := realtime.NewHub(log)
  if bus, busErr := realtime.NewRedisBus(log); busErr != nil {
    log.Warn("Redis bus unavailable, running single-instance", "error", busErr)
  } else if err := hub.AttachBus(ctx, bus); err != nil {
    log.Warn("Could not attach redis bus", "error", err)
  }

  // Repos
  log.Info("Setting up repos from main...")
  userRepo := repos.NewUserRepo(theDB, log)
  userTokenRepo := repos.NewUserTokenRepo(theDB, log)
  businessRepo := repos.NewBusinessRepo(theDB, log)
  tourServiceRepo := repos.NewTourServiceRepo(theDB, log)
  bookingRepo := repos.NewBookingRepo(theDB, log)
  paymentRepo := repos.NewPaymentRepo(theDB, log)
  seoRepo := repos.NewSEOSettingsRepo(theDB, log)
  mediaRepo := repos.NewMediaAssetRepo(theDB, log)
  pageViewRepo := repos.NewPageViewRepo(theDB, log)

  // Services
  log.Info("Setting up services from main...")
  bucketService, err := services.NewBucketService(log)
  if err != nil {
    log.Warn("Could not init BucketService", "error", err)
  }
  fnClient, err := functions.NewClient(log)
  if err != nil {
    log.Error("Could not init functions client", "error", err)
    os.Exit(1)
  }
  logoService, err := services.NewLogoService(theDB, log, businessRepo, bucketService)
  if err != nil {
    log.Error("Could not init LogoService", "error", err)
    os.Exit(1)
  }
  authService := services.NewAuthService(theDB, log, userRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  bookingService := services.NewBookingService(theDB, log, bookingRepo, hub)
  analyticsService := services.NewAnalyticsService(theDB, log, bookingRepo, pageViewRepo, hub, cfg.TopServices)
  seoService := services.NewSEOService(theDB, log, seoRepo, hub)
  mediaService := services.NewMediaService(theDB, log, bucketService, mediaRepo, hub)
  paymentService := services.NewPaymentService(theDB, log, paymentRepo, bookingRepo, businessRepo, fnClient, hub, cfg.DefaultCommissionRate, cfg.WebhookSecret)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  businessHandler := handlers.NewBusinessHandler(log, businessRepo, tourServiceRepo, pageViewRepo, logoService)
  bookingHandler := handlers.NewBookingHandler(bookingService, businessRepo)
  analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)
  seoHandler := handlers.NewSEOHandler(seoService)
  mediaHandler := handlers.NewMediaHandler(mediaService)
  paymentHandler := handlers.NewPaymentHandler(paymentService)
  functionsHandler := handlers.NewFunctionsHandler(fnClient)
  eventsHandler := handlers.NewEventsHandler(log, hub)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService, businessRepo)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AllowedOrigins:   cfg.AllowedOrigins,
    AuthMiddleware:   authMiddleware,
    AuthHandler:      authHandler,
    BusinessHandler:  businessHandler,
    BookingHandler:   bookingHandler,
    AnalyticsHandler: analyticsHandler,
    SEOHandler:       seoHandler,
    MediaHandler:     mediaHandler,
    PaymentHandler:   paymentHandler,
    FunctionsHandler: functionsHandler,
    EventsHandler:    eventsHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}
