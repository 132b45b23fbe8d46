package server

import (
  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"
  "go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
  "github.com/WeBoost/aurora-backend/internal/handlers"
  "github.com/WeBoost/aurora-backend/internal/middleware"
)

type RouterConfig struct {
  AllowedOrigins   []string
  AuthMiddleware   *middleware.AuthMiddleware
  AuthHandler      *handlers.AuthHandler
  BusinessHandler  *handlers.BusinessHandler
  BookingHandler   *handlers.BookingHandler
  AnalyticsHandler *handlers.AnalyticsHandler
  SEOHandler       *handlers.SEOHandler
  MediaHandler     *handlers.MediaHandler
  PaymentHandler   *handlers.PaymentHandler
  FunctionsHandler *handlers.FunctionsHandler
  EventsHandler    *handlers.EventsHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()
  router.Use(otelgin.Middleware("aurora-backend"))

  origins := cfg.AllowedOrigins
  if len(origins) == 0 {
    origins = []string{"http://localhost:3000", "http://localhost:5173"}
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
    AllowCredentials: true,
  }))

  // Public
  router.GET("/healthcheck", handlers.HealthCheck)
  router.POST("/register", cfg.AuthHandler.Register)
  router.POST("/login", cfg.AuthHandler.Login)
  router.POST("/refresh", cfg.AuthHandler.Refresh)
  router.POST("/webhooks/payments", cfg.PaymentHandler.Webhook)
  router.GET("/businesses/nearest", cfg.BusinessHandler.Nearest)
  router.GET("/b/:slug", cfg.BusinessHandler.GetPublic)
  router.POST("/b/:slug/bookings", cfg.BookingHandler.CreatePublic)

  // Protected
  protected := router.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/logout", cfg.AuthHandler.Logout)
  protected.POST("/businesses", cfg.BusinessHandler.Create)
  protected.GET("/businesses", cfg.BusinessHandler.ListMine)

  // Business scope
  business := protected.Group("/businesses/:businessID")
  business.Use(cfg.AuthMiddleware.RequireBusiness())
  business.GET("", cfg.BusinessHandler.Get)
  business.POST("/logo", cfg.BusinessHandler.GenerateLogo)
  business.GET("/services", cfg.BusinessHandler.ListServices)
  business.POST("/services", cfg.BusinessHandler.CreateService)
  business.DELETE("/services/:serviceID", cfg.BusinessHandler.DeleteService)
  business.GET("/bookings", cfg.BookingHandler.List)
  business.POST("/bookings", cfg.BookingHandler.Create)
  business.PUT("/bookings/:bookingID/status", cfg.BookingHandler.UpdateStatus)
  business.DELETE("/bookings/:bookingID", cfg.BookingHandler.Delete)
  business.GET("/analytics", cfg.AnalyticsHandler.GetDashboard)
  business.GET("/seo", cfg.SEOHandler.Get)
  business.PUT("/seo", cfg.SEOHandler.Put)
  business.POST("/media", cfg.MediaHandler.Upload)
  business.GET("/media", cfg.MediaHandler.List)
  business.DELETE("/media", cfg.MediaHandler.Delete)
  business.POST("/payments/intent", cfg.PaymentHandler.CreateIntent)
  business.GET("/payments", cfg.PaymentHandler.List)
  business.POST("/functions/weather", cfg.FunctionsHandler.Weather)
  business.POST("/functions/travel-time", cfg.FunctionsHandler.TravelTime)
  business.POST("/functions/generate-content", cfg.FunctionsHandler.GenerateContent)
  business.POST("/functions/deploy-website", cfg.FunctionsHandler.DeployWebsite)
  business.GET("/events/stream", cfg.EventsHandler.Stream)

  return router
}
