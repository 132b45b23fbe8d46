package handlers

import (
  "github.com/gin-gonic/gin"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/services"
)

type AnalyticsHandler struct {
  analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
  return &AnalyticsHandler{analyticsService: analyticsService}
}

func (an *AnalyticsHandler) GetDashboard(c *gin.Context) {
  dashboard, err := an.analyticsService.GetDashboard(c.Request.Context(), middleware.BusinessID(c))
  RespondSnapshot(c, dashboard, err)
}
