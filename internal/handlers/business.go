package handlers

import (
  "net/http"
  "strconv"
  "strings"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/services"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type BusinessHandler struct {
  log          *logger.Logger
  businessRepo repos.BusinessRepo
  serviceRepo  repos.TourServiceRepo
  pageViewRepo repos.PageViewRepo
  logoService  services.LogoService
}

func NewBusinessHandler(log *logger.Logger, businessRepo repos.BusinessRepo, serviceRepo repos.TourServiceRepo, pageViewRepo repos.PageViewRepo, logoService services.LogoService) *BusinessHandler {
  return &BusinessHandler{
    log:          log.With("handler", "BusinessHandler"),
    businessRepo: businessRepo,
    serviceRepo:  serviceRepo,
    pageViewRepo: pageViewRepo,
    logoService:  logoService,
  }
}

func (bh *BusinessHandler) Create(c *gin.Context) {
  var req struct {
    Name           string   `json:"name"`
    Slug           string   `json:"slug"`
    Description    string   `json:"description"`
    CommissionRate *float64 `json:"commission_rate"`
    Latitude       float64  `json:"latitude"`
    Longitude      float64  `json:"longitude"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if req.Name == "" || req.Slug == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name and slug required"})
    return
  }
  business := &types.Business{
    OwnerID:        middleware.UserID(c),
    Name:           req.Name,
    Slug:           strings.ToLower(strings.TrimSpace(req.Slug)),
    Description:    req.Description,
    CommissionRate: req.CommissionRate,
    Latitude:       req.Latitude,
    Longitude:      req.Longitude,
  }
  created, err := bh.businessRepo.Create(c.Request.Context(), nil, business)
  if err != nil {
    RespondError(c, err)
    return
  }
  if bh.logoService != nil {
    if err := bh.logoService.CreateAndUploadLogo(c.Request.Context(), created); err != nil {
      bh.log.Warn("placeholder logo generation failed", "business_id", created.ID, "error", err)
    }
  }
  RespondOK(c, created)
}

func (bh *BusinessHandler) ListMine(c *gin.Context) {
  businesses, err := bh.businessRepo.ListByOwner(c.Request.Context(), nil, middleware.UserID(c))
  RespondSnapshot(c, businesses, err)
}

func (bh *BusinessHandler) Get(c *gin.Context) {
  business, err := bh.businessRepo.GetByID(c.Request.Context(), nil, middleware.BusinessID(c))
  RespondSnapshot(c, business, err)
}

// GetPublic serves the customer-facing business page by slug and
// records the page view for analytics.
func (bh *BusinessHandler) GetPublic(c *gin.Context) {
  business, err := bh.businessRepo.GetBySlug(c.Request.Context(), nil, c.Param("slug"))
  if err != nil {
    RespondError(c, err)
    return
  }
  tourServices, err := bh.serviceRepo.ListByBusiness(c.Request.Context(), nil, business.ID)
  if err != nil {
    RespondError(c, err)
    return
  }
  if _, err := bh.pageViewRepo.Create(c.Request.Context(), nil, &types.PageView{
    BusinessID: business.ID,
    Path:       c.Request.URL.Path,
    Referrer:   c.GetHeader("Referer"),
  }); err != nil {
    bh.log.Warn("page view not recorded", "business_id", business.ID, "error", err)
  }
  RespondOK(c, gin.H{"business": business, "services": tourServices})
}

func (bh *BusinessHandler) Nearest(c *gin.Context) {
  lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
  lon, lonErr := strconv.ParseFloat(c.Query("lon"), 64)
  if latErr != nil || lonErr != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lon required"})
    return
  }
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
  businesses, err := bh.businessRepo.Nearest(c.Request.Context(), nil, lat, lon, limit)
  RespondSnapshot(c, businesses, err)
}

func (bh *BusinessHandler) GenerateLogo(c *gin.Context) {
  business, err := bh.businessRepo.GetByID(c.Request.Context(), nil, middleware.BusinessID(c))
  if err != nil {
    RespondError(c, err)
    return
  }
  if err := bh.logoService.CreateAndUploadLogo(c.Request.Context(), business); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, business)
}

func (bh *BusinessHandler) CreateService(c *gin.Context) {
  var req struct {
    Name            string `json:"name"`
    Description     string `json:"description"`
    Price           int64  `json:"price"`
    Currency        string `json:"currency"`
    DurationMinutes int    `json:"duration_minutes"`
    Capacity        int    `json:"capacity"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  if req.Name == "" {
    c.JSON(http.StatusBadRequest, gin.H{"error": "name required"})
    return
  }
  created, err := bh.serviceRepo.Create(c.Request.Context(), nil, &types.TourService{
    BusinessID:      middleware.BusinessID(c),
    Name:            req.Name,
    Description:     req.Description,
    Price:           req.Price,
    Currency:        req.Currency,
    DurationMinutes: req.DurationMinutes,
    Capacity:        req.Capacity,
    Active:          true,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, created)
}

func (bh *BusinessHandler) ListServices(c *gin.Context) {
  tourServices, err := bh.serviceRepo.ListByBusiness(c.Request.Context(), nil, middleware.BusinessID(c))
  RespondSnapshot(c, tourServices, err)
}

func (bh *BusinessHandler) DeleteService(c *gin.Context) {
  serviceID, err := uuid.Parse(c.Param("serviceID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service id"})
    return
  }
  existing, err := bh.serviceRepo.GetByID(c.Request.Context(), nil, serviceID)
  if err != nil || existing.BusinessID != middleware.BusinessID(c) {
    c.JSON(http.StatusNotFound, gin.H{"error": "service not found"})
    return
  }
  if err := bh.serviceRepo.Delete(c.Request.Context(), nil, serviceID); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": serviceID})
}
