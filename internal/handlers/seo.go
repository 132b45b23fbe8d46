package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "gorm.io/datatypes"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/services"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type SEOHandler struct {
  seoService services.SEOService
}

func NewSEOHandler(seoService services.SEOService) *SEOHandler {
  return &SEOHandler{seoService: seoService}
}

func (sh *SEOHandler) Get(c *gin.Context) {
  settings, err := sh.seoService.GetSettings(c.Request.Context(), middleware.BusinessID(c))
  RespondSnapshot(c, settings, err)
}

func (sh *SEOHandler) Put(c *gin.Context) {
  var req struct {
    MetaTitle       string         `json:"meta_title"`
    MetaDescription string         `json:"meta_description"`
    Keywords        datatypes.JSON `json:"keywords"`
    OGImageURL      string         `json:"og_image_url"`
    StructuredData  datatypes.JSON `json:"structured_data"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  updated, err := sh.seoService.UpsertSettings(c.Request.Context(), &types.SEOSettings{
    BusinessID:      middleware.BusinessID(c),
    MetaTitle:       req.MetaTitle,
    MetaDescription: req.MetaDescription,
    Keywords:        req.Keywords,
    OGImageURL:      req.OGImageURL,
    StructuredData:  req.StructuredData,
  })
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, updated)
}
