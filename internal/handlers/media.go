package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/services"
)

type MediaHandler struct {
  mediaService services.MediaService
}

func NewMediaHandler(mediaService services.MediaService) *MediaHandler {
  return &MediaHandler{mediaService: mediaService}
}

func (mh *MediaHandler) Upload(c *gin.Context) {
  fileHeader, err := c.FormFile("file")
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
    return
  }
  file, err := fileHeader.Open()
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
    return
  }
  defer file.Close()

  asset, err := mh.mediaService.Upload(
    c.Request.Context(),
    middleware.BusinessID(c),
    fileHeader.Filename,
    fileHeader.Header.Get("Content-Type"),
    fileHeader.Size,
    file,
  )
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, asset)
}

func (mh *MediaHandler) List(c *gin.Context) {
  assets, err := mh.mediaService.List(c.Request.Context(), middleware.BusinessID(c))
  RespondSnapshot(c, assets, err)
}

func (mh *MediaHandler) Delete(c *gin.Context) {
  var req struct {
    BucketKeys []string `json:"bucket_keys"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || len(req.BucketKeys) == 0 {
    c.JSON(http.StatusBadRequest, gin.H{"error": "bucket_keys required"})
    return
  }
  if err := mh.mediaService.Remove(c.Request.Context(), middleware.BusinessID(c), req.BucketKeys); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": req.BucketKeys})
}
