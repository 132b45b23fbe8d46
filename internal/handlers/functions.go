package handlers

import (
  "encoding/json"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/WeBoost/aurora-backend/internal/clients/functions"
  "github.com/WeBoost/aurora-backend/internal/middleware"
)

// FunctionsHandler proxies a fixed set of server-side functions. The
// body passes through untouched; the business scope is stamped on so
// functions never trust a client-provided id.
type FunctionsHandler struct {
  fnClient functions.Client
}

func NewFunctionsHandler(fnClient functions.Client) *FunctionsHandler {
  return &FunctionsHandler{fnClient: fnClient}
}

func (fh *FunctionsHandler) Weather(c *gin.Context) {
  fh.proxy(c, functions.FnWeather)
}

func (fh *FunctionsHandler) TravelTime(c *gin.Context) {
  fh.proxy(c, functions.FnTravelTime)
}

func (fh *FunctionsHandler) GenerateContent(c *gin.Context) {
  fh.proxy(c, functions.FnGenerateContent)
}

func (fh *FunctionsHandler) DeployWebsite(c *gin.Context) {
  fh.proxy(c, functions.FnDeployWebsite)
}

func (fh *FunctionsHandler) proxy(c *gin.Context, name string) {
  body := map[string]interface{}{}
  if c.Request.ContentLength > 0 {
    if err := c.ShouldBindJSON(&body); err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
      return
    }
  }
  if businessID := middleware.BusinessID(c); businessID != uuid.Nil {
    body["business_id"] = businessID.String()
  }
  raw, err := fh.fnClient.Invoke(c.Request.Context(), name, body)
  if err != nil {
    RespondError(c, err)
    return
  }
  c.Data(http.StatusOK, "application/json", json.RawMessage(raw))
}
