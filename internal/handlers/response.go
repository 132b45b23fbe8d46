package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/WeBoost/aurora-backend/internal/errs"
)

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// RespondSnapshot is the read-path envelope: data is always present,
// error only on failure. Mirrors the live view snapshot shape so
// clients handle both the same way.
func RespondSnapshot(c *gin.Context, data any, err error) {
  if err != nil {
    c.JSON(statusFor(err), gin.H{"data": data, "error": err.Error()})
    return
  }
  c.JSON(http.StatusOK, gin.H{"data": data})
}

func RespondError(c *gin.Context, err error) {
  c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func statusFor(err error) int {
  var fnErr *errs.FunctionError
  switch {
  case errors.Is(err, errs.ErrInvalidArgument):
    return http.StatusBadRequest
  case errors.Is(err, errs.ErrUnauthorized):
    return http.StatusUnauthorized
  case errors.Is(err, errs.ErrNotFound):
    return http.StatusNotFound
  case errors.As(err, &fnErr):
    return http.StatusBadGateway
  default:
    return http.StatusInternalServerError
  }
}
