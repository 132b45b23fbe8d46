package handlers

import (
  "io"
  "net/http"
  "strconv"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/services"
)

type PaymentHandler struct {
  paymentService services.PaymentService
}

func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
  return &PaymentHandler{paymentService: paymentService}
}

func (ph *PaymentHandler) CreateIntent(c *gin.Context) {
  var req struct {
    BookingID *uuid.UUID `json:"booking_id"`
    Amount    int64      `json:"amount"`
    Currency  string     `json:"currency"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  payment, err := ph.paymentService.CreateIntent(c.Request.Context(), middleware.BusinessID(c), req.BookingID, req.Amount, req.Currency)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, payment)
}

func (ph *PaymentHandler) List(c *gin.Context) {
  limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
  payments, err := ph.paymentService.ListPayments(c.Request.Context(), middleware.BusinessID(c), limit)
  RespondSnapshot(c, payments, err)
}

// Webhook takes the raw body: the signature covers the exact bytes
// the provider sent.
func (ph *PaymentHandler) Webhook(c *gin.Context) {
  payload, err := io.ReadAll(c.Request.Body)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable payload"})
    return
  }
  signature := c.GetHeader("X-Webhook-Signature")
  if err := ph.paymentService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"received": true})
}
