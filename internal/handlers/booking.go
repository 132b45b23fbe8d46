package handlers

import (
  "net/http"
  "strconv"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/WeBoost/aurora-backend/internal/middleware"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/services"
  "github.com/WeBoost/aurora-backend/internal/types"
)

type BookingHandler struct {
  bookingService services.BookingService
  businessRepo   repos.BusinessRepo
}

func NewBookingHandler(bookingService services.BookingService, businessRepo repos.BusinessRepo) *BookingHandler {
  return &BookingHandler{bookingService: bookingService, businessRepo: businessRepo}
}

func (bk *BookingHandler) List(c *gin.Context) {
  filter := repos.BookingFilter{Status: c.Query("status")}
  if v := c.Query("limit"); v != "" {
    if limit, err := strconv.Atoi(v); err == nil {
      filter.Limit = limit
    }
  }
  if v := c.Query("from"); v != "" {
    if from, err := time.Parse(time.RFC3339, v); err == nil {
      filter.From = from
    }
  }
  if v := c.Query("to"); v != "" {
    if to, err := time.Parse(time.RFC3339, v); err == nil {
      filter.To = to
    }
  }
  filter.Ascending = c.Query("order") == "asc"

  bookings, err := bk.bookingService.ListBookings(c.Request.Context(), middleware.BusinessID(c), filter)
  RespondSnapshot(c, bookings, err)
}

type bookingRequest struct {
  ServiceID     *uuid.UUID `json:"service_id"`
  CustomerName  string     `json:"customer_name"`
  CustomerEmail string     `json:"customer_email"`
  CustomerPhone string     `json:"customer_phone"`
  PartySize     int        `json:"party_size"`
  Amount        int64      `json:"amount"`
  StartsAt      *time.Time `json:"starts_at"`
  Notes         string     `json:"notes"`
}

func (req bookingRequest) toBooking(businessID uuid.UUID) *types.Booking {
  booking := &types.Booking{
    BusinessID:    businessID,
    ServiceID:     req.ServiceID,
    CustomerName:  req.CustomerName,
    CustomerEmail: req.CustomerEmail,
    CustomerPhone: req.CustomerPhone,
    PartySize:     req.PartySize,
    Amount:        req.Amount,
    Notes:         req.Notes,
  }
  if req.StartsAt != nil {
    booking.StartsAt = *req.StartsAt
  }
  return booking
}

func (bk *BookingHandler) Create(c *gin.Context) {
  var req bookingRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  created, err := bk.bookingService.CreateBooking(c.Request.Context(), req.toBooking(middleware.BusinessID(c)))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, created)
}

// CreatePublic accepts a customer booking against the business slug:
// no auth, the booking lands as pending for the owner to confirm.
func (bk *BookingHandler) CreatePublic(c *gin.Context) {
  business, err := bk.businessRepo.GetBySlug(c.Request.Context(), nil, c.Param("slug"))
  if err != nil {
    RespondError(c, err)
    return
  }
  var req bookingRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  created, err := bk.bookingService.CreateBooking(c.Request.Context(), req.toBooking(business.ID))
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, created)
}

func (bk *BookingHandler) UpdateStatus(c *gin.Context) {
  bookingID, err := uuid.Parse(c.Param("bookingID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
    return
  }
  var req struct {
    Status string `json:"status"`
  }
  if err := c.ShouldBindJSON(&req); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return
  }
  updated, err := bk.bookingService.UpdateBookingStatus(c.Request.Context(), middleware.BusinessID(c), bookingID, req.Status)
  if err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, updated)
}

func (bk *BookingHandler) Delete(c *gin.Context) {
  bookingID, err := uuid.Parse(c.Param("bookingID"))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
    return
  }
  if err := bk.bookingService.DeleteBooking(c.Request.Context(), middleware.BusinessID(c), bookingID); err != nil {
    RespondError(c, err)
    return
  }
  RespondOK(c, gin.H{"deleted": bookingID})
}
