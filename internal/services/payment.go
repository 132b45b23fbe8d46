package services

import (
  "context"
  "crypto/hmac"
  "crypto/sha256"
  "encoding/hex"
  "encoding/json"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/WeBoost/aurora-backend/internal/clients/functions"
  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/money"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/repos"
  "github.com/WeBoost/aurora-backend/internal/types"
)

const TablePayment = "payment"

type PaymentService interface {
  CreateIntent(ctx context.Context, businessID uuid.UUID, bookingID *uuid.UUID, gross int64, currency string) (*types.Payment, error)
  ListPayments(ctx context.Context, businessID uuid.UUID, limit int) ([]*types.Payment, error)
  HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

// WebhookEvent is the provider's signed notification shape.
type WebhookEvent struct {
  Type     string `json:"type"`
  IntentID string `json:"intent_id"`
}

type paymentService struct {
  db            *gorm.DB
  log           *logger.Logger
  paymentRepo   repos.PaymentRepo
  bookingRepo   repos.BookingRepo
  businessRepo  repos.BusinessRepo
  fnClient      functions.Client
  hub           *realtime.Hub
  defaultRate   float64
  webhookSecret string
}

func NewPaymentService(
  db *gorm.DB,
  log *logger.Logger,
  paymentRepo repos.PaymentRepo,
  bookingRepo repos.BookingRepo,
  businessRepo repos.BusinessRepo,
  fnClient functions.Client,
  hub *realtime.Hub,
  defaultRate float64,
  webhookSecret string,
) PaymentService {
  serviceLog := log.With("service", "PaymentService")
  return &paymentService{
    db:            db,
    log:           serviceLog,
    paymentRepo:   paymentRepo,
    bookingRepo:   bookingRepo,
    businessRepo:  businessRepo,
    fnClient:      fnClient,
    hub:           hub,
    defaultRate:   defaultRate,
    webhookSecret: webhookSecret,
  }
}

type intentResponse struct {
  IntentID     string `json:"intent_id"`
  ClientSecret string `json:"client_secret"`
}

// CreateIntent computes the commission split, asks the payment
// function for an intent and records the pending payment. The split is
// validated before any remote call happens.
func (ps *paymentService) CreateIntent(ctx context.Context, businessID uuid.UUID, bookingID *uuid.UUID, gross int64, currency string) (*types.Payment, error) {
  if businessID == uuid.Nil {
    return nil, errs.InvalidArgumentf("business id required")
  }
  if currency == "" {
    currency = "ISK"
  }

  rate := ps.defaultRate
  business, err := ps.businessRepo.GetByID(ctx, nil, businessID)
  if err != nil {
    return nil, err
  }
  if business.CommissionRate != nil {
    rate = *business.CommissionRate
  }

  split, err := money.Split(gross, rate)
  if err != nil {
    return nil, err
  }

  raw, err := ps.fnClient.Invoke(ctx, functions.FnCreateIntent, map[string]interface{}{
    "business_id":     businessID.String(),
    "amount":          split.Gross,
    "currency":        currency,
    "platform_amount": split.PlatformAmount,
    "business_amount": split.BusinessAmount,
  })
  if err != nil {
    return nil, err
  }
  var intent intentResponse
  if err := json.Unmarshal(raw, &intent); err != nil {
    return nil, &errs.FunctionError{Name: functions.FnCreateIntent, Err: err}
  }
  if intent.IntentID == "" {
    return nil, &errs.FunctionError{Name: functions.FnCreateIntent, Message: "missing intent_id in response"}
  }

  payment := &types.Payment{
    BusinessID:       businessID,
    BookingID:        bookingID,
    ProviderIntentID: intent.IntentID,
    Gross:            split.Gross,
    CommissionRate:   split.CommissionRate,
    PlatformAmount:   split.PlatformAmount,
    BusinessAmount:   split.BusinessAmount,
    Currency:         currency,
    Status:           types.PaymentStatusPending,
  }
  created, err := ps.paymentRepo.Create(ctx, nil, payment)
  if err != nil {
    return nil, err
  }
  ps.publish(ctx, realtime.EventInsert, created)
  return created, nil
}

func (ps *paymentService) ListPayments(ctx context.Context, businessID uuid.UUID, limit int) ([]*types.Payment, error) {
  if businessID == uuid.Nil {
    return []*types.Payment{}, nil
  }
  return ps.paymentRepo.ListByBusiness(ctx, nil, businessID, limit)
}

// HandleWebhook verifies the provider signature and applies the event
// through the same mutator path the API uses. A bad signature mutates
// nothing.
func (ps *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
  if !ps.verifySignature(payload, signature) {
    return errs.ErrUnauthorized
  }
  var event WebhookEvent
  if err := json.Unmarshal(payload, &event); err != nil {
    return errs.InvalidArgumentf("malformed webhook payload")
  }
  if event.IntentID == "" {
    return errs.InvalidArgumentf("webhook missing intent_id")
  }

  payment, err := ps.paymentRepo.GetByIntentID(ctx, nil, event.IntentID)
  if err != nil {
    return err
  }

  var status string
  switch event.Type {
  case "payment.succeeded":
    status = types.PaymentStatusSucceeded
  case "payment.failed":
    status = types.PaymentStatusFailed
  case "payment.refunded":
    status = types.PaymentStatusRefunded
  default:
    ps.log.Debug("ignoring webhook event", "type", event.Type)
    return nil
  }

  updated, err := ps.paymentRepo.UpdateStatus(ctx, nil, payment.ID, status)
  if err != nil {
    return err
  }
  ps.publish(ctx, realtime.EventUpdate, updated)

  if status == types.PaymentStatusSucceeded && payment.BookingID != nil {
    booking, err := ps.bookingRepo.UpdateStatus(ctx, nil, *payment.BookingID, types.BookingStatusConfirmed)
    if err != nil {
      // The payment is already recorded; booking confirmation can be
      // retried from the dashboard.
      ps.log.Warn("payment confirmed but booking status update failed", "booking_id", payment.BookingID, "error", err)
      return nil
    }
    if ps.hub != nil && booking != nil {
      raw, _ := json.Marshal(booking)
      ps.hub.Publish(ctx, realtime.ChangeEvent{
        Type:      realtime.EventUpdate,
        Table:     TableBooking,
        SubjectID: booking.BusinessID,
        RecordID:  booking.ID,
        New:       raw,
      })
    }
  }
  return nil
}

func (ps *paymentService) verifySignature(payload []byte, signature string) bool {
  if ps.webhookSecret == "" || signature == "" {
    return false
  }
  mac := hmac.New(sha256.New, []byte(ps.webhookSecret))
  mac.Write(payload)
  want := hex.EncodeToString(mac.Sum(nil))
  return hmac.Equal([]byte(want), []byte(signature))
}

func (ps *paymentService) publish(ctx context.Context, eventType realtime.EventType, payment *types.Payment) {
  if ps.hub == nil || payment == nil {
    return
  }
  raw, _ := json.Marshal(payment)
  ps.hub.Publish(ctx, realtime.ChangeEvent{
    Type:      eventType,
    Table:     TablePayment,
    SubjectID: payment.BusinessID,
    RecordID:  payment.ID,
    New:       raw,
  })
}
