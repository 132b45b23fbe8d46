package services

import (
  "context"
  "crypto/hmac"
  "crypto/sha256"
  "encoding/hex"
  "encoding/json"
  "errors"
  "testing"

  "github.com/google/uuid"

  "github.com/WeBoost/aurora-backend/internal/errs"
  "github.com/WeBoost/aurora-backend/internal/logger"
  "github.com/WeBoost/aurora-backend/internal/realtime"
  "github.com/WeBoost/aurora-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("dev")
  if err != nil {
    t.Fatalf("logger: %v", err)
  }
  return log
}

func sign(secret string, payload []byte) string {
  mac := hmac.New(sha256.New, []byte(secret))
  mac.Write(payload)
  return hex.EncodeToString(mac.Sum(nil))
}

func newPaymentFixture(t *testing.T, business *types.Business) (PaymentService, *fakePaymentRepo, *fakeBookingRepo, *fakeFnClient, *realtime.Hub) {
  t.Helper()
  log := newTestLogger(t)
  paymentRepo := newFakePaymentRepo()
  bookingRepo := newFakeBookingRepo()
  businessRepo := newFakeBusinessRepo(business)
  fn := &fakeFnClient{response: json.RawMessage(`{"intent_id":"pi_123","client_secret":"cs_123"}`)}
  hub := realtime.NewHub(log)
  svc := NewPaymentService(nil, log, paymentRepo, bookingRepo, businessRepo, fn, hub, 5, "whsec_test")
  return svc, paymentRepo, bookingRepo, fn, hub
}

func TestCreateIntentRecordsSplit(t *testing.T) {
  rate := 10.0
  business := &types.Business{ID: uuid.New(), Name: "Glacier Tours", CommissionRate: &rate}
  svc, _, _, fn, _ := newPaymentFixture(t, business)

  payment, err := svc.CreateIntent(context.Background(), business.ID, nil, 2500, "ISK")
  if err != nil {
    t.Fatalf("create intent: %v", err)
  }
  if payment.PlatformAmount != 250 || payment.BusinessAmount != 2250 {
    t.Fatalf("split: want=250/2250 got=%d/%d", payment.PlatformAmount, payment.BusinessAmount)
  }
  if payment.Status != types.PaymentStatusPending {
    t.Fatalf("status: want=%s got=%s", types.PaymentStatusPending, payment.Status)
  }
  if payment.ProviderIntentID != "pi_123" {
    t.Fatalf("intent id: want=pi_123 got=%s", payment.ProviderIntentID)
  }
  if len(fn.calls) != 1 || fn.calls[0] != "create-payment-intent" {
    t.Fatalf("function calls: got=%v", fn.calls)
  }
}

func TestCreateIntentUsesDefaultRate(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Puffin Safari"}
  svc, _, _, _, _ := newPaymentFixture(t, business)

  payment, err := svc.CreateIntent(context.Background(), business.ID, nil, 10000, "")
  if err != nil {
    t.Fatalf("create intent: %v", err)
  }
  if payment.CommissionRate != 5 {
    t.Fatalf("rate: want=5 got=%v", payment.CommissionRate)
  }
  if payment.PlatformAmount != 500 || payment.BusinessAmount != 9500 {
    t.Fatalf("split: want=500/9500 got=%d/%d", payment.PlatformAmount, payment.BusinessAmount)
  }
  if payment.Currency != "ISK" {
    t.Fatalf("currency default: got=%s", payment.Currency)
  }
}

func TestCreateIntentRejectsBadInputBeforeRemoteCall(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Lava Caves"}
  svc, paymentRepo, _, fn, _ := newPaymentFixture(t, business)

  _, err := svc.CreateIntent(context.Background(), business.ID, nil, -100, "ISK")
  if !errors.Is(err, errs.ErrInvalidArgument) {
    t.Fatalf("want invalid argument, got %v", err)
  }
  if len(fn.calls) != 0 {
    t.Fatalf("function should not be called, got %v", fn.calls)
  }
  if len(paymentRepo.payments) != 0 {
    t.Fatalf("no payment should be recorded, got %d", len(paymentRepo.payments))
  }
}

func TestCreateIntentPropagatesFunctionError(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Whale Watch"}
  svc, paymentRepo, _, fn, _ := newPaymentFixture(t, business)
  fn.failWith = errBackendDown

  _, err := svc.CreateIntent(context.Background(), business.ID, nil, 1000, "ISK")
  if !errors.Is(err, errBackendDown) {
    t.Fatalf("want wrapped backend error, got %v", err)
  }
  if len(paymentRepo.payments) != 0 {
    t.Fatalf("failed intent must not record a payment")
  }
}

func TestWebhookBadSignatureMutatesNothing(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Hot Spring Spa"}
  svc, paymentRepo, _, _, _ := newPaymentFixture(t, business)

  payment, err := svc.CreateIntent(context.Background(), business.ID, nil, 1000, "ISK")
  if err != nil {
    t.Fatalf("create intent: %v", err)
  }

  payload := []byte(`{"type":"payment.succeeded","intent_id":"pi_123"}`)
  if err := svc.HandleWebhook(context.Background(), payload, "deadbeef"); !errors.Is(err, errs.ErrUnauthorized) {
    t.Fatalf("want unauthorized, got %v", err)
  }
  stored := paymentRepo.payments[payment.ID]
  if stored.Status != types.PaymentStatusPending {
    t.Fatalf("payment must stay pending, got %s", stored.Status)
  }
}

func TestWebhookSucceededConfirmsBooking(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Northern Lights"}
  svc, paymentRepo, bookingRepo, _, hub := newPaymentFixture(t, business)

  booking, err := bookingRepo.Create(context.Background(), nil, &types.Booking{
    BusinessID:   business.ID,
    CustomerName: "Anna",
    Status:       types.BookingStatusPending,
    Amount:       1000,
  })
  if err != nil {
    t.Fatalf("seed booking: %v", err)
  }

  payment, err := svc.CreateIntent(context.Background(), business.ID, &booking.ID, 1000, "ISK")
  if err != nil {
    t.Fatalf("create intent: %v", err)
  }

  sub := hub.Subscribe(TablePayment, business.ID)
  defer sub.Unsubscribe()

  payload := []byte(`{"type":"payment.succeeded","intent_id":"pi_123"}`)
  if err := svc.HandleWebhook(context.Background(), payload, sign("whsec_test", payload)); err != nil {
    t.Fatalf("webhook: %v", err)
  }

  if got := paymentRepo.payments[payment.ID].Status; got != types.PaymentStatusSucceeded {
    t.Fatalf("payment status: want=%s got=%s", types.PaymentStatusSucceeded, got)
  }
  if got := bookingRepo.bookings[booking.ID].Status; got != types.BookingStatusConfirmed {
    t.Fatalf("booking status: want=%s got=%s", types.BookingStatusConfirmed, got)
  }

  select {
  case ev := <-sub.C:
    if ev.Type != realtime.EventUpdate || ev.RecordID != payment.ID {
      t.Fatalf("unexpected event: %+v", ev)
    }
  default:
    t.Fatalf("expected a payment update event")
  }
}

func TestWebhookIgnoresUnknownEventType(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Fjord Kayaks"}
  svc, paymentRepo, _, _, _ := newPaymentFixture(t, business)

  payment, err := svc.CreateIntent(context.Background(), business.ID, nil, 1000, "ISK")
  if err != nil {
    t.Fatalf("create intent: %v", err)
  }

  payload := []byte(`{"type":"payment.disputed","intent_id":"pi_123"}`)
  if err := svc.HandleWebhook(context.Background(), payload, sign("whsec_test", payload)); err != nil {
    t.Fatalf("unknown type should be ignored, got %v", err)
  }
  if got := paymentRepo.payments[payment.ID].Status; got != types.PaymentStatusPending {
    t.Fatalf("payment must stay pending, got %s", got)
  }
}

func TestWebhookUnknownIntent(t *testing.T) {
  business := &types.Business{ID: uuid.New(), Name: "Ice Climb Co"}
  svc, _, _, _, _ := newPaymentFixture(t, business)

  payload := []byte(`{"type":"payment.succeeded","intent_id":"pi_missing"}`)
  err := svc.HandleWebhook(context.Background(), payload, sign("whsec_test", payload))
  if !errors.Is(err, errs.ErrNotFound) {
    t.Fatalf("want not found, got %v", err)
  }
}
