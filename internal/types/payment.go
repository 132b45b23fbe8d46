package types

import (
  "time"
  "github.com/google/uuid"
)

const (
  PaymentStatusPending    = "pending"
  PaymentStatusSucceeded  = "succeeded"
  PaymentStatusFailed     = "failed"
  PaymentStatusRefunded   = "refunded"
)

type Payment struct {
  ID                uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BusinessID        uuid.UUID   `gorm:"type:uuid;not null;index" json:"business_id"`
  Business          *Business   `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusinessID;references:ID" json:"business,omitempty"`
  BookingID         *uuid.UUID  `gorm:"type:uuid;index" json:"booking_id,omitempty"`
  Booking           *Booking    `gorm:"constraint:OnDelete:SET NULL;foreignKey:BookingID;references:ID" json:"booking,omitempty"`
  ProviderIntentID  string      `gorm:"uniqueIndex;column:provider_intent_id" json:"provider_intent_id"`
  Gross             int64       `gorm:"column:gross;not null;default:0" json:"gross"`
  CommissionRate    float64     `gorm:"column:commission_rate;not null;default:0" json:"commission_rate"`
  PlatformAmount    int64       `gorm:"column:platform_amount;not null;default:0" json:"platform_amount"`
  BusinessAmount    int64       `gorm:"column:business_amount;not null;default:0" json:"business_amount"`
  Currency          string      `gorm:"column:currency;not null;default:'ISK'" json:"currency"`
  Status            string      `gorm:"column:status;not null;default:'pending';index" json:"status"`
  CreatedAt         time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt         time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Payment) TableName() string {
  return "payment"
}
