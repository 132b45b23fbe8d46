package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  BookingStatusPending    = "pending"
  BookingStatusConfirmed  = "confirmed"
  BookingStatusCompleted  = "completed"
  BookingStatusCancelled  = "cancelled"
)

type Booking struct {
  ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BusinessID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"business_id"`
  Business        *Business       `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusinessID;references:ID" json:"business,omitempty"`
  ServiceID       *uuid.UUID      `gorm:"type:uuid;index" json:"service_id,omitempty"`
  Service         *TourService    `gorm:"constraint:OnDelete:SET NULL;foreignKey:ServiceID;references:ID" json:"service,omitempty"`
  CustomerName    string          `gorm:"column:customer_name;not null" json:"customer_name"`
  CustomerEmail   string          `gorm:"column:customer_email" json:"customer_email"`
  CustomerPhone   string          `gorm:"column:customer_phone" json:"customer_phone"`
  PartySize       int             `gorm:"column:party_size;not null;default:1" json:"party_size"`
  Status          string          `gorm:"column:status;not null;default:'pending';index" json:"status"`
  Amount          int64           `gorm:"column:amount;not null;default:0" json:"amount"`
  Currency        string          `gorm:"column:currency;not null;default:'ISK'" json:"currency"`
  StartsAt        time.Time       `gorm:"column:starts_at" json:"starts_at"`
  Notes           string          `gorm:"column:notes" json:"notes"`
  Metadata        datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
  CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Booking) TableName() string {
  return "booking"
}
