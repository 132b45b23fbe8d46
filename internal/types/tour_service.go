package types

import (
  "time"
  "github.com/google/uuid"
)

type TourService struct {
  ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BusinessID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"business_id"`
  Business        *Business   `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusinessID;references:ID" json:"business,omitempty"`
  Name            string      `gorm:"column:name;not null" json:"name"`
  Description     string      `gorm:"column:description" json:"description"`
  Price           int64       `gorm:"column:price;not null;default:0" json:"price"`
  Currency        string      `gorm:"column:currency;not null;default:'ISK'" json:"currency"`
  DurationMinutes int         `gorm:"column:duration_minutes" json:"duration_minutes"`
  Capacity        int         `gorm:"column:capacity" json:"capacity"`
  Active          bool        `gorm:"column:active;not null;default:true" json:"active"`
  CreatedAt       time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (TourService) TableName() string {
  return "tour_service"
}
