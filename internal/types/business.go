package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type Business struct {
  ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  OwnerID         uuid.UUID       `gorm:"type:uuid;not null;index" json:"owner_id"`
  Owner           *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
  Name            string          `gorm:"column:name;not null" json:"name"`
  Slug            string          `gorm:"uniqueIndex;column:slug;not null" json:"slug"`
  Description     string          `gorm:"column:description" json:"description"`
  CommissionRate  *float64        `gorm:"column:commission_rate" json:"commission_rate,omitempty"`
  LogoBucketKey   string          `gorm:"column:logo_bucket_key" json:"logo_bucket_key"`
  LogoURL         string          `gorm:"column:logo_url" json:"logo_url"`
  Latitude        float64         `gorm:"column:latitude" json:"latitude"`
  Longitude       float64         `gorm:"column:longitude" json:"longitude"`
  Metadata        datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata,omitempty"`
  CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Business) TableName() string {
  return "business"
}
