package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

// SEOSettings is a singleton row per business, upserted on business_id.
type SEOSettings struct {
  ID              uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BusinessID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"business_id"`
  Business        *Business       `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusinessID;references:ID" json:"business,omitempty"`
  MetaTitle       string          `gorm:"column:meta_title" json:"meta_title"`
  MetaDescription string          `gorm:"column:meta_description" json:"meta_description"`
  Keywords        datatypes.JSON  `gorm:"column:keywords;type:jsonb" json:"keywords,omitempty"`
  OGImageURL      string          `gorm:"column:og_image_url" json:"og_image_url"`
  StructuredData  datatypes.JSON  `gorm:"column:structured_data;type:jsonb" json:"structured_data,omitempty"`
  CreatedAt       time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (SEOSettings) TableName() string {
  return "seo_settings"
}
