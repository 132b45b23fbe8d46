package types

import (
  "time"
  "github.com/google/uuid"
)

type MediaAsset struct {
  ID            uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BusinessID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"business_id"`
  Business      *Business   `gorm:"constraint:OnDelete:CASCADE;foreignKey:BusinessID;references:ID" json:"business,omitempty"`
  BucketKey     string      `gorm:"uniqueIndex;column:bucket_key;not null" json:"bucket_key"`
  FileName      string      `gorm:"column:file_name;not null" json:"file_name"`
  ContentType   string      `gorm:"column:content_type" json:"content_type"`
  SizeBytes     int64       `gorm:"column:size_bytes;not null;default:0" json:"size_bytes"`
  PublicURL     string      `gorm:"column:public_url" json:"public_url"`
  CreatedAt     time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt     time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (MediaAsset) TableName() string {
  return "media_asset"
}
