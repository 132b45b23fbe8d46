package types

import (
  "time"
  "github.com/google/uuid"
)

// PageView rows are written by the tracking collaborator; analytics
// only counts them.
type PageView struct {
  ID            uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BusinessID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"business_id"`
  Path          string      `gorm:"column:path" json:"path"`
  Referrer      string      `gorm:"column:referrer" json:"referrer"`
  CreatedAt     time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (PageView) TableName() string {
  return "page_view"
}
