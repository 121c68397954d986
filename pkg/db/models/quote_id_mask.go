package models

import (
	"time"

	"github.com/google/uuid"
)

// QuoteIDMask maps the opaque token handed to guest shoppers onto the internal
// quote identifier. Rows are created by checkout-session initiation and are
// read-only to the mutation pipeline.
type QuoteIDMask struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MaskedID  string    `gorm:"column:masked_id;not null;uniqueIndex"`
	QuoteID   uuid.UUID `gorm:"column:quote_id;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
