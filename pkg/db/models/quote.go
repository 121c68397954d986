package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/enums"
)

// Quote is the shopping-session aggregate. Totals fields are a derived cache:
// they are only trustworthy while TotalsCollected is set, and every structural
// item mutation clears the flag before the quote is saved.
type Quote struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID      *uuid.UUID        `gorm:"column:customer_id;type:uuid"`
	Status          enums.QuoteStatus `gorm:"column:status;not null;default:'active'"`
	TotalsCollected bool              `gorm:"column:totals_collected;not null;default:false"`
	SubtotalCents   int               `gorm:"column:subtotal_cents;not null;default:0"`
	TaxCents        int               `gorm:"column:tax_cents;not null;default:0"`
	GrandTotalCents int               `gorm:"column:grand_total_cents;not null;default:0"`
	Items           []QuoteItem       `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// ItemByID returns the line item with the given identifier, or nil.
func (q *Quote) ItemByID(id uuid.UUID) *QuoteItem {
	if q == nil {
		return nil
	}
	for i := range q.Items {
		if q.Items[i].ID == id {
			return &q.Items[i]
		}
	}
	return nil
}
