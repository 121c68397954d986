package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/enums"
	"github.com/cartforge/quote-service/pkg/types"
)

// QuoteItem is one SKU+quantity+options row inside a Quote.
type QuoteItem struct {
	ID             uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID        uuid.UUID            `gorm:"column:quote_id;type:uuid;not null"`
	SKU            string               `gorm:"column:sku;not null"`
	Qty            int                  `gorm:"column:qty;not null"`
	ProductType    enums.ProductType    `gorm:"column:product_type;not null;default:'simple'"`
	UnitPriceCents int                  `gorm:"column:unit_price_cents;not null;default:0"`
	ProductOption  *types.ProductOption `gorm:"column:product_option;type:jsonb;serializer:json"`
	CreatedAt      time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
