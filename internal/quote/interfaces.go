package quote

import (
	"context"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/db/models"
)

// QuoteRepository exposes the persistence operations the mutation pipeline
// needs from the quote store.
type QuoteRepository interface {
	Find(ctx context.Context, id uuid.UUID) (*models.Quote, error)
	Save(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	AddItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error)
	SaveItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error)
	ListItems(ctx context.Context, quoteID uuid.UUID) ([]models.QuoteItem, error)
}

// GuestTokenResolver maps opaque guest-facing tokens onto quote identifiers.
type GuestTokenResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// ProductResolver loads the catalog product used for purchase-option
// dispatch.
type ProductResolver interface {
	ResolveForPurchase(ctx context.Context, sku string) (*models.Product, error)
}
