package quote

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

// CartResolver maps an incoming mutation request onto a loaded, mutable quote
// aggregate. Guest requests go through the mask table; authenticated requests
// use the quote id implied by the session.
type CartResolver struct {
	masks  GuestTokenResolver
	quotes QuoteRepository
}

// NewCartResolver builds a resolver over the mask table and quote store.
func NewCartResolver(masks GuestTokenResolver, quotes QuoteRepository) *CartResolver {
	return &CartResolver{masks: masks, quotes: quotes}
}

// Resolve loads the active quote for the request. guestToken wins over the
// session-implied id when both are present.
func (r *CartResolver) Resolve(ctx context.Context, guestToken *string, sessionQuoteID uuid.UUID) (*models.Quote, error) {
	quoteID := sessionQuoteID

	if guestToken != nil && *guestToken != "" {
		id, err := r.masks.Resolve(ctx, *guestToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest cart token not recognized")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve guest cart token")
		}
		quoteID = id
	}

	if quoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart context missing")
	}

	loaded, err := r.quotes.Find(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	if loaded.Status != enums.QuoteStatusActive {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is no longer active")
	}
	return loaded, nil
}
