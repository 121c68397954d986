package quote

import (
	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/db/models"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

// LocateItem classifies the request by the presence of an item id. A present
// id means an update and must match an existing line item; an absent id means
// a create and returns (nil, false, nil) so the caller builds a new item.
//
// An item that went missing between the client reading the cart and this
// lookup (e.g. removed in another tab) surfaces as not-found and is retryable
// by the caller.
func LocateItem(cart *models.Quote, itemID *uuid.UUID) (*models.QuoteItem, bool, error) {
	if itemID == nil {
		return nil, false, nil
	}
	item := cart.ItemByID(*itemID)
	if item == nil {
		return nil, false, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return item, true, nil
}
