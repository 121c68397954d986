package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/api/middleware"
	"github.com/cartforge/quote-service/api/responses"
	"github.com/cartforge/quote-service/api/validators"
	quotesvc "github.com/cartforge/quote-service/internal/quote"
	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
	"github.com/cartforge/quote-service/pkg/logger"
	"github.com/cartforge/quote-service/pkg/types"
)

// SaveCartItem handles create/update of a single cart line item.
func SaveCartItem(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload saveCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SaveItem(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data := saveCartItemResponse{ItemID: result.ItemID}
		if result.TotalsStale {
			responses.WriteSuccessWarning(w, data, result.TotalsWarning)
			return
		}
		responses.WriteSuccess(w, data)
	}
}

// GetCartItems lists the guest cart identified by the guest_cart_id query
// parameter.
func GetCartItems(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		items, err := svc.ListItems(r.Context(), r.URL.Query().Get("guest_cart_id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartItemResponses(items))
	}
}

type saveCartItemRequest struct {
	GuestCartID *string         `json:"guest_cart_id,omitempty"`
	CartItem    cartItemPayload `json:"cart_item"`
}

type cartItemPayload struct {
	ItemID        *uuid.UUID           `json:"item_id,omitempty"`
	SKU           string               `json:"sku,omitempty"`
	Qty           int                  `json:"qty" validate:"required,min=1"`
	ProductType   *string              `json:"product_type,omitempty" validate:"omitempty,oneof=simple configurable bundle other"`
	ProductOption *types.ProductOption `json:"product_option,omitempty"`
}

func (p saveCartItemRequest) toInput(r *http.Request) (quotesvc.SaveItemInput, error) {
	input := quotesvc.SaveItemInput{
		GuestCartID:   p.GuestCartID,
		ItemID:        p.CartItem.ItemID,
		SKU:           p.CartItem.SKU,
		Qty:           p.CartItem.Qty,
		ProductOption: p.CartItem.ProductOption,
	}

	if p.CartItem.ProductType != nil {
		productType := enums.ProductType(*p.CartItem.ProductType)
		if !productType.IsValid() {
			return quotesvc.SaveItemInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product type")
		}
		input.ProductType = &productType
	}

	if sessionQuote := middleware.QuoteIDFromContext(r.Context()); sessionQuote != "" {
		id, err := uuid.Parse(sessionQuote)
		if err != nil {
			return quotesvc.SaveItemInput{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid session quote id")
		}
		input.SessionQuoteID = id
	}

	return input, nil
}

type saveCartItemResponse struct {
	ItemID uuid.UUID `json:"item_id"`
}

type cartItemResponse struct {
	ItemID         uuid.UUID            `json:"item_id"`
	SKU            string               `json:"sku"`
	Qty            int                  `json:"qty"`
	ProductType    string               `json:"product_type"`
	UnitPriceCents int                  `json:"unit_price_cents"`
	ProductOption  *types.ProductOption `json:"product_option,omitempty"`
}

func newCartItemResponses(items []models.QuoteItem) []cartItemResponse {
	out := make([]cartItemResponse, 0, len(items))
	for _, item := range items {
		option := item.ProductOption
		if option.IsEmpty() {
			option = nil
		}
		out = append(out, cartItemResponse{
			ItemID:         item.ID,
			SKU:            item.SKU,
			Qty:            item.Qty,
			ProductType:    string(item.ProductType),
			UnitPriceCents: item.UnitPriceCents,
			ProductOption:  option,
		})
	}
	return out
}
