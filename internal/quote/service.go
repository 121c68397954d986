package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
	"github.com/cartforge/quote-service/pkg/logger"
	"github.com/cartforge/quote-service/pkg/metrics"
	"github.com/cartforge/quote-service/pkg/types"
)

const (
	savePathUpdate = "update"
	savePathCreate = "create"
)

// Service exposes the cart item mutation pipeline.
type Service interface {
	SaveItem(ctx context.Context, input SaveItemInput) (*SaveItemResult, error)
	ListItems(ctx context.Context, guestToken string) ([]models.QuoteItem, error)
}

type service struct {
	resolver *CartResolver
	quotes   QuoteRepository
	masks    GuestTokenResolver
	products ProductResolver
	options  *BuilderRegistry
	totals   *TotalsCalculator
	logg     *logger.Logger
	metrics  *metrics.PipelineMetrics
}

// ServiceParams collects the collaborators of the mutation pipeline.
type ServiceParams struct {
	Quotes   QuoteRepository
	Masks    GuestTokenResolver
	Products ProductResolver
	Totals   *TotalsCalculator
	Logger   *logger.Logger
	Metrics  *metrics.PipelineMetrics
}

// NewService builds the cart mutation service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Quotes == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if params.Masks == nil {
		return nil, fmt.Errorf("guest token resolver required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	if params.Totals == nil {
		return nil, fmt.Errorf("totals calculator required")
	}
	return &service{
		resolver: NewCartResolver(params.Masks, params.Quotes),
		quotes:   params.Quotes,
		masks:    params.Masks,
		products: params.Products,
		options:  NewBuilderRegistry(),
		totals:   params.Totals,
		logg:     params.Logger,
		metrics:  params.Metrics,
	}, nil
}

// SaveItemInput captures one requested cart item change.
type SaveItemInput struct {
	// GuestCartID selects the guest-owned cart; when absent the
	// session-implied quote id is used.
	GuestCartID    *string
	SessionQuoteID uuid.UUID

	// ItemID present means update (quantity only); absent means create.
	ItemID *uuid.UUID

	SKU string
	Qty int

	// ProductType optionally overrides the resolved catalog type tag.
	ProductType *enums.ProductType

	// ProductOption, when supplied by the caller, is attached verbatim and
	// the option builder is skipped.
	ProductOption *types.ProductOption
}

// SaveItemResult reports the persisted item and whether the follow-up totals
// pass failed. A stale-totals outcome does not roll back the item write.
type SaveItemResult struct {
	ItemID        uuid.UUID
	TotalsStale   bool
	TotalsWarning *pkgerrors.Error
}

func (s *service) SaveItem(ctx context.Context, input SaveItemInput) (*SaveItemResult, error) {
	start := time.Now()

	if input.Qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	cart, err := s.resolver.Resolve(ctx, input.GuestCartID, input.SessionQuoteID)
	if err != nil {
		return nil, err
	}
	ctx = s.withQuoteID(ctx, cart.ID)

	item, found, err := LocateItem(cart, input.ItemID)
	if err != nil {
		return nil, err
	}

	var saved *models.QuoteItem
	path := savePathCreate
	if found {
		path = savePathUpdate
		saved, err = s.updateItem(ctx, item, input.Qty)
	} else {
		saved, err = s.createItem(ctx, cart, input)
	}
	if err != nil {
		return nil, err
	}

	// Totals are only valid while the collected flag holds; clear it on the
	// aggregate before the structural change becomes visible.
	cart.TotalsCollected = false
	if _, err := s.quotes.Save(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart")
	}

	result := &SaveItemResult{ItemID: saved.ID}

	if err := s.totals.Recalculate(ctx, cart.ID); err != nil {
		// The item write is already committed; totals become eventually
		// consistent on a later mutation or retry.
		if s.metrics != nil {
			s.metrics.IncTotalsFailure()
		}
		if s.logg != nil {
			s.logg.Error(ctx, "cart totals recalculation failed", err)
		}
		result.TotalsStale = true
		if typed := pkgerrors.As(err); typed != nil {
			result.TotalsWarning = typed
		} else {
			result.TotalsWarning = pkgerrors.Wrap(pkgerrors.CodeTotalsStale, err, "recalculate totals")
		}
	}

	if s.metrics != nil {
		s.metrics.ObserveSave(path, time.Since(start))
	}
	return result, nil
}

// updateItem changes the quantity only; identifier, SKU and options stay
// untouched and no product re-resolution happens.
func (s *service) updateItem(ctx context.Context, item *models.QuoteItem, qty int) (*models.QuoteItem, error) {
	item.Qty = qty
	saved, err := s.quotes.SaveItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart item")
	}
	return saved, nil
}

func (s *service) createItem(ctx context.Context, cart *models.Quote, input SaveItemInput) (*models.QuoteItem, error) {
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}

	product, err := s.products.ResolveForPurchase(ctx, input.SKU)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve product")
	}

	// Caller-supplied selections take precedence over derivation: the
	// upstream schema layer may already have assembled them.
	option := input.ProductOption
	if option == nil {
		option, err = s.options.Build(product, input.SKU)
		if err != nil {
			return nil, err
		}
	}

	productType := product.Type
	if input.ProductType != nil && input.ProductType.IsValid() {
		productType = *input.ProductType
	}

	item := &models.QuoteItem{
		QuoteID:        cart.ID,
		SKU:            input.SKU,
		Qty:            input.Qty,
		ProductType:    productType,
		UnitPriceCents: unitPriceFor(product, input.SKU),
		ProductOption:  option,
	}

	saved, err := s.quotes.AddItem(ctx, item)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add cart item")
	}
	return saved, nil
}

// ListItems returns the items of the guest cart identified by token. A cart
// with zero items yields an empty slice, never an error.
func (s *service) ListItems(ctx context.Context, guestToken string) ([]models.QuoteItem, error) {
	if guestToken == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "guest cart token is required")
	}

	quoteID, err := s.masks.Resolve(ctx, guestToken)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "guest cart token not recognized")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve guest cart token")
	}

	items, err := s.quotes.ListItems(ctx, quoteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list cart items")
	}
	if items == nil {
		items = []models.QuoteItem{}
	}
	return items, nil
}

// unitPriceFor snapshots the price of the concrete variant being purchased.
func unitPriceFor(product *models.Product, sku string) int {
	if product.SKU == sku {
		return product.PriceCents
	}
	if child := product.ChildBySKU(sku); child != nil {
		return child.PriceCents
	}
	return product.PriceCents
}

func (s *service) withQuoteID(ctx context.Context, id uuid.UUID) context.Context {
	if s.logg == nil {
		return ctx
	}
	return s.logg.WithQuoteID(ctx, id.String())
}
