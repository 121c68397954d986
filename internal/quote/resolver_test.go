package quote

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

func TestResolvePrefersGuestToken(t *testing.T) {
	t.Parallel()

	cart := activeCart()
	repo := &stubQuoteRepo{quote: cart}
	masks := &stubMaskResolver{quoteID: cart.ID}
	resolver := NewCartResolver(masks, repo)

	token := "guest-token"
	// The session points elsewhere; the mask must win.
	got, err := resolver.Resolve(context.Background(), &token, uuid.New())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != cart.ID {
		t.Fatalf("expected masked quote, got %s", got.ID)
	}
	if repo.lastFindID != cart.ID {
		t.Fatalf("expected lookup by masked id, got %s", repo.lastFindID)
	}
	if masks.calls != 1 {
		t.Fatalf("expected one mask resolution, got %d", masks.calls)
	}
}

func TestResolveSessionQuote(t *testing.T) {
	t.Parallel()

	cart := activeCart()
	repo := &stubQuoteRepo{quote: cart}
	masks := &stubMaskResolver{}
	resolver := NewCartResolver(masks, repo)

	got, err := resolver.Resolve(context.Background(), nil, cart.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != cart.ID {
		t.Fatalf("unexpected quote: %s", got.ID)
	}
	if masks.calls != 0 {
		t.Fatal("session path must not hit the mask table")
	}
}

func TestResolveMissingContext(t *testing.T) {
	t.Parallel()

	resolver := NewCartResolver(&stubMaskResolver{}, &stubQuoteRepo{})

	_, err := resolver.Resolve(context.Background(), nil, uuid.Nil)
	if err == nil {
		t.Fatal("expected error without any cart context")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestResolveInactiveCart(t *testing.T) {
	t.Parallel()

	cart := &models.Quote{ID: uuid.New(), Status: enums.QuoteStatusInactive}
	resolver := NewCartResolver(&stubMaskResolver{}, &stubQuoteRepo{quote: cart})

	_, err := resolver.Resolve(context.Background(), nil, cart.ID)
	if err == nil {
		t.Fatal("expected error for inactive cart")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestResolveCartNotFound(t *testing.T) {
	t.Parallel()

	resolver := NewCartResolver(&stubMaskResolver{}, &stubQuoteRepo{})

	_, err := resolver.Resolve(context.Background(), nil, uuid.New())
	if err == nil {
		t.Fatal("expected error for missing cart")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("unexpected error code: %v", err)
	}
}

func TestLocateItemCreatePath(t *testing.T) {
	t.Parallel()

	item, found, err := LocateItem(activeCart(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found || item != nil {
		t.Fatalf("absent item id must classify as create, got %+v", item)
	}
}

func TestLocateItemUpdatePath(t *testing.T) {
	t.Parallel()

	cart := activeCart()
	itemID := uuid.New()
	cart.Items = []models.QuoteItem{{ID: itemID, QuoteID: cart.ID, SKU: "A", Qty: 1}}

	item, found, err := LocateItem(cart, &itemID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found || item == nil || item.ID != itemID {
		t.Fatalf("expected existing item, got %+v", item)
	}
}
