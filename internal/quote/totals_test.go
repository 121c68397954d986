package quote

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/db/models"
	"github.com/cartforge/quote-service/pkg/enums"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

func TestNewTotalsCalculatorRejectsBadPercent(t *testing.T) {
	t.Parallel()

	if _, err := NewTotalsCalculator(&stubQuoteRepo{}, "not-a-number"); err == nil {
		t.Fatal("expected error for unparseable percent")
	}
	if _, err := NewTotalsCalculator(&stubQuoteRepo{}, "-1"); err == nil {
		t.Fatal("expected error for negative percent")
	}
	if _, err := NewTotalsCalculator(nil, "0"); err == nil {
		t.Fatal("expected error for nil repository")
	}
}

func TestRecalculateComputesTotals(t *testing.T) {
	t.Parallel()

	cart := &models.Quote{
		ID:     uuid.New(),
		Status: enums.QuoteStatusActive,
		Items: []models.QuoteItem{
			{ID: uuid.New(), SKU: "A", Qty: 2, UnitPriceCents: 1000},
			{ID: uuid.New(), SKU: "B", Qty: 1, UnitPriceCents: 500},
		},
	}
	repo := &stubQuoteRepo{quote: cart}

	calc, err := NewTotalsCalculator(repo, "8.25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := calc.Recalculate(context.Background(), cart.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if repo.findCalls != 1 {
		t.Fatalf("expected a fresh reload, got %d finds", repo.findCalls)
	}
	if repo.saveCalls != 1 {
		t.Fatalf("expected one save, got %d", repo.saveCalls)
	}
	if cart.SubtotalCents != 2500 {
		t.Fatalf("unexpected subtotal: %d", cart.SubtotalCents)
	}
	// 2500 * 8.25% = 206.25, rounded to 206.
	if cart.TaxCents != 206 {
		t.Fatalf("unexpected tax: %d", cart.TaxCents)
	}
	if cart.GrandTotalCents != 2706 {
		t.Fatalf("unexpected grand total: %d", cart.GrandTotalCents)
	}
	if !cart.TotalsCollected {
		t.Fatal("expected totals-collected flag to be set")
	}
}

func TestRecalculateEmptyCart(t *testing.T) {
	t.Parallel()

	cart := activeCart()
	repo := &stubQuoteRepo{quote: cart}

	calc, err := NewTotalsCalculator(repo, "10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := calc.Recalculate(context.Background(), cart.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart.SubtotalCents != 0 || cart.TaxCents != 0 || cart.GrandTotalCents != 0 {
		t.Fatalf("expected zero totals, got %+v", cart)
	}
	if !cart.TotalsCollected {
		t.Fatal("expected totals-collected flag to be set")
	}
}

func TestRecalculateReloadFailure(t *testing.T) {
	t.Parallel()

	repo := &stubQuoteRepo{findErr: errors.New("connection reset")}
	calc, err := NewTotalsCalculator(repo, "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = calc.Recalculate(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected error when reload fails")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeTotalsStale {
		t.Fatalf("unexpected error code: %v", err)
	}
	if repo.saveCalls != 0 {
		t.Fatal("failed reload must not save")
	}
}

func TestRecalculateSaveFailure(t *testing.T) {
	t.Parallel()

	cart := activeCart()
	repo := &stubQuoteRepo{quote: cart, saveErr: errors.New("disk full")}
	calc, err := NewTotalsCalculator(repo, "0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = calc.Recalculate(context.Background(), cart.ID)
	if err == nil {
		t.Fatal("expected error when save fails")
	}
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeTotalsStale {
		t.Fatalf("unexpected error code: %v", err)
	}
}
