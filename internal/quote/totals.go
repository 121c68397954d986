package quote

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cartforge/quote-service/pkg/db/models"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
)

var oneHundred = decimal.NewFromInt(100)

// TotalsCalculator rebuilds the derived totals of a quote after a structural
// change. The store does not invalidate totals on a direct item write, so the
// calculator always reloads the quote fresh, clears the totals-collected
// flag, recomputes, and saves again.
type TotalsCalculator struct {
	quotes     QuoteRepository
	taxPercent decimal.Decimal
}

// NewTotalsCalculator parses the configured tax percent (e.g. "8.25").
func NewTotalsCalculator(quotes QuoteRepository, taxPercent string) (*TotalsCalculator, error) {
	if quotes == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	rate, err := decimal.NewFromString(taxPercent)
	if err != nil {
		return nil, fmt.Errorf("invalid tax percent %q: %w", taxPercent, err)
	}
	if rate.IsNegative() {
		return nil, fmt.Errorf("tax percent must not be negative")
	}
	return &TotalsCalculator{quotes: quotes, taxPercent: rate}, nil
}

// Recalculate reloads the quote from the store rather than trusting any
// in-memory handle: derived fields computed before the mutation's save
// completed must not leak into the new totals.
func (c *TotalsCalculator) Recalculate(ctx context.Context, quoteID uuid.UUID) error {
	fresh, err := c.quotes.Find(ctx, quoteID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTotalsStale, err, "reload cart for totals")
	}

	fresh.TotalsCollected = false
	c.collect(fresh)

	if _, err := c.quotes.Save(ctx, fresh); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeTotalsStale, err, "persist recalculated totals")
	}
	return nil
}

func (c *TotalsCalculator) collect(q *models.Quote) {
	subtotal := decimal.Zero
	for _, item := range q.Items {
		line := decimal.NewFromInt(int64(item.UnitPriceCents)).
			Mul(decimal.NewFromInt(int64(item.Qty)))
		subtotal = subtotal.Add(line)
	}

	tax := subtotal.Mul(c.taxPercent).Div(oneHundred).Round(0)

	q.SubtotalCents = int(subtotal.IntPart())
	q.TaxCents = int(tax.IntPart())
	q.GrandTotalCents = q.SubtotalCents + q.TaxCents
	q.TotalsCollected = true
}
