package middleware

import "context"

type contextKey string

const (
	ctxCustomerID contextKey = "customer_id"
	ctxQuoteID    contextKey = "quote_id"
)

func CustomerIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxCustomerID).(string); ok {
		return v
	}
	return ""
}

// QuoteIDFromContext returns the session-implied quote id, or "".
func QuoteIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxQuoteID).(string); ok {
		return v
	}
	return ""
}

// WithCustomerID injects the customer identifier into the context.
func WithCustomerID(ctx context.Context, customerID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxCustomerID, customerID)
}

// WithQuoteID injects the session-implied quote identifier into the context.
func WithQuoteID(ctx context.Context, quoteID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxQuoteID, quoteID)
}
