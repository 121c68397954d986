package middleware

import (
	"net/http"
	"strings"

	"github.com/cartforge/quote-service/api/responses"
	pkgAuth "github.com/cartforge/quote-service/pkg/auth"
	"github.com/cartforge/quote-service/pkg/config"
	pkgerrors "github.com/cartforge/quote-service/pkg/errors"
	"github.com/cartforge/quote-service/pkg/logger"
)

// Session validates a bearer token when one is present and seeds the request
// context with the claims. Requests without credentials pass through
// untouched: guest traffic identifies its cart by token instead.
func Session(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgAuth.ParseSessionToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithCustomerID(r.Context(), claims.CustomerID.String())
			if claims.QuoteID != nil {
				ctx = WithQuoteID(ctx, claims.QuoteID.String())
			}

			if logg != nil {
				ctx = logg.WithCustomerID(ctx, claims.CustomerID.String())
				if claims.QuoteID != nil {
					ctx = logg.WithQuoteID(ctx, claims.QuoteID.String())
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
