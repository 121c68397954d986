package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTokenPayload captures the data available when minting a JWT.
type SessionTokenPayload struct {
	CustomerID uuid.UUID
	QuoteID    *uuid.UUID
	JTI        string
}

// SessionTokenClaims is the typed JWT issued to authenticated shoppers.
// QuoteID, when present, is the customer's active quote and stands in for an
// explicit guest cart token.
type SessionTokenClaims struct {
	CustomerID uuid.UUID  `json:"customer_id"`
	QuoteID    *uuid.UUID `json:"quote_id,omitempty"`
	jwt.RegisteredClaims
}
