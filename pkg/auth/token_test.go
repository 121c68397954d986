package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/cartforge/quote-service/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "quote-service",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseSessionToken(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	quoteID := uuid.New()
	payload := SessionTokenPayload{
		CustomerID: uuid.New(),
		QuoteID:    &quoteID,
	}

	signed, err := MintSessionToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	claims, err := ParseSessionToken(cfg, signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.CustomerID != payload.CustomerID {
		t.Fatalf("unexpected customer id: %s", claims.CustomerID)
	}
	if claims.QuoteID == nil || *claims.QuoteID != quoteID {
		t.Fatalf("unexpected quote id: %v", claims.QuoteID)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
}

func TestParseSessionTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now(), SessionTokenPayload{CustomerID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := cfg
	other.Secret = "different-secret"
	if _, err := ParseSessionToken(other, signed); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseSessionTokenRejectsExpired(t *testing.T) {
	t.Parallel()

	cfg := testJWTConfig()
	signed, err := MintSessionToken(cfg, time.Now().Add(-time.Hour), SessionTokenPayload{CustomerID: uuid.New()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseSessionToken(cfg, signed); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestMintSessionTokenRequiresCustomer(t *testing.T) {
	t.Parallel()

	if _, err := MintSessionToken(testJWTConfig(), time.Now(), SessionTokenPayload{}); err == nil {
		t.Fatal("expected error for missing customer id")
	}
}
