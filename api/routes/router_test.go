package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	quotesvc "github.com/cartforge/quote-service/internal/quote"
	uploadsvc "github.com/cartforge/quote-service/internal/uploads"
	"github.com/cartforge/quote-service/pkg/config"
	"github.com/cartforge/quote-service/pkg/db/models"
)

type routerQuoteService struct{}

func (routerQuoteService) SaveItem(ctx context.Context, input quotesvc.SaveItemInput) (*quotesvc.SaveItemResult, error) {
	return &quotesvc.SaveItemResult{ItemID: uuid.New()}, nil
}

func (routerQuoteService) ListItems(ctx context.Context, guestToken string) ([]models.QuoteItem, error) {
	return []models.QuoteItem{}, nil
}

type routerUploadService struct{}

func (routerUploadService) Save(ctx context.Context, inputs []uploadsvc.FileInput) ([]uploadsvc.StoredFile, error) {
	return []uploadsvc.StoredFile{}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.Issuer = "quote-service"
	cfg.JWT.ExpirationMinutes = 15

	return NewRouter(cfg, nil, nil, nil, routerQuoteService{}, routerUploadService{}, prometheus.NewRegistry())
}

func TestRouterHealthLive(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if resp.Header().Get("X-QuoteService-Env") != "test" {
		t.Fatalf("missing env header")
	}
}

func TestRouterHealthReady(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterSaveCartItem(t *testing.T) {
	router := newTestRouter(t)

	body := `{"cart_item":{"sku":"PLAIN-1","qty":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if resp.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
}

func TestRouterListCartItems(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/items?guest_cart_id=token", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterRejectsBadBearerToken(t *testing.T) {
	router := newTestRouter(t)

	body := `{"cart_item":{"sku":"PLAIN-1","qty":1}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
