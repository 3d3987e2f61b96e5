package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	pricingsvc "github.com/angelmondragon/wholesale-backend/internal/pricing"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/types"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})
}

type stubPricingService struct {
	quote       *pricingsvc.QuoteDTO
	quoteErr    error
	result      pricingsvc.ValidationResult
	lastQty     int
	lastProduct uuid.UUID
}

func (s *stubPricingService) Quote(_ context.Context, productID uuid.UUID, qty int) (*pricingsvc.QuoteDTO, error) {
	s.lastProduct = productID
	s.lastQty = qty
	if s.quoteErr != nil {
		return nil, s.quoteErr
	}
	return s.quote, nil
}

func (s *stubPricingService) ValidateTiers(_ context.Context, _ pricingsvc.ValidateTiersInput) pricingsvc.ValidationResult {
	return s.result
}

func TestPricingQuote(t *testing.T) {
	productID := uuid.New()
	stub := &stubPricingService{
		quote: &pricingsvc.QuoteDTO{
			ProductID:       productID,
			Quantity:        150,
			UnitPriceCents:  8500,
			TotalPriceCents: 1275000,
			PriceType:       enums.PriceTypeTier,
			MeetsMinimum:    true,
		},
	}

	body := `{"product_id":"` + productID.String() + `","quantity":150}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(body))
	rec := httptest.NewRecorder()
	PricingQuote(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.lastProduct != productID || stub.lastQty != 150 {
		t.Fatalf("service called with (%s, %d)", stub.lastProduct, stub.lastQty)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["total_price_cents"].(float64) != 1275000 {
		t.Fatalf("unexpected total %v", data["total_price_cents"])
	}
}

func TestPricingQuoteRejectsBadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "nope"},
		{"missing quantity", `{"product_id":"` + uuid.NewString() + `"}`},
		{"zero quantity", `{"product_id":"` + uuid.NewString() + `","quantity":0}`},
		{"bad uuid", `{"product_id":"not-a-uuid","quantity":10}`},
		{"unknown field", `{"product_id":"` + uuid.NewString() + `","quantity":10,"extra":1}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/quote", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			PricingQuote(&stubPricingService{}, testLogger()).ServeHTTP(rec, req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestPricingValidateTiersReturnsFindings(t *testing.T) {
	stub := &stubPricingService{
		result: pricingsvc.ValidationResult{
			IsValid: false,
			Errors:  []string{"tier ranges overlap: 10-60 and 50+"},
		},
	}

	body := `{"base_price_cents":8000,"wholesale_price_cents":10000,"tiers":[{"min_qty":10,"max_qty":60,"unit_price_cents":9500},{"min_qty":50,"unit_price_cents":9000}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/pricing/validate-tiers", strings.NewReader(body))
	rec := httptest.NewRecorder()
	PricingValidateTiers(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("structural findings should return 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	data := envelope.Data.(map[string]any)
	if data["is_valid"].(bool) {
		t.Fatalf("expected is_valid false")
	}
	if len(data["errors"].([]any)) != 1 {
		t.Fatalf("expected one finding, got %v", data["errors"])
	}
}
