package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/angelmondragon/wholesale-backend/api/responses"
	"github.com/angelmondragon/wholesale-backend/api/validators"
	pricingsvc "github.com/angelmondragon/wholesale-backend/internal/pricing"
	pkgerrors "github.com/angelmondragon/wholesale-backend/pkg/errors"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
)

type quoteRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// PricingQuote prices one product at one quantity.
func PricingQuote(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		quote, err := svc.Quote(r.Context(), productID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type validateTiersRequest struct {
	BasePriceCents      int64                 `json:"base_price_cents" validate:"required,min=1"`
	WholesalePriceCents int64                 `json:"wholesale_price_cents" validate:"required,min=1"`
	MOQ                 *int                  `json:"moq,omitempty"`
	Tiers               []validateTierRequest `json:"tiers" validate:"required,min=1,dive"`
}

type validateTierRequest struct {
	MinQty          int      `json:"min_qty"`
	MaxQty          *int     `json:"max_qty,omitempty"`
	UnitPriceCents  int64    `json:"unit_price_cents"`
	DiscountPercent *float64 `json:"discount_percent,omitempty"`
}

// PricingValidateTiers checks a draft tier configuration. Structural findings
// come back in the response body with a 200; the endpoint only errors when
// the request itself is malformed.
func PricingValidateTiers(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload validateTiersRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := pricingsvc.ValidateTiersInput{
			BasePriceCents:      payload.BasePriceCents,
			WholesalePriceCents: payload.WholesalePriceCents,
			MOQ:                 payload.MOQ,
		}
		for _, tier := range payload.Tiers {
			input.Tiers = append(input.Tiers, pricingsvc.TierInput{
				MinQty:          tier.MinQty,
				MaxQty:          tier.MaxQty,
				UnitPriceCents:  tier.UnitPriceCents,
				DiscountPercent: tier.DiscountPercent,
			})
		}

		result := svc.ValidateTiers(r.Context(), input)
		responses.WriteSuccess(w, result)
	}
}
