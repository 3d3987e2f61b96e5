package pricing

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/wholesale-backend/pkg/config"
	"github.com/angelmondragon/wholesale-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/wholesale-backend/pkg/errors"
	"github.com/angelmondragon/wholesale-backend/pkg/logger"
	"github.com/angelmondragon/wholesale-backend/pkg/money"
)

// Service exposes wholesale quoting and tier-configuration validation.
type Service interface {
	Quote(ctx context.Context, productID uuid.UUID, qty int) (*QuoteDTO, error)
	ValidateTiers(ctx context.Context, input ValidateTiersInput) ValidationResult
}

// QuoteDTO is the API-facing quote for one product and quantity. Money is
// reported in integer cents.
type QuoteDTO struct {
	ProductID         uuid.UUID       `json:"product_id"`
	Quantity          int             `json:"quantity"`
	UnitPriceCents    int64           `json:"unit_price_cents"`
	TotalPriceCents   int64           `json:"total_price_cents"`
	PriceType         enums.PriceType `json:"price_type"`
	AppliedTier       *AppliedTierDTO `json:"applied_tier,omitempty"`
	SavingsCents      int64           `json:"savings_cents"`
	SavingsPercentage float64         `json:"savings_percentage"`
	MeetsMinimum      bool            `json:"meets_minimum"`
	MinimumRequired   int             `json:"minimum_required"`
	StockValidation   StockValidation `json:"stock_validation"`
}

// AppliedTierDTO reports which volume tier produced the quoted price.
type AppliedTierDTO struct {
	MinQty         int   `json:"min_qty"`
	MaxQty         *int  `json:"max_qty,omitempty"`
	UnitPriceCents int64 `json:"unit_price_cents"`
}

// ValidateTiersInput is a draft pricing configuration to check before save.
type ValidateTiersInput struct {
	BasePriceCents      int64
	WholesalePriceCents int64
	MOQ                 *int
	Tiers               []TierInput
}

// TierInput is one draft tier in cents.
type TierInput struct {
	MinQty          int
	MaxQty          *int
	UnitPriceCents  int64
	DiscountPercent *float64
}

type service struct {
	repo   ProductRepository
	policy config.PolicyConfig
	logg   *logger.Logger
}

// NewService wires the pricing service.
func NewService(repo ProductRepository, policy config.PolicyConfig, logg *logger.Logger) Service {
	return &service{repo: repo, policy: policy, logg: logg}
}

func (s *service) Quote(ctx context.Context, productID uuid.UUID, qty int) (*QuoteDTO, error) {
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	product, err := s.repo.GetProductWithTiers(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	pricing := FromModel(product)
	calc := Calculate(pricing, qty)
	stock := ValidateOrder(pricing, qty, s.policy)

	dto := &QuoteDTO{
		ProductID:         productID,
		Quantity:          calc.Quantity,
		UnitPriceCents:    money.Cents(calc.UnitPrice),
		TotalPriceCents:   money.Cents(calc.TotalPrice),
		PriceType:         calc.PriceType,
		SavingsCents:      money.Cents(calc.Savings),
		SavingsPercentage: calc.SavingsPercentage.Round(3).InexactFloat64(),
		MeetsMinimum:      calc.MeetsMinimum,
		MinimumRequired:   calc.MinimumRequired,
		StockValidation:   stock,
	}
	if calc.AppliedTier != nil {
		dto.AppliedTier = &AppliedTierDTO{
			MinQty:         calc.AppliedTier.MinQty,
			MaxQty:         calc.AppliedTier.MaxQty,
			UnitPriceCents: money.Cents(calc.AppliedTier.UnitPrice),
		}
	}

	if !calc.MeetsMinimum {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"product_id": productID, "qty": qty, "moq": calc.MinimumRequired,
		})
		s.logg.Info(ctx, "quote rejected below minimum order quantity")
	}

	return dto, nil
}

func (s *service) ValidateTiers(ctx context.Context, input ValidateTiersInput) ValidationResult {
	tiers := make([]Tier, 0, len(input.Tiers))
	for _, t := range input.Tiers {
		tier := Tier{
			MinQty:    t.MinQty,
			MaxQty:    t.MaxQty,
			UnitPrice: money.FromCents(t.UnitPriceCents),
		}
		if t.DiscountPercent != nil {
			discount := decimal.NewFromFloat(*t.DiscountPercent)
			tier.DiscountPercent = &discount
		}
		tiers = append(tiers, tier)
	}

	return ValidateTierConfig(
		money.FromCents(input.BasePriceCents),
		money.FromCents(input.WholesalePriceCents),
		input.MOQ,
		tiers,
	)
}
