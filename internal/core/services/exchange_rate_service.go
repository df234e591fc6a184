package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
	portsrepo "github.com/nvcfn/swiftgate/internal/core/ports/repositories"
	portssvc "github.com/nvcfn/swiftgate/internal/core/ports/services"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// seedSource marks rates installed by SeedDefaultRates.
const seedSource = "system_default"

// ExchangeRateService provides business logic for the persistent rate store:
// upserts with atomically recomputed inverses, soft deactivation, and
// idempotent seeding of the well-known pairs.
type ExchangeRateService struct {
	rateRepo        portsrepo.ExchangeRateRepositoryFacade
	currencyService portssvc.CurrencySvcFacade
	goldFeed        portssvc.GoldPriceSvc
	baseCurrency    string
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyService portssvc.CurrencySvcFacade, goldFeed portssvc.GoldPriceSvc, baseCurrency string) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:        rateRepo,
		currencyService: currencyService,
		goldFeed:        goldFeed,
		baseCurrency:    strings.ToUpper(baseCurrency),
	}
}

// PutRate upserts the rate for an ordered currency pair. The inverse rate is
// recomputed here so the pair of values is always written together.
func (s *ExchangeRateService) PutRate(ctx context.Context, req dto.CreateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error) {
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	fromCode := strings.ToUpper(req.FromCurrencyCode)
	toCode := strings.ToUpper(req.ToCurrencyCode)
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}

	// Both currencies must be registered.
	if _, err := s.currencyService.GetCurrencyByCode(ctx, fromCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, fromCode)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency '%s': %w", fromCode, err)
	}
	if _, err := s.currencyService.GetCurrencyByCode(ctx, toCode); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, toCode)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency '%s': %w", toCode, err)
	}

	now := time.Now()
	source := req.Source
	if source == "" {
		source = "manual"
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		InverseRate:      decimal.NewFromInt(1).Div(req.Rate),
		Source:           source,
		Active:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     updaterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: updaterUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to save exchange rate in service: %w", err)
	}
	return &rate, nil
}

// GetRate retrieves the stored rate for the exact ordered pair.
func (s *ExchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	fromCode = strings.ToUpper(fromCode)
	toCode = strings.ToUpper(toCode)
	if !domain.ValidCurrencyCode(fromCode) || !domain.ValidCurrencyCode(toCode) {
		return nil, fmt.Errorf("%w: malformed currency pair %s/%s", apperrors.ErrValidation, fromCode, toCode)
	}

	rate, err := s.rateRepo.FindExchangeRate(ctx, fromCode, toCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate in service: %w", err)
	}
	return rate, nil
}

// DeactivateRate soft-deletes the rate for the ordered pair. Rates are never
// hard-deleted.
func (s *ExchangeRateService) DeactivateRate(ctx context.Context, fromCode, toCode string, updaterUserID string) error {
	if err := s.rateRepo.DeactivateExchangeRate(ctx, strings.ToUpper(fromCode), strings.ToUpper(toCode)); err != nil {
		return fmt.Errorf("failed to deactivate exchange rate in service: %w", err)
	}
	return nil
}

// seedRate is one well-known pair installed at startup.
type seedRate struct {
	from string
	to   string
	rate decimal.Decimal
}

// defaultSeedRates are the static pairs: the base token's USD peg, the fiat
// majors, the African corridor, and the partner tokens. The gold-derived
// AFD1 rate is computed at seed time.
func (s *ExchangeRateService) defaultSeedRates(goldPrice decimal.Decimal) []seedRate {
	seeds := []seedRate{
		{s.baseCurrency, "USD", decimal.NewFromInt(1)},
		{"USD", "EUR", decimal.RequireFromString("0.92")},
		{"USD", "GBP", decimal.RequireFromString("0.78")},
		{"USD", "JPY", decimal.RequireFromString("154.50")},
		{"USD", "CAD", decimal.RequireFromString("1.36")},
		{"USD", "AUD", decimal.RequireFromString("1.51")},
		{"USD", "CNY", decimal.RequireFromString("7.23")},
		{"USD", "INR", decimal.RequireFromString("83.10")},
		{"USD", "NGN", decimal.RequireFromString("1385.0")},
		{"USD", "ZAR", decimal.RequireFromString("18.40")},
		{"USD", "EGP", decimal.RequireFromString("47.15")},
		{"SFN", s.baseCurrency, decimal.NewFromInt(1)},
		{"AKLUMI", "USD", decimal.RequireFromString("100.0")},
	}
	if goldPrice.GreaterThan(decimal.Zero) {
		// AFD1 is pegged at 10% of the gold price.
		seeds = append(seeds, seedRate{"AFD1", "USD", goldPrice.Mul(decimal.RequireFromString("0.10"))})
	}
	return seeds
}

// SeedDefaultRates installs the well-known pairs, inserting only where no
// record exists for the ordered pair. Safe to call on every process start.
func (s *ExchangeRateService) SeedDefaultRates(ctx context.Context) error {
	goldPrice := decimal.Zero
	if s.goldFeed != nil {
		price, err := s.goldFeed.CurrentPrice(ctx)
		if err != nil {
			// The gold-pegged pair is skipped; everything else still seeds.
			goldPrice = decimal.Zero
		} else {
			goldPrice = price
		}
	}

	now := time.Now()
	for _, seed := range s.defaultSeedRates(goldPrice) {
		existing, err := s.rateRepo.FindExchangeRate(ctx, seed.from, seed.to)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("failed to check existing rate %s/%s: %w", seed.from, seed.to, err)
		}
		if existing != nil {
			continue
		}

		rate := domain.ExchangeRate{
			ExchangeRateID:   uuid.NewString(),
			FromCurrencyCode: seed.from,
			ToCurrencyCode:   seed.to,
			Rate:             seed.rate,
			InverseRate:      decimal.NewFromInt(1).Div(seed.rate),
			Source:           seedSource,
			Active:           true,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     "system",
				LastUpdatedAt: now,
				LastUpdatedBy: "system",
			},
		}
		if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
			return fmt.Errorf("failed to seed rate %s/%s: %w", seed.from, seed.to, err)
		}
	}
	return nil
}
