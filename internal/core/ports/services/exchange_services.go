package services

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
	"github.com/nvcfn/swiftgate/internal/dto"
	"github.com/shopspring/decimal"
)

// ExchangeRateReaderSvc defines read operations for stored exchange rates.
type ExchangeRateReaderSvc interface {
	// GetRate retrieves the stored rate for the exact ordered pair.
	GetRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriterSvc defines write operations for stored exchange rates.
type ExchangeRateWriterSvc interface {
	// PutRate upserts a rate quote, recomputing the stored inverse.
	PutRate(ctx context.Context, req dto.CreateExchangeRateRequest, updaterUserID string) (*domain.ExchangeRate, error)

	// DeactivateRate soft-deletes the rate for the ordered pair.
	DeactivateRate(ctx context.Context, fromCode, toCode string, updaterUserID string) error

	// SeedDefaultRates idempotently installs the well-known pairs. Safe to
	// call on every process start.
	SeedDefaultRates(ctx context.Context) error
}

// ExchangeRateSvcFacade combines all exchange rate service interfaces.
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// RateResolverSvc finds a usable exchange rate between two currency codes
// via direct, inverse or cross-rate lookup.
type RateResolverSvc interface {
	// Resolve returns a rate or apperrors.ErrNotFound. This is the strict
	// path: money-moving callers must treat a failure as hard.
	Resolve(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// ResolveQuote is the best-effort path for read-only displays. When the
	// whole fallback chain fails it returns 1.0 and logs the substitution.
	ResolveQuote(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)

	// Convert applies the strictly resolved rate to an amount.
	Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error)
}
