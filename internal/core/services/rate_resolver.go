package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	portsrepo "github.com/nvcfn/swiftgate/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// RateResolverService finds a usable exchange rate between two currency
// codes. Resolution order, first success wins:
//
//  1. same currency: 1.0
//  2. stored direct rate for the ordered pair
//  3. stored inverse: the paired inverse rate of the reversed pair
//  4. cross-rate through the base currency, one hop only
//  5. the in-memory fallback cache (direct, inverse, via USD)
//
// Cross-rate results are written back into the cache, not the durable store.
type RateResolverService struct {
	rateRepo     portsrepo.ExchangeRateReader
	cache        *RateCache
	baseCurrency string
	logger       *slog.Logger
}

// NewRateResolverService creates a resolver. The cache is injected so
// callers control its lifetime.
func NewRateResolverService(rateRepo portsrepo.ExchangeRateReader, cache *RateCache, baseCurrency string, logger *slog.Logger) *RateResolverService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RateResolverService{
		rateRepo:     rateRepo,
		cache:        cache,
		baseCurrency: strings.ToUpper(baseCurrency),
		logger:       logger,
	}
}

// Resolve returns a rate or apperrors.ErrNotFound. Money-moving callers use
// this path; a resolution failure is hard, never papered over with 1:1.
func (s *RateResolverService) Resolve(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	return s.resolve(ctx, fromCode, toCode, false)
}

// ResolveQuote is the best-effort path for read-only displays. When the
// whole fallback chain fails it substitutes 1.0 and logs the substitution.
func (s *RateResolverService) ResolveQuote(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	return s.resolve(ctx, fromCode, toCode, true)
}

// Convert applies the strictly resolved rate to an amount.
func (s *RateResolverService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, error) {
	rate, err := s.Resolve(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Zero, err
	}
	return amount.Mul(rate), nil
}

func (s *RateResolverService) resolve(ctx context.Context, fromCode, toCode string, allowDefaultFallback bool) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCode))
	to := strings.ToUpper(strings.TrimSpace(toCode))
	if from == "" || to == "" {
		return decimal.Zero, fmt.Errorf("%w: currency codes must not be empty", apperrors.ErrValidation)
	}
	if from == to {
		return decimal.NewFromInt(1), nil
	}

	if rate, ok := s.lookupStored(ctx, from, to); ok {
		return rate, nil
	}

	// Cross-rate through the base currency, bounded to one hop: each leg is
	// resolved with direct/inverse lookups only, no further chaining.
	if from != s.baseCurrency && to != s.baseCurrency {
		fromBase, okFrom := s.lookupStored(ctx, from, s.baseCurrency)
		baseTo, okTo := s.lookupStored(ctx, s.baseCurrency, to)
		if okFrom && okTo {
			cross := fromBase.Mul(baseTo)
			s.cache.Store(from, to, cross)
			return cross, nil
		}
	}

	if rate, ok := s.cache.Lookup(from, to); ok {
		return rate, nil
	}

	if allowDefaultFallback {
		s.logger.Warn("no exchange rate found, substituting best-effort default 1.0",
			slog.String("from", from), slog.String("to", to))
		return decimal.NewFromInt(1), nil
	}
	return decimal.Zero, fmt.Errorf("%w: no exchange rate for %s to %s", apperrors.ErrNotFound, from, to)
}

// lookupStored queries the durable store for a direct rate, then for the
// stored inverse of the reversed pair. A persistence failure degrades to
// "not found" for the caller but is logged distinctly: a storage outage must
// not masquerade as a missing rate.
func (s *RateResolverService) lookupStored(ctx context.Context, from, to string) (decimal.Decimal, bool) {
	direct, err := s.rateRepo.FindExchangeRate(ctx, from, to)
	if err == nil && direct != nil && direct.Active && direct.Rate.GreaterThan(decimal.Zero) {
		return direct.Rate, true
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Error("rate store lookup failed, degrading to fallback chain",
			slog.String("from", from), slog.String("to", to), slog.String("error", err.Error()))
	}

	reversed, err := s.rateRepo.FindExchangeRate(ctx, to, from)
	if err == nil && reversed != nil && reversed.Active && !reversed.InverseRate.IsZero() {
		return reversed.InverseRate, true
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.logger.Error("rate store lookup failed, degrading to fallback chain",
			slog.String("from", to), slog.String("to", from), slog.String("error", err.Error()))
	}
	return decimal.Zero, false
}
