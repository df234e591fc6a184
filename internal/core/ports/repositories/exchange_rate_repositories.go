package repositories

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data.
type ExchangeRateReader interface {
	// FindExchangeRate retrieves the most recently updated active rate for
	// the exact ordered pair. Absence is apperrors.ErrNotFound; storage
	// failures are reported distinctly and never conflated with absence.
	FindExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (*domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for exchange rate data.
type ExchangeRateWriter interface {
	// SaveExchangeRate upserts the rate for its ordered pair. The rate and
	// its stored inverse are written in one transaction.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error

	// DeactivateExchangeRate soft-deletes the rate for the ordered pair.
	DeactivateExchangeRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) error
}

// ExchangeRateRepositoryFacade combines all exchange rate repository
// interfaces for clients that need full access.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
