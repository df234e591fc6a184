package services

import (
	"context"

	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// CurrencyReaderSvc defines read operations for the currency registry.
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a registered currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all registered currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for the currency registry.
type CurrencyWriterSvc interface {
	// RegisterCurrency adds a currency to the registry.
	RegisterCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencySvcFacade combines all currency-related service interfaces.
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
