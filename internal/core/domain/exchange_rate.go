package domain

import (
	"github.com/shopspring/decimal"
)

// ExchangeRate stores the conversion rate between two currencies for an
// ordered pair. The inverse rate is recomputed and stored together with the
// rate on every update, so inverse lookups never divide stale data.
// Rates are deactivated rather than deleted.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`
	InverseRate      decimal.Decimal `json:"inverseRate"` // == 1/Rate whenever Rate > 0
	Source           string          `json:"source"`      // where the quote came from
	Active           bool            `json:"active"`
	AuditFields
}
