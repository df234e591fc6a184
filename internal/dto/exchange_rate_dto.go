package dto

import (
	"time"

	"github.com/nvcfn/swiftgate/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for upserting a rate quote.
type CreateExchangeRateRequest struct {
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currency_code"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currency_code"`
	Rate             decimal.Decimal `json:"rate" binding:"required"`
	Source           string          `json:"source"`
}

// ExchangeRateResponse defines API responses containing a stored rate.
type ExchangeRateResponse struct {
	ExchangeRateID   string          `json:"exchangeRateID"`
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	InverseRate      decimal.Decimal `json:"inverseRate"`
	Source           string          `json:"source"`
	Active           bool            `json:"active"`
	LastUpdatedAt    time.Time       `json:"lastUpdatedAt"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to its response DTO.
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:   rate.ExchangeRateID,
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		InverseRate:      rate.InverseRate,
		Source:           rate.Source,
		Active:           rate.Active,
		LastUpdatedAt:    rate.LastUpdatedAt,
	}
}

// QuoteResponse is the resolver's answer for a currency pair. BestEffort is
// true when the rate came from the quote path, which may substitute a
// conservative default.
type QuoteResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	BestEffort       bool            `json:"bestEffort"`
}

// ConvertRequest asks for an amount conversion between two currencies.
type ConvertRequest struct {
	Amount           decimal.Decimal `json:"amount" binding:"required"`
	FromCurrencyCode string          `json:"fromCurrencyCode" binding:"required,currency_code"`
	ToCurrencyCode   string          `json:"toCurrencyCode" binding:"required,currency_code"`
}

// ConvertResponse carries a converted amount and the rate used.
type ConvertResponse struct {
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Amount           decimal.Decimal `json:"amount"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	Rate             decimal.Decimal `json:"rate"`
}
