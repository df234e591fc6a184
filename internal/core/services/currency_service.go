package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nvcfn/swiftgate/internal/apperrors"
	"github.com/nvcfn/swiftgate/internal/core/domain"
)

// CurrencyService is an in-process registry of supported currencies and
// platform tokens. The set is open: new codes can be registered at runtime,
// but malformed codes are always rejected.
type CurrencyService struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
}

// NewCurrencyService creates a registry pre-seeded with the platform's
// currency set.
func NewCurrencyService() *CurrencyService {
	s := &CurrencyService{currencies: make(map[string]domain.Currency)}
	now := time.Now()
	for _, c := range defaultCurrencies {
		c.AuditFields = domain.AuditFields{CreatedAt: now, CreatedBy: "system", LastUpdatedAt: now, LastUpdatedBy: "system"}
		s.currencies[c.CurrencyCode] = c
	}
	return s
}

// defaultCurrencies is the seed set: ISO majors, the African corridor, and
// the platform tokens (NVCT stablecoin, AFD1 gold-pegged unit, SFN and
// AKLUMI partner-network tokens).
var defaultCurrencies = []domain.Currency{
	{CurrencyCode: "USD", Symbol: "$", Name: "US Dollar", Precision: 2},
	{CurrencyCode: "EUR", Symbol: "€", Name: "Euro", Precision: 2},
	{CurrencyCode: "GBP", Symbol: "£", Name: "Pound Sterling", Precision: 2},
	{CurrencyCode: "JPY", Symbol: "¥", Name: "Japanese Yen", Precision: 0},
	{CurrencyCode: "CAD", Symbol: "$", Name: "Canadian Dollar", Precision: 2},
	{CurrencyCode: "AUD", Symbol: "$", Name: "Australian Dollar", Precision: 2},
	{CurrencyCode: "CNY", Symbol: "¥", Name: "Chinese Yuan", Precision: 2},
	{CurrencyCode: "INR", Symbol: "₹", Name: "Indian Rupee", Precision: 2},
	{CurrencyCode: "NGN", Symbol: "₦", Name: "Nigerian Naira", Precision: 2},
	{CurrencyCode: "ZAR", Symbol: "R", Name: "South African Rand", Precision: 2},
	{CurrencyCode: "EGP", Symbol: "E£", Name: "Egyptian Pound", Precision: 2},
	{CurrencyCode: "NVCT", Symbol: "NVCT", Name: "NVC Token", Precision: 6},
	{CurrencyCode: "AFD1", Symbol: "AFD1", Name: "American Federation Dollar", Precision: 2},
	{CurrencyCode: "SFN", Symbol: "SFN", Name: "SFN Coin", Precision: 6},
	{CurrencyCode: "AKLUMI", Symbol: "AKL", Name: "Ak Lumi", Precision: 2},
}

// GetCurrencyByCode retrieves a registered currency by its code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code := strings.ToUpper(strings.TrimSpace(currencyCode))
	if !domain.ValidCurrencyCode(code) {
		return nil, fmt.Errorf("%w: malformed currency code %q", apperrors.ErrValidation, currencyCode)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	currency, ok := s.currencies[code]
	if !ok {
		return nil, fmt.Errorf("%w: currency %q is not registered", apperrors.ErrNotFound, code)
	}
	return &currency, nil
}

// ListCurrencies retrieves all registered currencies, sorted by code.
func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	currencies := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		currencies = append(currencies, c)
	}
	sort.Slice(currencies, func(i, j int) bool { return currencies[i].CurrencyCode < currencies[j].CurrencyCode })
	return currencies, nil
}

// RegisterCurrency adds a currency to the registry.
func (s *CurrencyService) RegisterCurrency(ctx context.Context, currency domain.Currency) error {
	code := strings.ToUpper(strings.TrimSpace(currency.CurrencyCode))
	if !domain.ValidCurrencyCode(code) {
		return fmt.Errorf("%w: malformed currency code %q", apperrors.ErrValidation, currency.CurrencyCode)
	}
	currency.CurrencyCode = code

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.currencies[code]; exists {
		return fmt.Errorf("%w: currency %q", apperrors.ErrDuplicate, code)
	}
	s.currencies[code] = currency
	return nil
}
