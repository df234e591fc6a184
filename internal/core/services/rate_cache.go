package services

import (
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// RateCache is the in-memory fallback table of well-known USD-denominated
// rates. It is an injected object with its own lock, not a package global,
// so tests and multi-tenant deployments can isolate instances. Staleness is
// acceptable here; corruption is not.
type RateCache struct {
	mu    sync.RWMutex
	rates map[string]decimal.Decimal
}

func cacheKey(from, to string) string {
	return strings.ToUpper(from) + "_" + strings.ToUpper(to)
}

// NewRateCache creates an empty cache.
func NewRateCache() *RateCache {
	return &RateCache{rates: make(map[string]decimal.Decimal)}
}

// NewSeededRateCache creates a cache pre-populated with the conventional
// static rates: fiat majors, the African corridor and the platform tokens.
func NewSeededRateCache(baseCurrency string) *RateCache {
	c := NewRateCache()
	seed := map[string]string{
		"USD_EUR": "0.92", "EUR_USD": "1.09",
		"USD_GBP": "0.78", "GBP_USD": "1.28",
		"USD_JPY": "154.50", "JPY_USD": "0.0065",
		"USD_CAD": "1.36", "CAD_USD": "0.73",
		"USD_AUD": "1.51", "AUD_USD": "0.66",
		"USD_CNY": "7.23", "CNY_USD": "0.14",
		"USD_INR": "83.10", "INR_USD": "0.012",
		"USD_NGN": "1385.0", "NGN_USD": "0.00072",
		"USD_ZAR": "18.40", "ZAR_USD": "0.054",
		"USD_EGP": "47.15", "EGP_USD": "0.021",
		"AFD1_USD": "339.40",
		"AKLUMI_USD": "100.0", "USD_AKLUMI": "0.01",
	}
	for key, value := range seed {
		c.rates[key] = decimal.RequireFromString(value)
	}
	base := strings.ToUpper(baseCurrency)
	if base != "" && base != "USD" {
		one := decimal.NewFromInt(1)
		c.rates[cacheKey(base, "USD")] = one
		c.rates[cacheKey("USD", base)] = one
		c.rates[cacheKey("SFN", base)] = one
		c.rates[cacheKey(base, "SFN")] = one
	}
	return c
}

// Lookup finds a cached rate: direct, then inverse, then the two-leg product
// through USD.
func (c *RateCache) Lookup(from, to string) (decimal.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if rate, ok := c.rates[cacheKey(from, to)]; ok {
		return rate, true
	}
	if inverse, ok := c.rates[cacheKey(to, from)]; ok && !inverse.IsZero() {
		return decimal.NewFromInt(1).Div(inverse), true
	}
	fromUSD, okFrom := c.rates[cacheKey(from, "USD")]
	usdTo, okTo := c.rates[cacheKey("USD", to)]
	if okFrom && okTo {
		return fromUSD.Mul(usdTo), true
	}
	return decimal.Zero, false
}

// Store records a rate for the ordered pair, overwriting any previous value.
func (c *RateCache) Store(from, to string, rate decimal.Decimal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rates[cacheKey(from, to)] = rate
}
