// Package marketdata supplies external market prices consumed at seed time.
package marketdata

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// StaticGoldFeed serves a configured gold price in USD per ounce. The price
// is set once at startup (from configuration); deployments with a live
// price source replace this with their own GoldPriceSvc implementation.
type StaticGoldFeed struct {
	price decimal.Decimal
}

// NewStaticGoldFeed creates a feed serving the given price.
func NewStaticGoldFeed(price decimal.Decimal) *StaticGoldFeed {
	return &StaticGoldFeed{price: price}
}

// CurrentPrice returns the configured price, erroring when none is set so
// callers skip gold-derived seeding instead of pegging to zero.
func (f *StaticGoldFeed) CurrentPrice(ctx context.Context) (decimal.Decimal, error) {
	if f.price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("no gold price configured")
	}
	return f.price, nil
}
