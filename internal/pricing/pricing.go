// Package pricing implements C5: resolving a booking's duration/price and
// computing the online-payment discount with exact half-up rounding. Money
// math uses shopspring/decimal rather than float64 so the rounding property
// in SPEC_FULL.md §8 (12345 @ 5% -> 11728) holds bit-for-bit.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// LineItem is one service selected for a booking, paired with its master
// override (if any).
type LineItem struct {
	Service  *models.Service
	Override *models.MasterService
}

// Aggregate is the resolved total duration and price for a set of line
// items, before any discount.
type Aggregate struct {
	DurationMinutes int
	PriceCents      int64
}

// AggregateLineItems resolves each item's duration (override -> service ->
// fallback) and price (service price, 0 if unset) and sums them, per §4.5.
func AggregateLineItems(items []LineItem, fallbackDurationMinutes int) Aggregate {
	var agg Aggregate
	for _, item := range items {
		agg.DurationMinutes += models.EffectiveDurationMinutes(item.Service, item.Override, fallbackDurationMinutes)
		agg.PriceCents += models.EffectivePriceCents(item.Service)
	}
	return agg
}

// Quote is the result of applying (or not applying) the online-payment
// discount to an aggregate price.
type Quote struct {
	OriginalCents int64
	FinalCents    int64
	DiscountCents int64
	Applied       bool
}

// QuoteOnline computes the online-discounted price, rounding half up to
// the nearest minor unit. pct is clamped to [0, 100]; a cash payment or a
// zero percent leaves the price unchanged with Applied=false.
func QuoteOnline(originalCents int64, pct int, isOnline bool) Quote {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if !isOnline || pct == 0 {
		return Quote{OriginalCents: originalCents, FinalCents: originalCents, DiscountCents: 0, Applied: false}
	}

	original := decimal.NewFromInt(originalCents)
	factor := decimal.NewFromInt(int64(100 - pct)).Div(decimal.NewFromInt(100))
	final := original.Mul(factor).Round(0)
	finalCents := final.IntPart()

	return Quote{
		OriginalCents: originalCents,
		FinalCents:    finalCents,
		DiscountCents: originalCents - finalCents,
		Applied:       true,
	}
}
