package pricing

import (
	"testing"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// TestQuoteOnline_HalfUpRounding is the exact property case from §8:
// original=12345, pct=5 -> final=11728, discount=617.
func TestQuoteOnline_HalfUpRounding(t *testing.T) {
	q := QuoteOnline(12345, 5, true)
	if q.FinalCents != 11728 {
		t.Errorf("FinalCents = %d, want 11728", q.FinalCents)
	}
	if q.DiscountCents != 617 {
		t.Errorf("DiscountCents = %d, want 617", q.DiscountCents)
	}
	if !q.Applied {
		t.Error("expected Applied=true for online payment with nonzero pct")
	}
}

func TestQuoteOnline_CashNeverDiscounted(t *testing.T) {
	q := QuoteOnline(12345, 5, false)
	if q.FinalCents != 12345 || q.DiscountCents != 0 || q.Applied {
		t.Errorf("cash quote must be unchanged, got %+v", q)
	}
}

func TestQuoteOnline_ZeroPercentNeverDiscounted(t *testing.T) {
	q := QuoteOnline(12345, 0, true)
	if q.FinalCents != 12345 || q.DiscountCents != 0 || q.Applied {
		t.Errorf("zero percent quote must be unchanged, got %+v", q)
	}
}

func TestQuoteOnline_PercentClamped(t *testing.T) {
	q := QuoteOnline(1000, 150, true)
	if q.FinalCents != 0 {
		t.Errorf("pct>100 should clamp to 100%% off, got final=%d", q.FinalCents)
	}
	q2 := QuoteOnline(1000, -20, true)
	if q2.Applied {
		t.Error("negative pct clamps to 0, which must not apply a discount")
	}
}

func TestAggregateLineItems_DurationFallbackChain(t *testing.T) {
	overrideMin := 45
	serviceMin := 30
	priceCents := int64(5000)

	withOverride := LineItem{
		Service:  &models.Service{DurationMin: &serviceMin, PriceCents: &priceCents},
		Override: &models.MasterService{DurationMin: &overrideMin},
	}
	withServiceOnly := LineItem{
		Service: &models.Service{DurationMin: &serviceMin, PriceCents: &priceCents},
	}
	withNeither := LineItem{
		Service: &models.Service{},
	}

	agg := AggregateLineItems([]LineItem{withOverride, withServiceOnly, withNeither}, 60)
	wantDuration := 45 + 30 + 60
	wantPrice := int64(5000 + 5000 + 0)
	if agg.DurationMinutes != wantDuration {
		t.Errorf("DurationMinutes = %d, want %d", agg.DurationMinutes, wantDuration)
	}
	if agg.PriceCents != wantPrice {
		t.Errorf("PriceCents = %d, want %d", agg.PriceCents, wantPrice)
	}
}
