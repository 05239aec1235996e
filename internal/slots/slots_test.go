package slots

import (
	"testing"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
	"github.com/nazgool97/salon-bot-sub000/internal/statemachine"
)

func mustLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("UTC")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

// TestNinetyMinuteServiceOnThreeHourWindow matches the §8 boundary case:
// a 90-minute service on a 09:00-12:00 window yields starts {09:00, 10:30}.
func TestNinetyMinuteServiceOnThreeHourWindow(t *testing.T) {
	loc := mustLoc(t)
	calc := NewCalculator(loc)
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "12:00"},
	}
	date := time.Date(2026, 8, 3, 0, 0, 0, 0, loc) // a Monday
	now := date.Add(-24 * time.Hour)

	starts := calc.AvailableStarts(Params{
		Date:            date,
		DurationMinutes: 90,
		Weekly:          weekly,
		Now:             now,
	})

	want := []string{"09:00", "10:30"}
	if len(starts) != len(want) {
		t.Fatalf("got %d starts, want %d: %v", len(starts), len(want), starts)
	}
	for i, w := range want {
		if got := starts[i].In(loc).Format("15:04"); got != w {
			t.Errorf("start[%d] = %s, want %s", i, got, w)
		}
	}
}

// TestSixtyMinuteServiceSkipsExistingBooking matches the §8 boundary case:
// a 60-minute service on 09:00-12:00 with an existing CONFIRMED 10:00-11:00
// booking yields starts {09:00, 11:00}.
func TestSixtyMinuteServiceSkipsExistingBooking(t *testing.T) {
	loc := mustLoc(t)
	calc := NewCalculator(loc)
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "12:00"},
	}
	date := time.Date(2026, 8, 3, 0, 0, 0, 0, loc)
	now := date.Add(-24 * time.Hour)

	busy := []Busy{
		{Start: time.Date(2026, 8, 3, 10, 0, 0, 0, loc), End: time.Date(2026, 8, 3, 11, 0, 0, 0, loc)},
	}

	starts := calc.AvailableStarts(Params{
		Date:            date,
		DurationMinutes: 60,
		Weekly:          weekly,
		Busy:            busy,
		Now:             now,
	})

	want := []string{"09:00", "11:00"}
	if len(starts) != len(want) {
		t.Fatalf("got %d starts, want %d: %v", len(starts), len(want), starts)
	}
	for i, w := range want {
		if got := starts[i].In(loc).Format("15:04"); got != w {
			t.Errorf("start[%d] = %s, want %s", i, got, w)
		}
	}
}

// TestExpiredHoldDoesNotBlock verifies a RESERVED booking whose cash hold
// has already expired no longer occupies its slot.
func TestExpiredHoldDoesNotBlock(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	b := &models.Booking{
		Status:            statemachine.Reserved,
		StartsAt:          now.Add(time.Hour),
		EndsAt:            now.Add(2 * time.Hour),
		CashHoldExpiresAt: &expired,
	}
	if _, ok := BookingToBusy(b, now, 10); ok {
		t.Error("expired hold must not block")
	}
}

// TestLiveHoldBlocks verifies a RESERVED booking with a still-live hold
// does occupy its slot.
func TestLiveHoldBlocks(t *testing.T) {
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, time.UTC)
	future := now.Add(time.Minute)
	b := &models.Booking{
		Status:            statemachine.Reserved,
		StartsAt:          now.Add(time.Hour),
		EndsAt:            now.Add(2 * time.Hour),
		CashHoldExpiresAt: &future,
	}
	if _, ok := BookingToBusy(b, now, 10); !ok {
		t.Error("live hold must block")
	}
}

// TestInvalidDurationYieldsEmptyNotPanic covers the "never raises" rule.
func TestInvalidDurationYieldsEmptyNotPanic(t *testing.T) {
	calc := NewCalculator(mustLoc(t))
	starts := calc.AvailableStarts(Params{
		Date:            time.Now(),
		DurationMinutes: 0,
	})
	if starts != nil {
		t.Errorf("expected nil slice for invalid duration, got %v", starts)
	}
}

// TestSameDayLeadBoundary covers a same_day_lead_minutes=30 boundary: a
// slot starting now is excluded, one exactly 30 minutes out is included.
func TestSameDayLeadBoundary(t *testing.T) {
	loc := mustLoc(t)
	calc := NewCalculator(loc)
	now := time.Date(2026, 8, 3, 9, 0, 0, 0, loc)
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(now.Weekday()), StartTime: "09:00", EndTime: "10:00"},
	}
	// Correct the DayOfWeek field type (int) usage:
	weekly[0].DayOfWeek = int(now.Weekday())

	starts := calc.AvailableStarts(Params{
		Date:               now,
		DurationMinutes:    30,
		Weekly:             weekly,
		Now:                now,
		SameDayLeadMinutes: 30,
	})
	// Window is 09:00-10:00 with 30-minute steps: candidates 09:00, 09:30.
	// now=09:00, lead=30min => earliest allowed start is 09:30.
	if len(starts) != 1 || starts[0].In(loc).Format("15:04") != "09:30" {
		t.Errorf("unexpected starts: %v", starts)
	}
}
