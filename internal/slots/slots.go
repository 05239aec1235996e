// Package slots implements C3 (single-day slot calculation) and C4 (a
// month-wide availability index built from two bulk queries instead of one
// round-trip per day).
package slots

import (
	"sort"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
	"github.com/nazgool97/salon-bot-sub000/internal/schedule"
)

// Busy is an occupied interval in UTC that a candidate slot must not
// overlap.
type Busy struct {
	Start time.Time
	End   time.Time
}

// BookingToBusy converts a booking into a Busy interval if it currently
// blocks the slot, applying the active-status + live-hold rule from §4.3.
// A false second return means the booking does not block.
func BookingToBusy(b *models.Booking, now time.Time, holdMinutes int) (Busy, bool) {
	if b.IsTerminal() {
		return Busy{}, false
	}
	if b.Status == "reserved" || b.Status == "pending_payment" {
		if b.CashHoldExpiresAt != nil {
			if !b.CashHoldExpiresAt.After(now) {
				return Busy{}, false
			}
		} else if !b.CreatedAt.Add(time.Duration(holdMinutes) * time.Minute).After(now) {
			return Busy{}, false
		}
	}
	return Busy{Start: b.StartsAt, End: b.EndsAt}, true
}

// Calculator computes candidate start times for a given day.
type Calculator struct {
	resolver *schedule.Resolver
	loc      *time.Location
}

// NewCalculator builds a Calculator resolving windows in the given
// business timezone.
func NewCalculator(loc *time.Location) *Calculator {
	return &Calculator{resolver: schedule.NewResolver(), loc: loc}
}

// Params bundles the day-level calculation inputs.
type Params struct {
	Date              time.Time // local calendar date (time-of-day ignored)
	DurationMinutes   int
	Weekly            []models.WeeklyScheduleWindow
	Exceptions        []models.ScheduleException
	Busy              []Busy
	Now               time.Time
	SameDayLeadMinutes int
}

// AvailableStarts returns candidate slot start times (UTC) for one day.
// Invalid inputs (non-positive duration, nil location) yield an empty
// slice rather than an error — per §4.3, this function never raises.
func (c *Calculator) AvailableStarts(p Params) []time.Time {
	if p.DurationMinutes <= 0 || c.loc == nil {
		return nil
	}
	localDate := time.Date(p.Date.Year(), p.Date.Month(), p.Date.Day(), 0, 0, 0, 0, c.loc)
	dateISO := localDate.Format("2006-01-02")
	windows := c.resolver.ResolveDay(localDate.Weekday(), dateISO, p.Weekly, p.Exceptions)
	if len(windows) == 0 {
		return nil
	}

	var starts []time.Time
	for _, w := range windows {
		for minute := w.Start; minute+p.DurationMinutes <= w.End; minute += p.DurationMinutes {
			localStart := time.Date(localDate.Year(), localDate.Month(), localDate.Day(), 0, minute, 0, 0, c.loc)
			utcStart := localStart.UTC()
			utcEnd := utcStart.Add(time.Duration(p.DurationMinutes) * time.Minute)

			if utcStart.Before(p.Now) {
				continue
			}
			if p.SameDayLeadMinutes > 0 && sameLocalDay(p.Now, localStart, c.loc) {
				if utcStart.Before(p.Now.Add(time.Duration(p.SameDayLeadMinutes) * time.Minute)) {
					continue
				}
			}
			if overlapsAny(utcStart, utcEnd, p.Busy) {
				continue
			}
			starts = append(starts, utcStart)
		}
	}
	return starts
}

func sameLocalDay(now, localStart time.Time, loc *time.Location) bool {
	n := now.In(loc)
	return n.Year() == localStart.Year() && n.YearDay() == localStart.YearDay()
}

func overlapsAny(start, end time.Time, busy []Busy) bool {
	for _, b := range busy {
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}

// MonthIndex is the per-day availability result of an Availability scan.
type MonthIndex struct {
	// Days maps "YYYY-MM-DD" (local) to whether at least one slot is free.
	Days map[string]bool
}

// Availability implements C4: a single in-memory simulation over a month's
// worth of bookings and schedule rows, avoiding one query per day.
type Availability struct {
	calc *Calculator
}

// NewAvailability builds an Availability index calculator.
func NewAvailability(loc *time.Location) *Availability {
	return &Availability{calc: NewCalculator(loc)}
}

// AvailabilityParams bundles the month-level scan inputs.
type AvailabilityParams struct {
	Year, Month        int
	DurationMinutes    int
	Weekly             []models.WeeklyScheduleWindow
	Exceptions         []models.ScheduleException
	Bookings           []*models.Booking
	Now                time.Time
	SameDayLeadMinutes int
	MaxDaysAhead       int
	HoldMinutes        int
}

// Scan computes, for every day in the month, whether any slot is free.
func (a *Availability) Scan(p AvailabilityParams) MonthIndex {
	result := MonthIndex{Days: make(map[string]bool)}
	if p.DurationMinutes <= 0 {
		return result
	}

	loc := a.calc.loc
	firstOfMonth := time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, loc)
	lastDay := firstOfMonth.AddDate(0, 1, -1).Day()

	busyByDate := groupBusyByLocalDate(p.Bookings, loc, p.Now, p.HoldMinutes)

	horizon := p.Now.AddDate(0, 0, p.MaxDaysAhead)

	for day := 1; day <= lastDay; day++ {
		date := time.Date(p.Year, time.Month(p.Month), day, 0, 0, 0, 0, loc)
		if p.MaxDaysAhead > 0 && date.After(horizon) {
			continue
		}
		dateISO := date.Format("2006-01-02")
		starts := a.calc.AvailableStarts(Params{
			Date:               date,
			DurationMinutes:    p.DurationMinutes,
			Weekly:             p.Weekly,
			Exceptions:         p.Exceptions,
			Busy:               busyByDate[dateISO],
			Now:                p.Now,
			SameDayLeadMinutes: p.SameDayLeadMinutes,
		})
		result.Days[dateISO] = len(starts) > 0
	}
	return result
}

func groupBusyByLocalDate(bookings []*models.Booking, loc *time.Location, now time.Time, holdMinutes int) map[string][]Busy {
	out := make(map[string][]Busy)
	for _, b := range bookings {
		busy, ok := BookingToBusy(b, now, holdMinutes)
		if !ok {
			continue
		}
		key := busy.Start.In(loc).Format("2006-01-02")
		out[key] = append(out[key], busy)
		// A booking spanning past local midnight also blocks the next day.
		endKey := busy.End.In(loc).Format("2006-01-02")
		if endKey != key {
			out[endKey] = append(out[endKey], busy)
		}
	}
	for k := range out {
		sort.Slice(out[k], func(i, j int) bool { return out[k][i].Start.Before(out[k][j].Start) })
	}
	return out
}
