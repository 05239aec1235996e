// Package schedule implements C2: resolving a master's working windows for
// a given local date from the WeeklySchedule/ScheduleException tables.
package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

// Window is one open interval of local-time-of-day minutes-since-midnight,
// half-open [Start, End).
type Window struct {
	Start int // minutes since local midnight
	End   int
}

// ParseHHMM strictly parses "HH:MM" into minutes-since-midnight. Any other
// shape (missing colon, out-of-range hour/minute, extra characters) is an
// error — per SPEC_FULL.md §4.2, malformed rows are dropped rather than
// guessed at.
func ParseHHMM(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return 0, errInvalidHHMM(s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errInvalidHHMM(s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errInvalidHHMM(s)
	}
	return h*60 + m, nil
}

type hhmmError string

func (e hhmmError) Error() string { return "schedule: invalid HH:MM value: " + string(e) }
func errInvalidHHMM(s string) error { return hhmmError(s) }

// Resolver resolves working windows from in-memory schedule/exception rows
// already loaded by the caller (C4 loads a month's worth at once; callers
// needing a single day may load just that day's rows).
type Resolver struct{}

// NewResolver builds a Resolver. Stateless today; kept as a type so callers
// can depend on an interface if a caching variant is introduced later.
func NewResolver() *Resolver { return &Resolver{} }

// ResolveDay returns the working windows for one local calendar date,
// applying C2's resolution order: exceptions for that date are
// authoritative over the weekly schedule, and a date may carry several
// exception rows (e.g. a morning+afternoon split); an off-marker row closes
// the day outright regardless of any other rows for that date. Absent any
// exception, fall back to the weekly schedule for that weekday.
func (r *Resolver) ResolveDay(weekday time.Weekday, dateISO string, weekly []models.WeeklyScheduleWindow, exceptions []models.ScheduleException) []Window {
	var dayExceptions []models.ScheduleException
	for _, ex := range exceptions {
		if ex.ExceptionDate == dateISO {
			dayExceptions = append(dayExceptions, ex)
		}
	}
	if len(dayExceptions) > 0 {
		return resolveExceptionWindows(dayExceptions)
	}
	return resolveWeeklyWindows(weekday, weekly)
}

func resolveExceptionWindows(exceptions []models.ScheduleException) []Window {
	var windows []Window
	for _, ex := range exceptions {
		if ex.IsOff {
			return nil
		}
		start, err1 := ParseHHMM(ex.StartTime)
		end, err2 := ParseHHMM(ex.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			continue
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return mergeAdjacent(windows)
}

func resolveWeeklyWindows(weekday time.Weekday, weekly []models.WeeklyScheduleWindow) []Window {
	var windows []Window
	for _, w := range weekly {
		if time.Weekday(w.DayOfWeek) != weekday || w.IsDayOff {
			continue
		}
		start, err1 := ParseHHMM(w.StartTime)
		end, err2 := ParseHHMM(w.EndTime)
		if err1 != nil || err2 != nil || start >= end {
			continue
		}
		windows = append(windows, Window{Start: start, End: end})
	}
	return mergeAdjacent(windows)
}

// mergeAdjacent sorts windows by start and merges any that touch or
// overlap, so "09:00-12:00" + "12:00-18:00" behaves as one continuous
// working day (merge-on-write adjacency, §4.2).
func mergeAdjacent(windows []Window) []Window {
	if len(windows) == 0 {
		return nil
	}
	sort.Slice(windows, func(i, j int) bool { return windows[i].Start < windows[j].Start })
	merged := []Window{windows[0]}
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.Start <= last.End {
			if w.End > last.End {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}
