package schedule

import (
	"testing"
	"time"

	"github.com/nazgool97/salon-bot-sub000/internal/models"
)

func TestParseHHMM(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 540, false},
		{"23:59", 1439, false},
		{"00:00", 0, false},
		{"24:00", 0, true},
		{"9:00", 0, true},
		{"09:60", 0, true},
		{"bogus", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseHHMM(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseHHMM(%q) expected error", c.in)
			}
			continue
		}
		if err != nil || got != c.want {
			t.Errorf("ParseHHMM(%q) = %d, %v; want %d, nil", c.in, got, err, c.want)
		}
	}
}

func TestResolveDay_ExceptionOverridesWeekly(t *testing.T) {
	r := NewResolver()
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "18:00"},
	}
	exceptions := []models.ScheduleException{
		{ExceptionDate: "2026-08-03", IsOff: true},
	}
	windows := r.ResolveDay(time.Monday, "2026-08-03", weekly, exceptions)
	if len(windows) != 0 {
		t.Errorf("expected closed day, got %v", windows)
	}
}

func TestResolveDay_FallsBackToWeekly(t *testing.T) {
	r := NewResolver()
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Monday), StartTime: "09:00", EndTime: "18:00"},
	}
	windows := r.ResolveDay(time.Monday, "2026-08-03", weekly, nil)
	if len(windows) != 1 || windows[0] != (Window{Start: 540, End: 1080}) {
		t.Errorf("unexpected windows: %v", windows)
	}
}

func TestResolveDay_MergesAdjacentWeeklyWindows(t *testing.T) {
	r := NewResolver()
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Tuesday), StartTime: "09:00", EndTime: "12:00"},
		{DayOfWeek: int(time.Tuesday), StartTime: "12:00", EndTime: "18:00"},
	}
	windows := r.ResolveDay(time.Tuesday, "2026-08-04", weekly, nil)
	if len(windows) != 1 || windows[0] != (Window{Start: 540, End: 1080}) {
		t.Errorf("expected merged single window, got %v", windows)
	}
}

func TestResolveDay_CollectsAllExceptionRowsForDate(t *testing.T) {
	r := NewResolver()
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Monday), StartTime: "00:00", EndTime: "23:59"},
	}
	exceptions := []models.ScheduleException{
		{ExceptionDate: "2026-08-03", StartTime: "09:00", EndTime: "12:00"},
		{ExceptionDate: "2026-08-03", StartTime: "14:00", EndTime: "18:00"},
	}
	windows := r.ResolveDay(time.Monday, "2026-08-03", weekly, exceptions)
	want := []Window{{Start: 540, End: 720}, {Start: 840, End: 1080}}
	if len(windows) != len(want) || windows[0] != want[0] || windows[1] != want[1] {
		t.Errorf("expected split exception windows %v, got %v", want, windows)
	}
}

func TestResolveDay_ExceptionOffRowClosesDespiteOtherRows(t *testing.T) {
	r := NewResolver()
	exceptions := []models.ScheduleException{
		{ExceptionDate: "2026-08-03", StartTime: "09:00", EndTime: "12:00"},
		{ExceptionDate: "2026-08-03", IsOff: true},
	}
	windows := r.ResolveDay(time.Monday, "2026-08-03", nil, exceptions)
	if len(windows) != 0 {
		t.Errorf("expected off row to close the day, got %v", windows)
	}
}

func TestResolveDay_DropsInvertedWindow(t *testing.T) {
	r := NewResolver()
	weekly := []models.WeeklyScheduleWindow{
		{DayOfWeek: int(time.Wednesday), StartTime: "18:00", EndTime: "09:00"},
	}
	windows := r.ResolveDay(time.Wednesday, "2026-08-05", weekly, nil)
	if len(windows) != 0 {
		t.Errorf("expected inverted window to be dropped, got %v", windows)
	}
}
