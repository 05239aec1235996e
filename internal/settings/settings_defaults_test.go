package settings

import "testing"

// TestDefaultConstantsMatchSpec checks that, for each key with the default
// value named in SPEC_FULL.md §4.1, a cached Store with no row for the key
// returns the default it is given. It does not check the defaults that
// callers pass.
func TestDefaultConstantsMatchSpec(t *testing.T) {
	defaults := map[string]int{
		KeyReservationHoldMinutes:        10,
		KeyReservationExpireCheckSeconds: 30,
		KeyClientCancelLockHours:         3,
		KeyClientRescheduleLockHours:     3,
		KeySlotDurationMinutes:           60,
		KeyCalendarMaxDaysAhead:          365,
		KeySameDayLeadMinutes:            0,
		KeyOnlinePaymentDiscountPercent:  5,
		KeyRemindersCheckSeconds:         60,
		KeyReminderLeadMinutes:           1440,
		KeyCleanupCheckSeconds:           900,
		KeyNoShowGraceHours:              2,
	}
	s := &Store{cache: make(map[string]cacheEntry)}
	for key, want := range defaults {
		if got := s.GetInt(nil, key, want); got != want {
			t.Errorf("default for %q = %d, want %d", key, got, want)
		}
	}
}
