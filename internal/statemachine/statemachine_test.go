package statemachine

import "testing"

func TestIsValidTransition_LegalTable(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{"", Reserved, true},
		{"", Confirmed, false},
		{Reserved, PendingPayment, true},
		{Reserved, Confirmed, true},
		{Reserved, Paid, true},
		{Reserved, Cancelled, true},
		{Reserved, Expired, true},
		{Reserved, Done, false},
		{Reserved, NoShow, false},
		{PendingPayment, Paid, true},
		{PendingPayment, Cancelled, true},
		{PendingPayment, Expired, true},
		{PendingPayment, Confirmed, false},
		{PendingPayment, Done, false},
		{Confirmed, Paid, true},
		{Confirmed, Done, true},
		{Confirmed, NoShow, true},
		{Confirmed, Cancelled, true},
		{Confirmed, Expired, false},
		{Paid, Done, true},
		{Paid, NoShow, true},
		{Paid, Cancelled, true},
		{Paid, Reserved, false},
	}
	for _, c := range cases {
		if got := IsValidTransition(c.from, c.to); got != c.want {
			t.Errorf("IsValidTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminalStatusesNeverTransitionOut(t *testing.T) {
	for _, s := range TerminalStatuses() {
		if !IsTerminal(s) {
			t.Errorf("%q expected to be terminal", s)
		}
		for _, to := range []Status{Reserved, PendingPayment, Confirmed, Paid, Cancelled, Done, NoShow, Expired} {
			if IsValidTransition(s, to) {
				t.Errorf("terminal status %q must not transition to %q", s, to)
			}
		}
	}
}

func TestSameStatusNeverValid(t *testing.T) {
	for _, s := range []Status{Reserved, PendingPayment, Confirmed, Paid, Cancelled, Done, NoShow, Expired} {
		if IsValidTransition(s, s) {
			t.Errorf("%q -> %q (self) must not be a valid transition", s, s)
		}
	}
}

func TestActiveAndRevenueSets(t *testing.T) {
	for _, s := range []Status{Reserved, PendingPayment, Confirmed, Paid} {
		if !IsActive(s) {
			t.Errorf("%q expected active", s)
		}
	}
	for _, s := range []Status{Cancelled, Done, NoShow, Expired} {
		if IsActive(s) {
			t.Errorf("%q must not be active", s)
		}
	}
	for _, s := range []Status{Paid, Confirmed, Done} {
		if !IsRevenue(s) {
			t.Errorf("%q expected revenue-bearing", s)
		}
	}
	if IsRevenue(Reserved) || IsRevenue(Cancelled) {
		t.Error("Reserved/Cancelled must not be revenue-bearing")
	}
}

func TestValid(t *testing.T) {
	if Valid("bogus") {
		t.Error("unknown status must not validate")
	}
	if !Valid(Done) {
		t.Error("Done must validate")
	}
}
