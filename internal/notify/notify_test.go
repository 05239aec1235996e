package notify

import "testing"

func TestRender_KnownEventUsesTemplate(t *testing.T) {
	msg := Render(EventPaid, 42)
	want := "Payment received for booking #42. See you soon!"
	if msg != want {
		t.Errorf("Render() = %q, want %q", msg, want)
	}
}

func TestRender_UnknownEventFallsBack(t *testing.T) {
	msg := Render(Event("something_new"), 7)
	if msg != "Update on booking #7." {
		t.Errorf("unexpected fallback message: %q", msg)
	}
}

func TestDedupe(t *testing.T) {
	got := dedupe([]int64{1, 2, 1, 0, 3, 2})
	want := []int64{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("dedupe() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
