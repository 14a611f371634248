package domain

import "testing"

func TestStatusStep(t *testing.T) {
	cases := []struct {
		status Status
		want   int
	}{
		{StatusReceived, 0},
		{StatusPreparing, 1},
		{StatusShipped, 2},
		{StatusDelivered, 3},
		{Status("Lost In Transit"), 0},
		{Status(""), 0},
	}

	for _, tc := range cases {
		if got := tc.status.Step(); got != tc.want {
			t.Errorf("Step(%q) = %d, want %d", tc.status, got, tc.want)
		}
	}
}

func TestStatusKnown(t *testing.T) {
	if !StatusShipped.Known() {
		t.Fatal("Shipped must be known")
	}
	if Status("Teleported").Known() {
		t.Fatal("made-up statuses must not be known")
	}
}

func TestStepsMatchScale(t *testing.T) {
	steps := Steps()
	if len(steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(steps))
	}
	for i, s := range steps {
		if s.Step() != i {
			t.Errorf("step %d maps to %d", i, s.Step())
		}
	}
}
