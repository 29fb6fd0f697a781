package domain

import (
	"testing"
	"time"
)

func TestParcelStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to ParcelStatus
		want     bool
	}{
		{StatusPending, StatusAccepted, true},
		{StatusPending, StatusDelivered, true},
		{StatusPending, StatusDeclined, true},
		{StatusPending, StatusInTransit, false},
		{StatusAccepted, StatusInTransit, true},
		{StatusAccepted, StatusDelivered, true},
		{StatusAccepted, StatusDeclined, true},
		{StatusAccepted, StatusPending, false},
		{StatusInTransit, StatusDelivered, true},
		{StatusInTransit, StatusDeclined, true},
		{StatusInTransit, StatusAccepted, false},
		{StatusDelivered, StatusDeclined, false},
		{StatusDelivered, StatusPending, false},
		{StatusDeclined, StatusAccepted, false},
		{StatusDeclined, StatusDelivered, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.want {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestParcelStatus_TerminalStatesHaveNoExits(t *testing.T) {
	all := []ParcelStatus{StatusPending, StatusAccepted, StatusInTransit, StatusDelivered, StatusDeclined}
	for _, terminal := range []ParcelStatus{StatusDelivered, StatusDeclined} {
		if !terminal.IsTerminal() {
			t.Errorf("%s must be terminal", terminal)
		}
		for _, next := range all {
			if terminal.CanTransitionTo(next) {
				t.Errorf("terminal %s must not transition to %s", terminal, next)
			}
		}
	}
}

func TestRoleMayRequest(t *testing.T) {
	cases := []struct {
		role   Role
		target ParcelStatus
		want   bool
	}{
		{RoleStaff, StatusAccepted, true},
		{RoleStaff, StatusInTransit, true},
		{RoleStaff, StatusDeclined, true},
		{RoleStaff, StatusDelivered, false},
		{RoleClient, StatusDelivered, true},
		{RoleClient, StatusDeclined, true},
		{RoleClient, StatusAccepted, false},
		{RoleClient, StatusInTransit, false},
		{RoleAdmin, StatusAccepted, true},
		{RoleAdmin, StatusInTransit, true},
		{RoleAdmin, StatusDelivered, true},
		{RoleAdmin, StatusDeclined, true},
	}
	for _, tc := range cases {
		if got := RoleMayRequest(tc.role, tc.target); got != tc.want {
			t.Errorf("role %s -> %s: got %v, want %v", tc.role, tc.target, got, tc.want)
		}
	}
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2026, 8, 28, 17, 45, 12, 999, time.FixedZone("X", 3600))
	got := DateOnly(in)
	want := time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)
	// 17:45+01:00 is 16:45 UTC, so the date part is the 28th.
	want = time.Date(want.Year(), want.Month(), want.Day(), 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly: got %v, want %v", got, want)
	}
	if h, m, s := got.Clock(); h+m+s != 0 {
		t.Errorf("DateOnly must zero the clock, got %02d:%02d:%02d", h, m, s)
	}
}
