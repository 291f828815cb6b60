package appointment

import (
	"testing"

	"github.com/bookwellhq/booking-scheduler/internal/httperr"
)

func TestConflictStatuses(t *testing.T) {
	statuses := ConflictStatuses()

	occupies := map[string]bool{}
	for _, s := range statuses {
		occupies[s] = true
	}

	for _, s := range []string{"pending", "confirmed", "completed"} {
		if !occupies[s] {
			t.Errorf("%s should occupy the staff member's time", s)
		}
	}
	for _, s := range []string{"cancelled", "no_show"} {
		if occupies[s] {
			t.Errorf("%s should release its slot", s)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if InitialStatus(true) != StatusConfirmed {
		t.Error("auto-confirm business should start confirmed")
	}
	if InitialStatus(false) != StatusPending {
		t.Error("manual-confirm business should start pending")
	}
}

func TestTransitionValidations(t *testing.T) {
	tests := []struct {
		name    string
		check   func(Status) error
		from    Status
		allowed bool
	}{
		{"confirm from pending", CanConfirm, StatusPending, true},
		{"confirm from confirmed", CanConfirm, StatusConfirmed, false},
		{"confirm from cancelled", CanConfirm, StatusCancelled, false},
		{"complete from pending", CanComplete, StatusPending, true},
		{"complete from confirmed", CanComplete, StatusConfirmed, true},
		{"complete from completed", CanComplete, StatusCompleted, false},
		{"cancel from pending", CanCancel, StatusPending, true},
		{"cancel from confirmed", CanCancel, StatusConfirmed, true},
		{"cancel from cancelled", CanCancel, StatusCancelled, false},
		{"cancel from no_show", CanCancel, StatusNoShow, false},
		{"no-show from confirmed", CanMarkNoShow, StatusConfirmed, true},
		{"no-show from completed", CanMarkNoShow, StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.from)
			if tt.allowed && err != nil {
				t.Errorf("expected transition allowed, got %v", err)
			}
			if !tt.allowed && !httperr.IsBusiness(err, "invalid_state") {
				t.Errorf("expected invalid_state, got %v", err)
			}
		})
	}
}
