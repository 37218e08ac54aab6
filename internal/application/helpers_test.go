package application

import (
	"fmt"
	"testing"
	"time"

	"watchpoint/internal/models"
)

func TestDeriveDeadline(t *testing.T) {
	deadline, err := DeriveDeadline([]string{"2026-09-12", "2026-09-10", "2026-09-11"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := time.Date(2026, 9, 9, 23, 59, 59, 0, time.Local)
	if !deadline.Equal(want) {
		t.Errorf("deadline = %v, want %v", deadline, want)
	}
}

func TestDeriveDeadlineEmpty(t *testing.T) {
	if _, err := DeriveDeadline(nil); err == nil {
		t.Error("expected error for empty dates")
	}
}

func TestDeriveDeadlineBadFormat(t *testing.T) {
	if _, err := DeriveDeadline([]string{"12/09/2026"}); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestBroadcast(t *testing.T) {
	targets := []string{"u1", "u2", "u3", "u4"}
	delivered, failed := Broadcast(targets, func(userID string) error {
		if userID == "u2" || userID == "u4" {
			return fmt.Errorf("dm closed")
		}
		return nil
	})

	if delivered != 2 {
		t.Errorf("delivered = %d, want 2", delivered)
	}
	if len(failed) != 2 || failed[0] != "u2" || failed[1] != "u4" {
		t.Errorf("failed = %v, want [u2 u4]", failed)
	}
}

func TestBroadcastContinuesAfterFailure(t *testing.T) {
	var attempted []string
	Broadcast([]string{"a", "b", "c"}, func(userID string) error {
		attempted = append(attempted, userID)
		return fmt.Errorf("always fails")
	})
	if len(attempted) != 3 {
		t.Errorf("attempted %d sends, want 3", len(attempted))
	}
}

func TestStandardComposition(t *testing.T) {
	tests := []struct {
		name  string
		roles []models.Role
		want  bool
	}{
		{"standard", []models.Role{models.RoleTank, models.RoleDPS, models.RoleDPS, models.RoleSupport, models.RoleSupport}, true},
		{"double tank", []models.Role{models.RoleTank, models.RoleTank, models.RoleDPS, models.RoleSupport, models.RoleSupport}, false},
		{"triple dps", []models.Role{models.RoleTank, models.RoleDPS, models.RoleDPS, models.RoleDPS, models.RoleSupport}, false},
		{"empty", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StandardComposition(tt.roles); got != tt.want {
				t.Errorf("StandardComposition(%v) = %v, want %v", tt.roles, got, tt.want)
			}
		})
	}
}

func TestFormatRemaining(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)

	if got := FormatRemaining(now.Add(-time.Minute), now); got != "마감됨" {
		t.Errorf("past deadline = %q", got)
	}
	if got := FormatRemaining(now.Add(30*time.Minute), now); got != "⚠️ 30분 남음" {
		t.Errorf("under an hour = %q", got)
	}
	if got := FormatRemaining(now.Add(26*time.Hour), now); got != "1일 2시간 남음" {
		t.Errorf("over a day = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(3720); got != "1시간 2분" {
		t.Errorf("FormatDuration(3720) = %q", got)
	}
	if got := FormatDuration(540); got != "9분" {
		t.Errorf("FormatDuration(540) = %q", got)
	}
}
