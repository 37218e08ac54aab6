package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"watchpoint/internal/models"
)

func createTestRecruitment(t *testing.T, repo *ScrimSQLite, deadline time.Time) (int64, []models.TimeSlot) {
	t.Helper()
	id, err := repo.CreateRecruitment(testRecruitment(deadline), testSlots())
	if err != nil {
		t.Fatalf("create recruitment: %v", err)
	}
	slots, err := repo.GetSlots(id)
	if err != nil {
		t.Fatalf("get slots: %v", err)
	}
	return id, slots
}

func TestCreateRecruitmentRoundtrip(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	deadline := time.Date(2026, 9, 9, 23, 59, 59, 0, time.UTC)

	id, slots := createTestRecruitment(t, repo, deadline)

	rec, err := repo.GetRecruitment(id)
	if err != nil {
		t.Fatal(err)
	}
	if rec.OpponentClan != "Talon" {
		t.Errorf("opponent = %q, want Talon", rec.OpponentClan)
	}
	if rec.Status != models.RecruitmentActive {
		t.Errorf("status = %s, want active", rec.Status)
	}
	if rec.TierMin != models.TierGold || rec.TierMax != models.TierDiamond {
		t.Errorf("tier range = %s~%s", rec.TierMin, rec.TierMax)
	}
	if !rec.Deadline.Equal(deadline) {
		t.Errorf("deadline = %v, want %v", rec.Deadline, deadline)
	}

	if len(slots) != 2 {
		t.Fatalf("slots = %d, want 2", len(slots))
	}
	if slots[0].Date != "2026-09-10" || slots[1].Date != "2026-09-11" {
		t.Errorf("slots out of date order: %v", slots)
	}
	for _, s := range slots {
		if s.Finalized {
			t.Error("new slot must not be finalized")
		}
	}
}

func TestGetRecruitmentMissing(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	if _, err := repo.GetRecruitment(999); err == nil {
		t.Fatal("expected error for missing recruitment")
	}
}

func TestUpdateRecruitmentStatus(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	id, _ := createTestRecruitment(t, repo, time.Now().Add(time.Hour))

	if err := repo.UpdateRecruitmentStatus(id, models.RecruitmentClosed); err != nil {
		t.Fatal(err)
	}
	rec, _ := repo.GetRecruitment(id)
	if rec.Status != models.RecruitmentClosed {
		t.Errorf("status = %s, want closed", rec.Status)
	}

	if err := repo.UpdateRecruitmentStatus(999, models.RecruitmentClosed); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("missing id err = %v, want sql.ErrNoRows", err)
	}
}

func TestCloseExpired(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	now := time.Now().UTC()

	expiredID, _ := createTestRecruitment(t, repo, now.Add(-time.Hour))
	activeID, _ := createTestRecruitment(t, repo, now.Add(time.Hour))
	cancelledID, _ := createTestRecruitment(t, repo, now.Add(-2*time.Hour))
	if err := repo.UpdateRecruitmentStatus(cancelledID, models.RecruitmentCancelled); err != nil {
		t.Fatal(err)
	}

	closed, err := repo.CloseExpired(now)
	if err != nil {
		t.Fatal(err)
	}
	if closed != 1 {
		t.Errorf("closed = %d, want 1", closed)
	}

	for _, tc := range []struct {
		id   int64
		want models.RecruitmentStatus
	}{
		{expiredID, models.RecruitmentClosed},
		{activeID, models.RecruitmentActive},
		{cancelledID, models.RecruitmentCancelled},
	} {
		rec, _ := repo.GetRecruitment(tc.id)
		if rec.Status != tc.want {
			t.Errorf("recruitment %d status = %s, want %s", tc.id, rec.Status, tc.want)
		}
	}
}

func TestFinalizeSlotIsOneWay(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	_, slots := createTestRecruitment(t, repo, time.Now().Add(time.Hour))

	if err := repo.FinalizeSlot(slots[0].ID); err != nil {
		t.Fatal(err)
	}
	slot, _ := repo.GetSlot(slots[0].ID)
	if !slot.Finalized {
		t.Fatal("slot should be finalized")
	}

	if err := repo.FinalizeSlot(slots[0].ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second finalize err = %v, want sql.ErrNoRows", err)
	}
}

func TestToggleSignup(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	id, slots := createTestRecruitment(t, repo, time.Now().Add(time.Hour))
	slotID := slots[0].ID

	added, err := repo.ToggleSignup(slotID, "u1", models.RoleTank)
	if err != nil {
		t.Fatal(err)
	}
	if !added {
		t.Error("first toggle should add")
	}

	// same user, different role is a distinct signup
	if added, _ = repo.ToggleSignup(slotID, "u1", models.RoleDPS); !added {
		t.Error("different role should add, not remove")
	}

	counts, err := repo.GetSignupCounts(id)
	if err != nil {
		t.Fatal(err)
	}
	if counts[slotID] != 2 {
		t.Errorf("count = %d, want 2", counts[slotID])
	}

	if added, _ = repo.ToggleSignup(slotID, "u1", models.RoleTank); added {
		t.Error("second toggle should remove")
	}
	counts, _ = repo.GetSignupCounts(id)
	if counts[slotID] != 1 {
		t.Errorf("count after removal = %d, want 1", counts[slotID])
	}
}

func TestSlotsWithUserRole(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	id, slots := createTestRecruitment(t, repo, time.Now().Add(time.Hour))

	repo.ToggleSignup(slots[0].ID, "u1", models.RoleTank)
	repo.ToggleSignup(slots[1].ID, "u1", models.RoleTank)
	repo.ToggleSignup(slots[0].ID, "u1", models.RoleSupport)

	got, err := repo.SlotsWithUserRole(id, "u1", models.RoleTank)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("tank slots = %v, want both slots", got)
	}
}

func TestGetParticipantsDistinct(t *testing.T) {
	repo := NewScrimSQLite(newTestDB(t))
	id, slots := createTestRecruitment(t, repo, time.Now().Add(time.Hour))

	repo.ToggleSignup(slots[0].ID, "u1", models.RoleTank)
	repo.ToggleSignup(slots[1].ID, "u1", models.RoleDPS)
	repo.ToggleSignup(slots[0].ID, "u2", models.RoleSupport)

	users, err := repo.GetParticipants(id)
	if err != nil {
		t.Fatal(err)
	}
	if len(users) != 2 {
		t.Errorf("participants = %v, want two distinct users", users)
	}
}
