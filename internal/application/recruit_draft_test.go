package application

import (
	"testing"
	"time"

	"watchpoint/internal/models"
)

func TestMissingFieldsConsolidated(t *testing.T) {
	draft := &RecruitDraft{}
	missing := draft.MissingFields()
	if len(missing) != 4 {
		t.Fatalf("missing = %v, want 4 entries", missing)
	}

	draft.OpponentClan = "Phantom"
	draft.SetDates([]string{"2026-09-10"})
	draft.SetTimes([]string{"21:00-23:00 (밤)"})
	draft.SetTierRange(models.TierGold, models.TierDiamond)
	if missing := draft.MissingFields(); len(missing) != 0 {
		t.Errorf("missing = %v, want none", missing)
	}
}

func TestCustomTimeSatisfiesTimeField(t *testing.T) {
	draft := &RecruitDraft{
		OpponentClan: "Phantom",
		TierMin:      models.TierGold,
		TierMax:      models.TierDiamond,
	}
	draft.SetDates([]string{"2026-09-10"})
	draft.SetCustomTime("20:30-22:30")

	if missing := draft.MissingFields(); len(missing) != 0 {
		t.Errorf("missing = %v, custom time should count", missing)
	}
}

func TestSlotCombinations(t *testing.T) {
	draft := &RecruitDraft{}
	draft.SetDates([]string{"2026-09-10", "2026-09-11"})
	draft.SetTimes([]string{"19:00-21:00", "21:00-23:00"})
	draft.SetCustomTime("23:30-01:00")

	slots := draft.SlotCombinations()
	if len(slots) != 6 {
		t.Fatalf("got %d slots, want 6 (2 dates x 3 times)", len(slots))
	}

	seen := make(map[string]struct{})
	for _, slot := range slots {
		seen[slot.Date+"|"+slot.TimeRange] = struct{}{}
	}
	if len(seen) != 6 {
		t.Errorf("slot combinations contain duplicates: %v", slots)
	}
	if _, ok := seen["2026-09-11|23:30-01:00"]; !ok {
		t.Error("custom time missing from combinations")
	}
}

func TestSetTierRangeSwapsInverted(t *testing.T) {
	draft := &RecruitDraft{}
	draft.SetTierRange(models.TierMaster, models.TierSilver)
	if draft.TierMin != models.TierSilver || draft.TierMax != models.TierMaster {
		t.Errorf("range = %s~%s, want silver~master", draft.TierMin, draft.TierMax)
	}
}

func TestSetDatesClearsExplicitDeadline(t *testing.T) {
	deadline := time.Now().Add(24 * time.Hour)
	draft := &RecruitDraft{ExplicitDeadline: &deadline}
	draft.SetDates([]string{"2026-09-10"})
	if draft.ExplicitDeadline != nil {
		t.Error("explicit deadline should be cleared when dates change")
	}
}
