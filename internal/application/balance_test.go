package application

import (
	"testing"

	"watchpoint/internal/models"
)

func balanceMember(userID string, tier models.Tier) models.Member {
	return models.Member{GuildID: "g1", UserID: userID, BattleTag: userID + "#1234", Tier: tier}
}

func TestBalanceTeamsRequiresExactlyTen(t *testing.T) {
	members := []models.Member{
		balanceMember("u1", models.TierGold),
		balanceMember("u2", models.TierGold),
	}
	if _, err := BalanceTeams(members); err == nil {
		t.Fatal("expected error for fewer than ten members")
	}
}

func TestBalanceTeamsSplitsFiveAndFive(t *testing.T) {
	tiers := []models.Tier{
		models.TierGrandmaster, models.TierMaster, models.TierDiamond,
		models.TierDiamond, models.TierPlatinum, models.TierPlatinum,
		models.TierGold, models.TierGold, models.TierSilver, models.TierBronze,
	}
	members := make([]models.Member, 0, len(tiers))
	for i, tier := range tiers {
		members = append(members, balanceMember("u"+string(rune('a'+i)), tier))
	}

	split, err := BalanceTeams(members)
	if err != nil {
		t.Fatal(err)
	}
	if len(split.TeamA) != 5 || len(split.TeamB) != 5 {
		t.Fatalf("team sizes = %d/%d, want 5/5", len(split.TeamA), len(split.TeamB))
	}

	diff := split.ScoreA - split.ScoreB
	if diff < 0 {
		diff = -diff
	}
	if diff > 2 {
		t.Errorf("score gap = %d (A=%d B=%d), want near-even split", diff, split.ScoreA, split.ScoreB)
	}

	seen := make(map[string]bool)
	for _, m := range append(append([]models.Member(nil), split.TeamA...), split.TeamB...) {
		if seen[m.UserID] {
			t.Errorf("member %s assigned twice", m.UserID)
		}
		seen[m.UserID] = true
	}
	if len(seen) != 10 {
		t.Errorf("assigned %d distinct members, want 10", len(seen))
	}
}

func TestBalanceTeamsEqualTiers(t *testing.T) {
	members := make([]models.Member, 0, 10)
	for i := 0; i < 10; i++ {
		members = append(members, balanceMember("u"+string(rune('a'+i)), models.TierGold))
	}

	split, err := BalanceTeams(members)
	if err != nil {
		t.Fatal(err)
	}
	if split.ScoreA != split.ScoreB {
		t.Errorf("scores %d/%d, want equal for identical tiers", split.ScoreA, split.ScoreB)
	}
}

func TestTierScoreOrdering(t *testing.T) {
	if tierScore(models.TierGrandmaster) <= tierScore(models.TierBronze) {
		t.Error("grandmaster must score above bronze")
	}
	order := []models.Tier{
		models.TierBronze, models.TierSilver, models.TierGold, models.TierPlatinum,
		models.TierDiamond, models.TierMaster, models.TierGrandmaster,
	}
	for i := 1; i < len(order); i++ {
		if tierScore(order[i]) <= tierScore(order[i-1]) {
			t.Errorf("tierScore(%s) must exceed tierScore(%s)", order[i], order[i-1])
		}
	}
}
