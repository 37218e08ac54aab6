package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"watchpoint/internal/models"
)

func statsFixture(t *testing.T) (*StatsSQLite, *MatchSQLite, int64) {
	t.Helper()
	db := newTestDB(t)
	scrims := NewScrimSQLite(db)
	recID, err := scrims.CreateRecruitment(testRecruitment(time.Now().Add(time.Hour)), testSlots())
	if err != nil {
		t.Fatal(err)
	}
	return NewStatsSQLite(db), NewMatchSQLite(db), recID
}

func TestStatsApplyAndRevertMatch(t *testing.T) {
	stats, matches, recID := statsFixture(t)

	matchID, err := matches.Create(testMatch(recID))
	if err != nil {
		t.Fatal(err)
	}
	participants := []models.MatchParticipant{
		{UserID: "u1", Side: models.TeamA, Role: models.RoleTank, Won: true},
		{UserID: "u1", Side: models.TeamA, Role: models.RoleDPS, Won: false},
	}

	if err := stats.ApplyMatch("g1", matchID, participants); err != nil {
		t.Fatal(err)
	}

	st, err := stats.Get("g1", "u1")
	if err != nil {
		t.Fatal(err)
	}
	if st.TotalGames != 2 || st.TotalWins != 1 {
		t.Errorf("totals = %d/%d, want 2/1", st.TotalGames, st.TotalWins)
	}
	if st.TankGames != 1 || st.TankWins != 1 {
		t.Errorf("tank = %d/%d, want 1/1", st.TankGames, st.TankWins)
	}
	if st.DPSGames != 1 || st.DPSWins != 0 {
		t.Errorf("dps = %d/%d, want 1/0", st.DPSGames, st.DPSWins)
	}
	m, _ := matches.Get(matchID)
	if !m.StatsApplied {
		t.Error("apply must set the stats applied flag")
	}

	if err := stats.RevertMatch("g1", matchID, participants); err != nil {
		t.Fatal(err)
	}
	st, _ = stats.Get("g1", "u1")
	if st.TotalGames != 0 || st.TotalWins != 0 || st.TankGames != 0 || st.DPSGames != 0 {
		t.Errorf("after revert: %+v", st)
	}
	m, _ = matches.Get(matchID)
	if m.StatsApplied {
		t.Error("revert must clear the stats applied flag")
	}
}

func TestStatsApplyMatchTwiceFails(t *testing.T) {
	stats, matches, recID := statsFixture(t)

	matchID, _ := matches.Create(testMatch(recID))
	participants := []models.MatchParticipant{
		{UserID: "u1", Side: models.TeamA, Role: models.RoleTank, Won: true},
	}

	if err := stats.ApplyMatch("g1", matchID, participants); err != nil {
		t.Fatal(err)
	}
	if err := stats.ApplyMatch("g1", matchID, participants); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("second apply err = %v, want sql.ErrNoRows", err)
	}

	st, _ := stats.Get("g1", "u1")
	if st.TotalGames != 1 {
		t.Errorf("total games = %d after rejected apply, want 1", st.TotalGames)
	}
}

func TestStatsApplyMatchMissingRollsBack(t *testing.T) {
	stats, _, _ := statsFixture(t)

	participants := []models.MatchParticipant{
		{UserID: "u1", Side: models.TeamA, Role: models.RoleSupport, Won: true},
	}
	if err := stats.ApplyMatch("g1", 999, participants); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}

	st, _ := stats.Get("g1", "u1")
	if st.TotalGames != 0 {
		t.Errorf("total games = %d, credits must roll back with the match update", st.TotalGames)
	}
}

func TestStatsFlexHitsTotalsOnly(t *testing.T) {
	stats, matches, recID := statsFixture(t)

	matchID, _ := matches.Create(testMatch(recID))
	err := stats.ApplyMatch("g1", matchID, []models.MatchParticipant{
		{UserID: "u1", Side: models.TeamA, Role: models.RoleFlex, Won: true},
	})
	if err != nil {
		t.Fatal(err)
	}

	st, _ := stats.Get("g1", "u1")
	if st.TotalGames != 1 || st.TotalWins != 1 {
		t.Errorf("totals = %d/%d, want 1/1", st.TotalGames, st.TotalWins)
	}
	if st.TankGames+st.DPSGames+st.SupportGames != 0 {
		t.Error("flex must not touch role buckets")
	}
}

func TestStatsGetMissingReturnsZeroRow(t *testing.T) {
	stats, _, _ := statsFixture(t)

	st, err := stats.Get("g1", "nobody")
	if err != nil {
		t.Fatal(err)
	}
	if st.UserID != "nobody" || st.TotalGames != 0 {
		t.Errorf("zero row = %+v", st)
	}
}

func TestStatsGetAllOrdering(t *testing.T) {
	stats, matches, recID := statsFixture(t)

	id1, _ := matches.Create(testMatch(recID))
	id2, _ := matches.Create(testMatch(recID))
	if err := stats.ApplyMatch("g1", id1, []models.MatchParticipant{
		{UserID: "low", Side: models.TeamB, Role: models.RoleTank, Won: false},
		{UserID: "high", Side: models.TeamA, Role: models.RoleSupport, Won: true},
	}); err != nil {
		t.Fatal(err)
	}
	if err := stats.ApplyMatch("g1", id2, []models.MatchParticipant{
		{UserID: "high", Side: models.TeamA, Role: models.RoleSupport, Won: true},
	}); err != nil {
		t.Fatal(err)
	}

	all, err := stats.GetAll("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}
	if all[0].UserID != "high" {
		t.Errorf("first = %s, want high (most games)", all[0].UserID)
	}
}
