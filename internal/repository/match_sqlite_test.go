package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"watchpoint/internal/models"
)

func matchFixture(t *testing.T) (*MatchSQLite, int64) {
	t.Helper()
	db := newTestDB(t)
	scrims := NewScrimSQLite(db)
	recID, err := scrims.CreateRecruitment(testRecruitment(time.Now().Add(time.Hour)), testSlots())
	if err != nil {
		t.Fatal(err)
	}
	return NewMatchSQLite(db), recID
}

func testMatch(recruitmentID int64) models.Match {
	return models.Match{
		RecruitmentID: recruitmentID,
		Winner:        models.TeamA,
		MapType:       "쟁탈",
		MapName:       "일리오스",
		CreatorID:     "organizer",
		Participants: []models.MatchParticipant{
			{UserID: "p1", Side: models.TeamA, Role: models.RoleTank, Won: true},
			{UserID: "p2", Side: models.TeamB, Role: models.RoleTank, Won: false},
		},
	}
}

func TestMatchNumberAutoAssigned(t *testing.T) {
	repo, recID := matchFixture(t)

	id1, err := repo.Create(testMatch(recID))
	if err != nil {
		t.Fatal(err)
	}
	id2, err := repo.Create(testMatch(recID))
	if err != nil {
		t.Fatal(err)
	}

	m1, _ := repo.Get(id1)
	m2, _ := repo.Get(id2)
	if m1.Number != 1 || m2.Number != 2 {
		t.Errorf("numbers = %d, %d, want 1, 2", m1.Number, m2.Number)
	}

	next, err := repo.NextNumber(recID)
	if err != nil {
		t.Fatal(err)
	}
	if next != 3 {
		t.Errorf("next number = %d, want 3", next)
	}
}

func TestMatchParticipantsRoundtrip(t *testing.T) {
	repo, recID := matchFixture(t)

	id, err := repo.Create(testMatch(recID))
	if err != nil {
		t.Fatal(err)
	}
	m, err := repo.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if m.Winner != models.TeamA || m.MapName != "일리오스" {
		t.Errorf("winner=%s map=%s", m.Winner, m.MapName)
	}
	if len(m.Participants) != 2 {
		t.Fatalf("participants = %d, want 2", len(m.Participants))
	}
	for _, p := range m.Participants {
		if p.Won != (p.Side == models.TeamA) {
			t.Errorf("participant %s won=%v side=%s", p.UserID, p.Won, p.Side)
		}
	}
}

func TestMatchCancelOnce(t *testing.T) {
	repo, recID := matchFixture(t)

	id, _ := repo.Create(testMatch(recID))
	if err := repo.Cancel(id); err != nil {
		t.Fatal(err)
	}
	if err := repo.Cancel(id); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("second cancel err = %v, want sql.ErrNoRows", err)
	}

	m, _ := repo.Get(id)
	if !m.Cancelled {
		t.Error("match should be cancelled")
	}
}

func TestCountByRecruitmentExcludesCancelled(t *testing.T) {
	repo, recID := matchFixture(t)

	repo.Create(testMatch(recID))
	id2, _ := repo.Create(testMatch(recID))
	repo.Cancel(id2)

	count, err := repo.CountByRecruitment(recID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}
