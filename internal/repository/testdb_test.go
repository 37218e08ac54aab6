package repository

import (
	"database/sql"
	"testing"
	"time"

	"watchpoint/internal/models"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := RunMigrations(db); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return db
}

func testRecruitment(deadline time.Time) models.Recruitment {
	return models.Recruitment{
		GuildID:      "g1",
		Title:        "vs Talon",
		OpponentClan: "Talon",
		TierMin:      models.TierGold,
		TierMax:      models.TierDiamond,
		Description:  "내전 스크림",
		Deadline:     deadline,
		CreatorID:    "organizer",
	}
}

func testSlots() []models.TimeSlot {
	return []models.TimeSlot{
		{Date: "2026-09-10", TimeRange: "20:00~22:00"},
		{Date: "2026-09-11", TimeRange: "21:00~23:00"},
	}
}
