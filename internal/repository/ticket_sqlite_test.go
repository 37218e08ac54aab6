package repository

import (
	"testing"

	"watchpoint/internal/models"
)

func TestTicketLifecycle(t *testing.T) {
	repo := NewTicketSQLite(newTestDB(t))

	_, err := repo.Create(models.Ticket{
		Ref:     "a1b2c3d4",
		GuildID: "g1",
		UserID:  "u1",
		Title:   "내전 일정 문의",
		Body:    "다음주 내전 일정이 궁금합니다",
	})
	if err != nil {
		t.Fatal(err)
	}

	ticket, err := repo.GetByRef("a1b2c3d4")
	if err != nil {
		t.Fatal(err)
	}
	if ticket.Status != models.TicketOpen {
		t.Errorf("status = %s, want open", ticket.Status)
	}
	if ticket.Answer != "" {
		t.Errorf("answer = %q, want empty", ticket.Answer)
	}

	if err := repo.SetAnswer("a1b2c3d4", "다음주 토요일 저녁입니다"); err != nil {
		t.Fatal(err)
	}
	ticket, _ = repo.GetByRef("a1b2c3d4")
	if ticket.Status != models.TicketAnswered {
		t.Errorf("status = %s, want answered", ticket.Status)
	}
	if ticket.Answer == "" {
		t.Error("answer not persisted")
	}

	if err := repo.SetStatus("a1b2c3d4", models.TicketClosed); err != nil {
		t.Fatal(err)
	}
	ticket, _ = repo.GetByRef("a1b2c3d4")
	if ticket.Status != models.TicketClosed {
		t.Errorf("status = %s, want closed", ticket.Status)
	}
}

func TestTicketListOpenExcludesClosed(t *testing.T) {
	repo := NewTicketSQLite(newTestDB(t))

	for _, ref := range []string{"ref-1", "ref-2", "ref-3"} {
		if _, err := repo.Create(models.Ticket{Ref: ref, GuildID: "g1", UserID: "u1", Title: ref}); err != nil {
			t.Fatal(err)
		}
	}
	repo.SetAnswer("ref-2", "답변")
	repo.SetStatus("ref-3", models.TicketClosed)

	open, err := repo.ListOpen("g1")
	if err != nil {
		t.Fatal(err)
	}
	if len(open) != 2 {
		t.Fatalf("open = %d, want 2 (answered stays listed, closed does not)", len(open))
	}
}

func TestTicketGetByRefMissing(t *testing.T) {
	repo := NewTicketSQLite(newTestDB(t))
	if _, err := repo.GetByRef("nope"); err == nil {
		t.Fatal("expected error for missing ref")
	}
}
