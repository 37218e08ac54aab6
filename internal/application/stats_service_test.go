package application

import (
	"bytes"
	"testing"

	"watchpoint/internal/models"
)

func seedStat(t *testing.T, repo *fakeStatsRepo, userID string, wins, losses int) {
	t.Helper()
	for i := 0; i < wins; i++ {
		if err := repo.adjust("g1", userID, models.RoleDPS, true, 1); err != nil {
			t.Fatal(err)
		}
	}
	for i := 0; i < losses; i++ {
		if err := repo.adjust("g1", userID, models.RoleDPS, false, 1); err != nil {
			t.Fatal(err)
		}
	}
}

func TestLeaderboardSortByGames(t *testing.T) {
	repo := newFakeStatsRepo()
	seedStat(t, repo, "few", 2, 1)
	seedStat(t, repo, "many", 3, 5)
	seedStat(t, repo, "mid", 4, 1)

	svc := NewStatsServiceImpl(repo, nopLogger{})
	board, err := svc.Leaderboard("g1", "games")
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 3 {
		t.Fatalf("len = %d, want 3", len(board))
	}
	order := []string{"many", "mid", "few"}
	for i, want := range order {
		if board[i].UserID != want {
			t.Errorf("board[%d] = %s, want %s", i, board[i].UserID, want)
		}
	}
}

func TestLeaderboardWinRateFiltersLowGames(t *testing.T) {
	repo := newFakeStatsRepo()
	seedStat(t, repo, "lucky", 2, 0)   // 100% but only two games
	seedStat(t, repo, "steady", 6, 4)  // 60%
	seedStat(t, repo, "grinder", 5, 5) // 50%

	svc := NewStatsServiceImpl(repo, nopLogger{})
	board, err := svc.Leaderboard("g1", "winrate")
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != 2 {
		t.Fatalf("len = %d, want 2 (players below %d games excluded)", len(board), leaderboardMinGames)
	}
	if board[0].UserID != "steady" || board[1].UserID != "grinder" {
		t.Errorf("order = [%s %s], want [steady grinder]", board[0].UserID, board[1].UserID)
	}
}

func TestLeaderboardCapsAtLimit(t *testing.T) {
	repo := newFakeStatsRepo()
	for i := 0; i < leaderboardLimit+3; i++ {
		seedStat(t, repo, "u"+string(rune('a'+i)), i+1, 0)
	}

	svc := NewStatsServiceImpl(repo, nopLogger{})
	board, err := svc.Leaderboard("g1", "games")
	if err != nil {
		t.Fatal(err)
	}
	if len(board) != leaderboardLimit {
		t.Errorf("len = %d, want %d", len(board), leaderboardLimit)
	}
}

func TestWinRate(t *testing.T) {
	if got := winRate(0, 0); got != 0 {
		t.Errorf("winRate(0,0) = %f, want 0", got)
	}
	if got := winRate(3, 4); got != 75 {
		t.Errorf("winRate(3,4) = %f, want 75", got)
	}
}

func TestExcelReportProducesWorkbook(t *testing.T) {
	repo := newFakeStatsRepo()
	seedStat(t, repo, "u1", 3, 2)

	svc := NewStatsServiceImpl(repo, nopLogger{})
	data, err := svc.ExcelReport("g1")
	if err != nil {
		t.Fatal(err)
	}
	// xlsx files are zip archives
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Error("report is not a valid xlsx archive")
	}
}
