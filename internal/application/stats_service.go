package application

import (
	"fmt"
	"sort"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"

	"github.com/xuri/excelize/v2"
)

type StatsServiceImpl struct {
	repo   repository.Stats
	logger Logger
}

func NewStatsServiceImpl(repo repository.Stats, logger Logger) *StatsServiceImpl {
	return &StatsServiceImpl{repo: repo, logger: logger}
}

func (s *StatsServiceImpl) Profile(guildID, userID string) (*models.UserStatistic, error) {
	return s.repo.Get(guildID, userID)
}

func winRate(wins, games int) float64 {
	if games == 0 {
		return 0.0
	}
	return (float64(wins) / float64(games)) * 100
}

// Leaderboard returns the top players. "winrate" requires a minimum number
// of games so a single lucky match does not top the board; any other sort
// key orders by games played.
func (s *StatsServiceImpl) Leaderboard(guildID, sortBy string) ([]models.UserStatistic, error) {
	stats, err := s.repo.GetAll(guildID)
	if err != nil {
		return nil, err
	}

	if sortBy == "winrate" {
		filtered := stats[:0]
		for _, st := range stats {
			if st.TotalGames >= leaderboardMinGames {
				filtered = append(filtered, st)
			}
		}
		stats = filtered
		sort.Slice(stats, func(i, j int) bool {
			wi := winRate(stats[i].TotalWins, stats[i].TotalGames)
			wj := winRate(stats[j].TotalWins, stats[j].TotalGames)
			if wi != wj {
				return wi > wj
			}
			return stats[i].TotalGames > stats[j].TotalGames
		})
	} else {
		sort.Slice(stats, func(i, j int) bool {
			if stats[i].TotalGames != stats[j].TotalGames {
				return stats[i].TotalGames > stats[j].TotalGames
			}
			return stats[i].TotalWins > stats[j].TotalWins
		})
	}

	if len(stats) > leaderboardLimit {
		stats = stats[:leaderboardLimit]
	}
	return stats, nil
}

func (s *StatsServiceImpl) ExcelReport(guildID string) ([]byte, error) {
	stats, err := s.repo.GetAll(guildID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheet := "전적"
	f.NewSheet(sheet)
	f.DeleteSheet("Sheet1")

	headers := []string{"유저 ID", "전체", "승", "승률 %", "탱커", "탱커 승", "딜러", "딜러 승", "힐러", "힐러 승"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, st := range stats {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), st.UserID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), st.TotalGames)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), st.TotalWins)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), fmt.Sprintf("%.1f", winRate(st.TotalWins, st.TotalGames)))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), st.TankGames)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), st.TankWins)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), st.DPSGames)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), st.DPSWins)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), st.SupportGames)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), st.SupportWins)
		row++
	}

	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "J", 10)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
