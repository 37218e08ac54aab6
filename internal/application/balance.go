package application

import (
	"fmt"
	"sort"

	"watchpoint/internal/models"
)

type TeamSplit struct {
	TeamA  []models.Member
	TeamB  []models.Member
	ScoreA int
	ScoreB int
}

func tierScore(t models.Tier) int {
	return t.Rank() + 1
}

// BalanceTeams splits exactly ten members into two five-member teams,
// greedily assigning from strongest to weakest onto the lighter team.
// Not optimal, but close enough for internal scrims and stable to reason
// about.
func BalanceTeams(members []models.Member) (*TeamSplit, error) {
	if len(members) != minRosterSize {
		return nil, fmt.Errorf("정확히 %d명이 필요합니다 (현재 %d명)", minRosterSize, len(members))
	}

	sorted := append([]models.Member(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return tierScore(sorted[i].Tier) > tierScore(sorted[j].Tier)
	})

	split := &TeamSplit{}
	for _, m := range sorted {
		score := tierScore(m.Tier)
		switch {
		case len(split.TeamA) >= teamSize:
			split.TeamB = append(split.TeamB, m)
			split.ScoreB += score
		case len(split.TeamB) >= teamSize:
			split.TeamA = append(split.TeamA, m)
			split.ScoreA += score
		case split.ScoreA <= split.ScoreB:
			split.TeamA = append(split.TeamA, m)
			split.ScoreA += score
		default:
			split.TeamB = append(split.TeamB, m)
			split.ScoreB += score
		}
	}
	return split, nil
}
