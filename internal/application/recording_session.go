package application

import (
	"fmt"
	"sync"
	"time"

	"watchpoint/internal/models"
)

type RecordingStep string

const (
	StepRosterConfirm   RecordingStep = "roster_confirm"
	StepTeamASelection  RecordingStep = "team_a_selection"
	StepTeamBSelection  RecordingStep = "team_b_selection"
	StepWinnerSelection RecordingStep = "winner_selection"
	StepWinnerConfirm   RecordingStep = "winner_confirm"
	StepPositionTeamA   RecordingStep = "position_team_a"
	StepPositionTeamB   RecordingStep = "position_team_b"
	StepFinalReview     RecordingStep = "final_review"
	StepMapType         RecordingStep = "map_type"
	StepMapPick         RecordingStep = "map_pick"
	StepDashboard       RecordingStep = "dashboard"
)

// RecordingSession is the in-memory draft state of one guild's match
// recording conversation. All transitions go through the methods below;
// each validates the current step under the session mutex, so an event
// from a stale widget or a rapid double-click cannot push the session
// into an illegal state.
type RecordingSession struct {
	mu sync.Mutex

	ID            string
	GuildID       string
	ChannelID     string
	RecruitmentID int64
	CreatorID     string
	Step          RecordingStep

	Roster []string
	TeamA  []string
	TeamB  []string
	Winner models.TeamSide
	RolesA []models.Role
	RolesB []models.Role

	MapType string
	MapName string

	NextNumber   int
	SavedMatches []int64

	// set while a side's roles are being redone from the final review, so
	// confirming that side returns to review instead of advancing.
	returnToReview bool

	CreatedAt time.Time
}

func NewRecordingSession(id, guildID, channelID string, recruitmentID int64, creatorID string, roster []string, nextNumber int) *RecordingSession {
	return &RecordingSession{
		ID:            id,
		GuildID:       guildID,
		ChannelID:     channelID,
		RecruitmentID: recruitmentID,
		CreatorID:     creatorID,
		Step:          StepRosterConfirm,
		Roster:        append([]string(nil), roster...),
		NextNumber:    nextNumber,
		CreatedAt:     time.Now(),
	}
}

func (s *RecordingSession) requireStep(steps ...RecordingStep) error {
	for _, step := range steps {
		if s.Step == step {
			return nil
		}
	}
	return fmt.Errorf("지금은 할 수 없는 동작입니다 (현재 단계: %s)", s.Step)
}

func (s *RecordingSession) AddRosterMember(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepRosterConfirm); err != nil {
		return err
	}
	for _, id := range s.Roster {
		if id == userID {
			return fmt.Errorf("이미 명단에 있는 멤버입니다")
		}
	}
	s.Roster = append(s.Roster, userID)
	return nil
}

func (s *RecordingSession) RemoveRosterMember(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepRosterConfirm); err != nil {
		return err
	}
	for i, id := range s.Roster {
		if id == userID {
			s.Roster = append(s.Roster[:i], s.Roster[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("명단에 없는 멤버입니다")
}

func (s *RecordingSession) ConfirmRoster() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepRosterConfirm); err != nil {
		return err
	}
	if len(s.Roster) < minRosterSize {
		return fmt.Errorf("최소 %d명이 필요합니다 (현재 %d명)", minRosterSize, len(s.Roster))
	}
	s.Step = StepTeamASelection
	return nil
}

func (s *RecordingSession) validateTeam(ids []string, pool []string) error {
	if len(ids) != teamSize {
		return fmt.Errorf("정확히 %d명을 선택해주세요 (선택: %d명)", teamSize, len(ids))
	}
	allowed := make(map[string]struct{}, len(pool))
	for _, id := range pool {
		allowed[id] = struct{}{}
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := allowed[id]; !ok {
			return fmt.Errorf("명단에 없는 멤버가 포함되어 있습니다")
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("같은 멤버를 두 번 선택할 수 없습니다")
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (s *RecordingSession) SelectTeamA(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepTeamASelection); err != nil {
		return err
	}
	if err := s.validateTeam(ids, s.Roster); err != nil {
		return err
	}
	s.TeamA = append([]string(nil), ids...)
	s.Step = StepTeamBSelection
	return nil
}

// RemainingPool is the roster minus team A, offered for team B.
func (s *RecordingSession) RemainingPool() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remainingPool()
}

func (s *RecordingSession) remainingPool() []string {
	taken := make(map[string]struct{}, len(s.TeamA))
	for _, id := range s.TeamA {
		taken[id] = struct{}{}
	}
	var pool []string
	for _, id := range s.Roster {
		if _, ok := taken[id]; !ok {
			pool = append(pool, id)
		}
	}
	return pool
}

func (s *RecordingSession) SelectTeamB(ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepTeamBSelection); err != nil {
		return err
	}
	if err := s.validateTeam(ids, s.remainingPool()); err != nil {
		return err
	}
	s.TeamB = append([]string(nil), ids...)
	s.Step = StepWinnerSelection
	return nil
}

// ResetTeamA discards the side A choice from the side B step.
func (s *RecordingSession) ResetTeamA() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepTeamBSelection); err != nil {
		return err
	}
	s.TeamA = nil
	s.Step = StepTeamASelection
	return nil
}

func (s *RecordingSession) SelectWinner(side models.TeamSide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepWinnerSelection); err != nil {
		return err
	}
	if side != models.TeamA && side != models.TeamB {
		return fmt.Errorf("잘못된 팀입니다")
	}
	s.Winner = side
	s.Step = StepWinnerConfirm
	return nil
}

func (s *RecordingSession) ConfirmWinner() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepWinnerConfirm); err != nil {
		return err
	}
	s.Step = StepPositionTeamA
	return nil
}

func (s *RecordingSession) ReselectWinner() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepWinnerConfirm); err != nil {
		return err
	}
	s.Winner = ""
	s.Step = StepWinnerSelection
	return nil
}

func (s *RecordingSession) currentSide() (team []string, roles *[]models.Role, side models.TeamSide, err error) {
	switch s.Step {
	case StepPositionTeamA:
		return s.TeamA, &s.RolesA, models.TeamA, nil
	case StepPositionTeamB:
		return s.TeamB, &s.RolesB, models.TeamB, nil
	}
	return nil, nil, "", fmt.Errorf("지금은 포지션 지정 단계가 아닙니다")
}

// PendingPlayer returns the next side member without an assigned role.
func (s *RecordingSession) PendingPlayer() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, roles, _, err := s.currentSide()
	if err != nil || len(*roles) >= len(team) {
		return "", false
	}
	return team[len(*roles)], true
}

func (s *RecordingSession) AssignRole(role models.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	team, roles, _, err := s.currentSide()
	if err != nil {
		return err
	}
	if len(*roles) >= len(team) {
		return fmt.Errorf("모든 멤버의 포지션이 이미 지정되었습니다")
	}
	switch role {
	case models.RoleTank, models.RoleDPS, models.RoleSupport:
	default:
		return fmt.Errorf("잘못된 포지션입니다")
	}
	*roles = append(*roles, role)
	return nil
}

// UndoRole clears the previous member's pick and re-prompts for them.
func (s *RecordingSession) UndoRole() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, roles, _, err := s.currentSide()
	if err != nil {
		return err
	}
	if len(*roles) == 0 {
		return fmt.Errorf("되돌릴 선택이 없습니다")
	}
	*roles = (*roles)[:len(*roles)-1]
	return nil
}

func (s *RecordingSession) SideComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sideComplete()
}

func (s *RecordingSession) sideComplete() bool {
	team, roles, _, err := s.currentSide()
	if err != nil {
		return false
	}
	return len(*roles) == len(team)
}

// RedoSide clears every pick for the side under assignment.
func (s *RecordingSession) RedoSide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, roles, _, err := s.currentSide()
	if err != nil {
		return err
	}
	*roles = nil
	return nil
}

func (s *RecordingSession) ConfirmSide() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _, side, err := s.currentSide()
	if err != nil {
		return err
	}
	if !s.sideComplete() {
		return fmt.Errorf("아직 포지션이 지정되지 않은 멤버가 있습니다")
	}
	if s.returnToReview {
		s.returnToReview = false
		s.Step = StepFinalReview
		return nil
	}
	if side == models.TeamA {
		s.Step = StepPositionTeamB
	} else {
		s.Step = StepFinalReview
	}
	return nil
}

// RedoWinner rewinds from the final review through the full re-selection
// path: winner and both sides' roles are cleared together. There is no
// cheap winner-only edit once role assignment has begun.
func (s *RecordingSession) RedoWinner() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepFinalReview); err != nil {
		return err
	}
	s.Winner = ""
	s.RolesA = nil
	s.RolesB = nil
	s.returnToReview = false
	s.Step = StepWinnerSelection
	return nil
}

// RedoRoles re-enters one side's role assignment from the final review;
// confirming that side returns to the review.
func (s *RecordingSession) RedoRoles(side models.TeamSide) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepFinalReview); err != nil {
		return err
	}
	if side == models.TeamA {
		s.RolesA = nil
		s.Step = StepPositionTeamA
	} else {
		s.RolesB = nil
		s.Step = StepPositionTeamB
	}
	s.returnToReview = true
	return nil
}

func (s *RecordingSession) ConfirmFinal() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepFinalReview); err != nil {
		return err
	}
	if len(s.RolesA) != len(s.TeamA) || len(s.RolesB) != len(s.TeamB) {
		return fmt.Errorf("포지션 지정이 완료되지 않았습니다")
	}
	s.Step = StepMapType
	return nil
}

func (s *RecordingSession) SetMapType(mapType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepMapType); err != nil {
		return err
	}
	if _, ok := MapPools[mapType]; !ok {
		return fmt.Errorf("알 수 없는 전장 유형입니다")
	}
	s.MapType = mapType
	s.Step = StepMapPick
	return nil
}

func (s *RecordingSession) SetMap(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepMapPick); err != nil {
		return err
	}
	s.MapName = name
	return nil
}

// SkipMap leaves the map metadata empty; valid from either picker step.
func (s *RecordingSession) SkipMap() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepMapType, StepMapPick); err != nil {
		return err
	}
	s.MapType = ""
	s.MapName = ""
	return nil
}

// BuildMatch assembles the persistable match for the current draft. Each
// participant's Won is derived here, once, from their side and the winner.
func (s *RecordingSession) BuildMatch() (models.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepMapType, StepMapPick); err != nil {
		return models.Match{}, err
	}
	match := models.Match{
		RecruitmentID: s.RecruitmentID,
		Number:        s.NextNumber,
		Winner:        s.Winner,
		MapType:       s.MapType,
		MapName:       s.MapName,
		CreatorID:     s.CreatorID,
	}
	for i, userID := range s.TeamA {
		match.Participants = append(match.Participants, models.MatchParticipant{
			UserID: userID,
			Side:   models.TeamA,
			Role:   s.RolesA[i],
			Won:    s.Winner == models.TeamA,
		})
	}
	for i, userID := range s.TeamB {
		match.Participants = append(match.Participants, models.MatchParticipant{
			UserID: userID,
			Side:   models.TeamB,
			Role:   s.RolesB[i],
			Won:    s.Winner == models.TeamB,
		})
	}
	return match, nil
}

// CompleteMatch records a persisted match and resets the per-match draft,
// returning the session to the dashboard. The next number always follows
// the highest completed one.
func (s *RecordingSession) CompleteMatch(matchID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SavedMatches = append(s.SavedMatches, matchID)
	s.NextNumber++
	s.TeamA = nil
	s.TeamB = nil
	s.Winner = ""
	s.RolesA = nil
	s.RolesB = nil
	s.MapType = ""
	s.MapName = ""
	s.returnToReview = false
	s.Step = StepDashboard
}

func (s *RecordingSession) StartNextMatch() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.requireStep(StepDashboard); err != nil {
		return err
	}
	s.Step = StepTeamASelection
	return nil
}

func (s *RecordingSession) CompletedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.SavedMatches)
}
