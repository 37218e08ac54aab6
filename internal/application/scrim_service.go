package application

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"
)

type SlotInfo struct {
	Slot      models.TimeSlot
	Headcount int
}

type SignupResult struct {
	Added bool
	Role  models.Role
	Slot  models.TimeSlot
}

type ScrimServiceImpl struct {
	repo    repository.Scrim
	members repository.Member
	logger  Logger

	mu     sync.RWMutex
	drafts map[string]*RecruitDraft // keyed guildID:userID
}

func NewScrimServiceImpl(repo repository.Scrim, members repository.Member, logger Logger) *ScrimServiceImpl {
	return &ScrimServiceImpl{
		repo:    repo,
		members: members,
		logger:  logger,
		drafts:  make(map[string]*RecruitDraft),
	}
}

func draftKey(guildID, userID string) string {
	return guildID + ":" + userID
}

func (s *ScrimServiceImpl) StartDraft(guildID, userID, channelID string) *RecruitDraft {
	draft := &RecruitDraft{
		GuildID:   guildID,
		UserID:    userID,
		ChannelID: channelID,
		CreatedAt: time.Now(),
	}
	s.mu.Lock()
	s.drafts[draftKey(guildID, userID)] = draft
	s.mu.Unlock()
	return draft
}

func (s *ScrimServiceImpl) GetDraft(guildID, userID string) (*RecruitDraft, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[draftKey(guildID, userID)]
	return draft, ok
}

func (s *ScrimServiceImpl) DiscardDraft(guildID, userID string) {
	s.mu.Lock()
	delete(s.drafts, draftKey(guildID, userID))
	s.mu.Unlock()
}

// SetOpponent rejects the guild's own registered clan name. A server may
// not schedule a scrim against itself; the field stays unset on rejection.
func (s *ScrimServiceImpl) SetOpponent(draft *RecruitDraft, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("상대 클랜 이름을 입력해주세요")
	}
	own, err := s.members.GetClanName(draft.GuildID)
	if err != nil {
		return err
	}
	if own != "" && strings.EqualFold(own, name) {
		return fmt.Errorf("자기 클랜(%s)과는 스크림을 잡을 수 없습니다", own)
	}
	draft.OpponentClan = name
	return nil
}

// SetDeadline stores an explicit deadline. It must lie strictly in the
// future at selection time.
func (s *ScrimServiceImpl) SetDeadline(draft *RecruitDraft, deadline time.Time) error {
	if !deadline.After(time.Now()) {
		return fmt.Errorf("마감 시간은 현재보다 이후여야 합니다. 다시 선택해주세요")
	}
	draft.ExplicitDeadline = &deadline
	return nil
}

func (s *ScrimServiceImpl) Publish(draft *RecruitDraft) (*models.Recruitment, []models.TimeSlot, error) {
	if missing := draft.MissingFields(); len(missing) > 0 {
		return nil, nil, fmt.Errorf("필수 항목이 비어 있습니다: %s", strings.Join(missing, ", "))
	}

	deadline := time.Time{}
	if draft.ExplicitDeadline != nil {
		deadline = *draft.ExplicitDeadline
	} else {
		derived, err := DeriveDeadline(draft.Dates)
		if err != nil {
			return nil, nil, err
		}
		deadline = derived
	}

	rec := models.Recruitment{
		GuildID:      draft.GuildID,
		Title:        fmt.Sprintf("vs %s 스크림", draft.OpponentClan),
		OpponentClan: draft.OpponentClan,
		TierMin:      draft.TierMin,
		TierMax:      draft.TierMax,
		Description:  draft.Description,
		Deadline:     deadline,
		Status:       models.RecruitmentActive,
		CreatorID:    draft.UserID,
		ChannelID:    draft.ChannelID,
	}

	slots := draft.SlotCombinations()
	id, err := s.repo.CreateRecruitment(rec, slots)
	if err != nil {
		return nil, nil, fmt.Errorf("모집 공고 저장에 실패했습니다: %w", err)
	}
	rec.ID = id

	if err := s.members.RememberClan(draft.GuildID, draft.OpponentClan); err != nil {
		s.logger.Warn("failed to remember opponent clan: %v", err)
	}

	s.DiscardDraft(draft.GuildID, draft.UserID)

	saved, err := s.repo.GetSlots(id)
	if err != nil {
		return &rec, slots, nil
	}
	return &rec, saved, nil
}

func (s *ScrimServiceImpl) AttachMessage(recruitmentID int64, channelID, messageID string) error {
	return s.repo.SetRecruitmentMessage(recruitmentID, channelID, messageID)
}

func (s *ScrimServiceImpl) GetRecruitment(id int64) (*models.Recruitment, error) {
	return s.repo.GetRecruitment(id)
}

func (s *ScrimServiceImpl) SlotOverview(recruitmentID int64) ([]SlotInfo, error) {
	slots, err := s.repo.GetSlots(recruitmentID)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.GetSignupCounts(recruitmentID)
	if err != nil {
		return nil, err
	}
	infos := make([]SlotInfo, 0, len(slots))
	for _, slot := range slots {
		infos = append(infos, SlotInfo{Slot: slot, Headcount: counts[slot.ID]})
	}
	return infos, nil
}

// ToggleSignup re-validates the recruitment state against the clock on
// every attempt, so input arriving from a stale widget is still rejected
// after the deadline.
func (s *ScrimServiceImpl) ToggleSignup(recruitmentID, slotID int64, userID string, role models.Role) (*SignupResult, error) {
	rec, err := s.repo.GetRecruitment(recruitmentID)
	if err != nil {
		return nil, err
	}
	if rec.Status.Terminal() {
		return nil, fmt.Errorf("이미 마감된 모집입니다")
	}
	if time.Now().After(rec.Deadline) {
		return nil, fmt.Errorf("신청 마감 시간이 지났습니다 (마감: %s)", rec.Deadline.Format("2006-01-02 15:04"))
	}

	slot, err := s.repo.GetSlot(slotID)
	if err != nil {
		return nil, err
	}
	if slot.RecruitmentID != recruitmentID {
		return nil, fmt.Errorf("잘못된 시간대입니다")
	}
	if slot.Finalized {
		return nil, fmt.Errorf("확정된 시간대에는 신청할 수 없습니다")
	}

	added, err := s.repo.ToggleSignup(slotID, userID, role)
	if err != nil {
		return nil, fmt.Errorf("신청 처리에 실패했습니다: %w", err)
	}
	return &SignupResult{Added: added, Role: role, Slot: *slot}, nil
}

func (s *ScrimServiceImpl) UserSlotIDs(recruitmentID int64, userID string, role models.Role) (map[int64]bool, error) {
	ids, err := s.repo.SlotsWithUserRole(recruitmentID, userID, role)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}

// FinalizeSlot locks the slot, moves the recruitment to partially_closed
// (or closed once every slot is finalized) and returns the users signed up
// in that slot so the caller can notify them. Irreversible.
func (s *ScrimServiceImpl) FinalizeSlot(recruitmentID, slotID int64) (*models.TimeSlot, []string, error) {
	rec, err := s.repo.GetRecruitment(recruitmentID)
	if err != nil {
		return nil, nil, err
	}
	if rec.Status == models.RecruitmentCancelled {
		return nil, nil, fmt.Errorf("취소된 모집입니다")
	}

	slot, err := s.repo.GetSlot(slotID)
	if err != nil {
		return nil, nil, err
	}
	if slot.RecruitmentID != recruitmentID {
		return nil, nil, fmt.Errorf("잘못된 시간대입니다")
	}
	if slot.Finalized {
		return nil, nil, fmt.Errorf("이미 확정된 시간대입니다")
	}

	if err := s.repo.FinalizeSlot(slotID); err != nil {
		return nil, nil, fmt.Errorf("시간대 확정에 실패했습니다: %w", err)
	}
	slot.Finalized = true

	status := models.RecruitmentPartiallyClosed
	slots, err := s.repo.GetSlots(recruitmentID)
	if err == nil {
		allDone := true
		for _, other := range slots {
			if !other.Finalized {
				allDone = false
				break
			}
		}
		if allDone {
			status = models.RecruitmentClosed
		}
	}
	if rec.Status != status {
		if err := s.repo.UpdateRecruitmentStatus(recruitmentID, status); err != nil {
			s.logger.Error("failed to update recruitment status: %v", err)
		}
	}

	signups, err := s.repo.GetSignups(slotID)
	if err != nil {
		return slot, nil, nil
	}
	seen := make(map[string]struct{})
	var users []string
	for _, su := range signups {
		if _, ok := seen[su.UserID]; ok {
			continue
		}
		seen[su.UserID] = struct{}{}
		users = append(users, su.UserID)
	}
	return slot, users, nil
}

func (s *ScrimServiceImpl) CancelRecruitment(recruitmentID int64) error {
	rec, err := s.repo.GetRecruitment(recruitmentID)
	if err != nil {
		return err
	}
	if rec.Status == models.RecruitmentCancelled {
		return fmt.Errorf("이미 취소된 모집입니다")
	}
	return s.repo.UpdateRecruitmentStatus(recruitmentID, models.RecruitmentCancelled)
}
