package application

import (
	"fmt"
	"time"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"
)

type MemberServiceImpl struct {
	repo   repository.Member
	logger Logger
}

func NewMemberServiceImpl(repo repository.Member, logger Logger) *MemberServiceImpl {
	return &MemberServiceImpl{repo: repo, logger: logger}
}

func (s *MemberServiceImpl) Register(guildID, userID, battleTag string, tier models.Tier) error {
	if battleTag == "" {
		return fmt.Errorf("배틀태그를 입력해주세요")
	}
	return s.repo.Upsert(models.Member{
		GuildID:   guildID,
		UserID:    userID,
		BattleTag: battleTag,
		Tier:      tier,
		JoinedAt:  time.Now(),
	})
}

func (s *MemberServiceImpl) SetTier(guildID, userID string, tier models.Tier) error {
	if err := s.repo.SetTier(guildID, userID, tier); err != nil {
		return fmt.Errorf("먼저 /register 로 등록해주세요")
	}
	return nil
}

func (s *MemberServiceImpl) Get(guildID, userID string) (*models.Member, error) {
	return s.repo.Get(guildID, userID)
}

func (s *MemberServiceImpl) IsRegistered(guildID, userID string) (bool, error) {
	return s.repo.Exists(guildID, userID)
}

func (s *MemberServiceImpl) Members(guildID string) ([]models.Member, error) {
	return s.repo.GetAll(guildID)
}

func (s *MemberServiceImpl) MembersByID(guildID string, userIDs []string) ([]models.Member, error) {
	all, err := s.repo.GetAll(guildID)
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]struct{}, len(userIDs))
	for _, id := range userIDs {
		wanted[id] = struct{}{}
	}
	var members []models.Member
	for _, m := range all {
		if _, ok := wanted[m.UserID]; ok {
			members = append(members, m)
		}
	}
	return members, nil
}

// TierTargets returns the members whose tier falls inside [min, max]
// inclusive, used for recruitment notifications.
func (s *MemberServiceImpl) TierTargets(guildID string, min, max models.Tier) ([]string, error) {
	all, err := s.repo.GetAll(guildID)
	if err != nil {
		return nil, err
	}
	var targets []string
	for _, m := range all {
		if models.TierInRange(m.Tier, min, max) {
			targets = append(targets, m.UserID)
		}
	}
	return targets, nil
}

func (s *MemberServiceImpl) ClanName(guildID string) (string, error) {
	return s.repo.GetClanName(guildID)
}

func (s *MemberServiceImpl) SetClanName(guildID, name string) error {
	if name == "" {
		return fmt.Errorf("클랜 이름을 입력해주세요")
	}
	return s.repo.SetClanName(guildID, name)
}

func (s *MemberServiceImpl) KnownClans(guildID string) ([]string, error) {
	return s.repo.GetKnownClans(guildID)
}
