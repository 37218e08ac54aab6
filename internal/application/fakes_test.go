package application

import (
	"fmt"
	"time"

	"watchpoint/internal/models"
)

type nopLogger struct{}

func (nopLogger) Error(format string, v ...interface{}) {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Debug(format string, v ...interface{}) {}

type fakeMemberRepo struct {
	members  map[string]models.Member // keyed guildID:userID
	clanName string
	known    []string
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[string]models.Member)}
}

func (f *fakeMemberRepo) key(guildID, userID string) string { return guildID + ":" + userID }

func (f *fakeMemberRepo) Upsert(m models.Member) error {
	f.members[f.key(m.GuildID, m.UserID)] = m
	return nil
}

func (f *fakeMemberRepo) Get(guildID, userID string) (*models.Member, error) {
	m, ok := f.members[f.key(guildID, userID)]
	if !ok {
		return nil, fmt.Errorf("member not found")
	}
	return &m, nil
}

func (f *fakeMemberRepo) GetAll(guildID string) ([]models.Member, error) {
	var all []models.Member
	for _, m := range f.members {
		if m.GuildID == guildID {
			all = append(all, m)
		}
	}
	return all, nil
}

func (f *fakeMemberRepo) Exists(guildID, userID string) (bool, error) {
	_, ok := f.members[f.key(guildID, userID)]
	return ok, nil
}

func (f *fakeMemberRepo) SetTier(guildID, userID string, tier models.Tier) error {
	m, ok := f.members[f.key(guildID, userID)]
	if !ok {
		return fmt.Errorf("member not found")
	}
	m.Tier = tier
	f.members[f.key(guildID, userID)] = m
	return nil
}

func (f *fakeMemberRepo) GetClanName(guildID string) (string, error) { return f.clanName, nil }
func (f *fakeMemberRepo) SetClanName(guildID, name string) error {
	f.clanName = name
	return nil
}
func (f *fakeMemberRepo) GetKnownClans(guildID string) ([]string, error) { return f.known, nil }
func (f *fakeMemberRepo) RememberClan(guildID, name string) error {
	f.known = append(f.known, name)
	return nil
}

type fakeScrimRepo struct {
	recruitments map[int64]*models.Recruitment
	slots        map[int64]*models.TimeSlot
	signups      map[int64][]models.PositionSignup // keyed slot id
	nextRecID    int64
	nextSlotID   int64
}

func newFakeScrimRepo() *fakeScrimRepo {
	return &fakeScrimRepo{
		recruitments: make(map[int64]*models.Recruitment),
		slots:        make(map[int64]*models.TimeSlot),
		signups:      make(map[int64][]models.PositionSignup),
	}
}

func (f *fakeScrimRepo) CreateRecruitment(rec models.Recruitment, slots []models.TimeSlot) (int64, error) {
	f.nextRecID++
	rec.ID = f.nextRecID
	f.recruitments[rec.ID] = &rec
	for _, slot := range slots {
		f.nextSlotID++
		slot.ID = f.nextSlotID
		slot.RecruitmentID = rec.ID
		f.slots[slot.ID] = &slot
	}
	return rec.ID, nil
}

func (f *fakeScrimRepo) GetRecruitment(id int64) (*models.Recruitment, error) {
	rec, ok := f.recruitments[id]
	if !ok {
		return nil, fmt.Errorf("recruitment not found")
	}
	copied := *rec
	return &copied, nil
}

func (f *fakeScrimRepo) SetRecruitmentMessage(id int64, channelID, messageID string) error {
	rec, ok := f.recruitments[id]
	if !ok {
		return fmt.Errorf("recruitment not found")
	}
	rec.ChannelID = channelID
	rec.MessageID = messageID
	return nil
}

func (f *fakeScrimRepo) UpdateRecruitmentStatus(id int64, status models.RecruitmentStatus) error {
	rec, ok := f.recruitments[id]
	if !ok {
		return fmt.Errorf("recruitment not found")
	}
	rec.Status = status
	return nil
}

func (f *fakeScrimRepo) CloseExpired(now time.Time) (int64, error) {
	var closed int64
	for _, rec := range f.recruitments {
		if !rec.Status.Terminal() && now.After(rec.Deadline) {
			rec.Status = models.RecruitmentClosed
			closed++
		}
	}
	return closed, nil
}

func (f *fakeScrimRepo) GetSlots(recruitmentID int64) ([]models.TimeSlot, error) {
	var slots []models.TimeSlot
	for id := int64(1); id <= f.nextSlotID; id++ {
		if slot, ok := f.slots[id]; ok && slot.RecruitmentID == recruitmentID {
			slots = append(slots, *slot)
		}
	}
	return slots, nil
}

func (f *fakeScrimRepo) GetSlot(slotID int64) (*models.TimeSlot, error) {
	slot, ok := f.slots[slotID]
	if !ok {
		return nil, fmt.Errorf("slot not found")
	}
	copied := *slot
	return &copied, nil
}

func (f *fakeScrimRepo) FinalizeSlot(slotID int64) error {
	slot, ok := f.slots[slotID]
	if !ok || slot.Finalized {
		return fmt.Errorf("slot not finalizable")
	}
	slot.Finalized = true
	return nil
}

func (f *fakeScrimRepo) ToggleSignup(slotID int64, userID string, role models.Role) (bool, error) {
	signups := f.signups[slotID]
	for idx, su := range signups {
		if su.UserID == userID && su.Role == role {
			f.signups[slotID] = append(signups[:idx], signups[idx+1:]...)
			return false, nil
		}
	}
	f.signups[slotID] = append(signups, models.PositionSignup{SlotID: slotID, UserID: userID, Role: role})
	return true, nil
}

func (f *fakeScrimRepo) GetSignups(slotID int64) ([]models.PositionSignup, error) {
	return f.signups[slotID], nil
}

func (f *fakeScrimRepo) GetSignupCounts(recruitmentID int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	for slotID, signups := range f.signups {
		if slot, ok := f.slots[slotID]; ok && slot.RecruitmentID == recruitmentID {
			counts[slotID] = len(signups)
		}
	}
	return counts, nil
}

func (f *fakeScrimRepo) SlotsWithUserRole(recruitmentID int64, userID string, role models.Role) ([]int64, error) {
	var ids []int64
	for slotID, signups := range f.signups {
		slot, ok := f.slots[slotID]
		if !ok || slot.RecruitmentID != recruitmentID {
			continue
		}
		for _, su := range signups {
			if su.UserID == userID && su.Role == role {
				ids = append(ids, slotID)
				break
			}
		}
	}
	return ids, nil
}

func (f *fakeScrimRepo) GetParticipants(recruitmentID int64) ([]string, error) {
	seen := make(map[string]struct{})
	var users []string
	for slotID, signups := range f.signups {
		slot, ok := f.slots[slotID]
		if !ok || slot.RecruitmentID != recruitmentID {
			continue
		}
		for _, su := range signups {
			if _, dup := seen[su.UserID]; dup {
				continue
			}
			seen[su.UserID] = struct{}{}
			users = append(users, su.UserID)
		}
	}
	return users, nil
}

type fakeMatchRepo struct {
	matches map[int64]*models.Match
	nextID  int64
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[int64]*models.Match)}
}

func (f *fakeMatchRepo) Create(match models.Match) (int64, error) {
	f.nextID++
	match.ID = f.nextID
	f.matches[match.ID] = &match
	return match.ID, nil
}

func (f *fakeMatchRepo) Get(id int64) (*models.Match, error) {
	match, ok := f.matches[id]
	if !ok {
		return nil, fmt.Errorf("match not found")
	}
	copied := *match
	return &copied, nil
}

func (f *fakeMatchRepo) NextNumber(recruitmentID int64) (int, error) {
	max := 0
	for _, m := range f.matches {
		if m.RecruitmentID == recruitmentID && m.Number > max {
			max = m.Number
		}
	}
	return max + 1, nil
}

func (f *fakeMatchRepo) CountByRecruitment(recruitmentID int64) (int, error) {
	count := 0
	for _, m := range f.matches {
		if m.RecruitmentID == recruitmentID {
			count++
		}
	}
	return count, nil
}

func (f *fakeMatchRepo) Cancel(id int64) error {
	match, ok := f.matches[id]
	if !ok {
		return fmt.Errorf("match not found")
	}
	match.Cancelled = true
	return nil
}

type fakeStatsRepo struct {
	stats    map[string]*models.UserStatistic // keyed guildID:userID
	matches  *fakeMatchRepo
	failNext bool
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: make(map[string]*models.UserStatistic)}
}

func (f *fakeStatsRepo) entry(guildID, userID string) *models.UserStatistic {
	key := guildID + ":" + userID
	st, ok := f.stats[key]
	if !ok {
		st = &models.UserStatistic{GuildID: guildID, UserID: userID}
		f.stats[key] = st
	}
	return st
}

func (f *fakeStatsRepo) adjust(guildID, userID string, role models.Role, won bool, delta int) error {
	st := f.entry(guildID, userID)
	st.TotalGames += delta
	if won {
		st.TotalWins += delta
	}
	switch role {
	case models.RoleTank:
		st.TankGames += delta
		if won {
			st.TankWins += delta
		}
	case models.RoleDPS:
		st.DPSGames += delta
		if won {
			st.DPSWins += delta
		}
	case models.RoleSupport:
		st.SupportGames += delta
		if won {
			st.SupportWins += delta
		}
	}
	return nil
}

func (f *fakeStatsRepo) ApplyMatch(guildID string, matchID int64, participants []models.MatchParticipant) error {
	return f.adjustMatch(guildID, matchID, participants, 1)
}

func (f *fakeStatsRepo) RevertMatch(guildID string, matchID int64, participants []models.MatchParticipant) error {
	return f.adjustMatch(guildID, matchID, participants, -1)
}

func (f *fakeStatsRepo) adjustMatch(guildID string, matchID int64, participants []models.MatchParticipant, delta int) error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("stats write failed")
	}
	for _, p := range participants {
		if err := f.adjust(guildID, p.UserID, p.Role, p.Won, delta); err != nil {
			return err
		}
	}
	if f.matches != nil {
		match, ok := f.matches.matches[matchID]
		if !ok {
			return fmt.Errorf("match not found")
		}
		match.StatsApplied = delta > 0
	}
	return nil
}

func (f *fakeStatsRepo) Get(guildID, userID string) (*models.UserStatistic, error) {
	st := f.entry(guildID, userID)
	copied := *st
	return &copied, nil
}

func (f *fakeStatsRepo) GetAll(guildID string) ([]models.UserStatistic, error) {
	var all []models.UserStatistic
	for _, st := range f.stats {
		if st.GuildID == guildID {
			all = append(all, *st)
		}
	}
	return all, nil
}

type fakeQuizRepo struct {
	points map[string]int // keyed guildID:userID
}

func newFakeQuizRepo() *fakeQuizRepo {
	return &fakeQuizRepo{points: make(map[string]int)}
}

func (f *fakeQuizRepo) AddPoints(guildID, userID string, points int) error {
	f.points[guildID+":"+userID] += points
	return nil
}

func (f *fakeQuizRepo) Top(guildID string, limit int) ([]models.WordScore, error) {
	var scores []models.WordScore
	for key, pts := range f.points {
		scores = append(scores, models.WordScore{GuildID: guildID, UserID: key, Points: pts})
	}
	return scores, nil
}

type fakeVoiceRepo struct {
	seconds map[string]int64 // keyed guildID:userID
}

func newFakeVoiceRepo() *fakeVoiceRepo {
	return &fakeVoiceRepo{seconds: make(map[string]int64)}
}

func (f *fakeVoiceRepo) AddSeconds(guildID, userID string, seconds int64) error {
	f.seconds[guildID+":"+userID] += seconds
	return nil
}

func (f *fakeVoiceRepo) Get(guildID, userID string) (int64, error) {
	return f.seconds[guildID+":"+userID], nil
}

func (f *fakeVoiceRepo) Top(guildID string, limit int) ([]models.VoiceStat, error) {
	var stats []models.VoiceStat
	for key, secs := range f.seconds {
		stats = append(stats, models.VoiceStat{GuildID: guildID, UserID: key, TotalSeconds: secs})
	}
	return stats, nil
}
