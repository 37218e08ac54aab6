package application

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"watchpoint/internal/models"
	"watchpoint/internal/repository"
)

// quizWords is the built-in guessing pool: hero and map names everyone on
// an Overwatch server knows.
var quizWords = []string{
	"겐지", "한조", "트레이서", "리퍼", "솔저", "솜브라", "파라", "메이", "애쉬",
	"에코", "소전", "캐서디", "위도우메이커", "바스티온", "시메트라", "토르비욘",
	"정크랫", "라인하르트", "윈스턴", "디바", "시그마", "오리사", "레킹볼",
	"자리야", "둠피스트", "라마트라", "정커퀸", "마우가", "메르시", "아나",
	"루시우", "젠야타", "모이라", "브리기테", "바티스트", "키리코", "일리아리",
	"라이프위버", "쓰레기촌", "눔바니", "하나무라", "왕의길", "감시기지",
}

type QuizRound struct {
	GuildID   string
	ChannelID string
	Word      string
	Hint      string
	StartedBy string
	StartedAt time.Time
}

type GuessResult struct {
	Correct   bool
	Word      string
	Points    int
	Streak    int
	NextRound *QuizRound
}

type QuizServiceImpl struct {
	repo   repository.Quiz
	logger Logger

	mu      sync.Mutex
	rounds  map[string]*QuizRound // keyed guildID:channelID
	streaks map[string]int        // keyed guildID:userID, consecutive wins
	lastWin map[string]string     // channel key -> last winner user id
	rng     *rand.Rand
}

func NewQuizServiceImpl(repo repository.Quiz, logger Logger) *QuizServiceImpl {
	return &QuizServiceImpl{
		repo:    repo,
		logger:  logger,
		rounds:  make(map[string]*QuizRound),
		streaks: make(map[string]int),
		lastWin: make(map[string]string),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func channelKey(guildID, channelID string) string {
	return guildID + ":" + channelID
}

func (s *QuizServiceImpl) Start(guildID, channelID, userID string) (*QuizRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := channelKey(guildID, channelID)
	if _, running := s.rounds[key]; running {
		return nil, fmt.Errorf("이미 진행 중인 퀴즈가 있습니다")
	}

	round := s.newRoundLocked(guildID, channelID, userID)
	s.rounds[key] = round
	return round, nil
}

func (s *QuizServiceImpl) newRoundLocked(guildID, channelID, userID string) *QuizRound {
	word := quizWords[s.rng.Intn(len(quizWords))]
	return &QuizRound{
		GuildID:   guildID,
		ChannelID: channelID,
		Word:      word,
		Hint:      InitialConsonants(word),
		StartedBy: userID,
		StartedAt: time.Now(),
	}
}

// Guess checks a plain chat message against the running round. A correct
// guess scores, rolls the streak, and immediately starts the next round in
// the same channel.
func (s *QuizServiceImpl) Guess(guildID, channelID, userID, text string) (*GuessResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := channelKey(guildID, channelID)
	round, running := s.rounds[key]
	if !running {
		return nil, nil
	}

	if strings.TrimSpace(text) != round.Word {
		return &GuessResult{Correct: false}, nil
	}

	streak := 1
	if s.lastWin[key] == userID {
		streak = s.streaks[guildID+":"+userID] + 1
	}
	s.streaks[guildID+":"+userID] = streak
	s.lastWin[key] = userID

	points := quizBasePoints + (streak-1)*quizStreakBonus
	if err := s.repo.AddPoints(guildID, userID, points); err != nil {
		return nil, fmt.Errorf("점수 저장에 실패했습니다: %w", err)
	}

	next := s.newRoundLocked(guildID, channelID, round.StartedBy)
	s.rounds[key] = next

	return &GuessResult{
		Correct:   true,
		Word:      round.Word,
		Points:    points,
		Streak:    streak,
		NextRound: next,
	}, nil
}

func (s *QuizServiceImpl) Stop(guildID, channelID string) (*QuizRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := channelKey(guildID, channelID)
	round, running := s.rounds[key]
	if !running {
		return nil, fmt.Errorf("진행 중인 퀴즈가 없습니다")
	}
	delete(s.rounds, key)
	delete(s.lastWin, key)
	return round, nil
}

func (s *QuizServiceImpl) Ranking(guildID string) ([]models.WordScore, error) {
	return s.repo.Top(guildID, leaderboardLimit)
}

const (
	hangulBase = rune(0xAC00)
	hangulEnd  = rune(0xD7A3)
)

var choseong = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")

// InitialConsonants renders the 초성 hint for a word: each Hangul syllable
// is replaced by its leading consonant, everything else passes through.
func InitialConsonants(word string) string {
	var sb strings.Builder
	for _, r := range word {
		if r >= hangulBase && r <= hangulEnd {
			sb.WriteRune(choseong[(r-hangulBase)/588])
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
