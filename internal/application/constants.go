package application

const (
	// Recruitment wizard
	dateChoiceDays       = 14
	minRosterSize        = 10
	teamSize             = 5
	deadlineHour         = 23
	deadlineMinuteSecond = 59

	// Leaderboard
	leaderboardLimit    = 10
	leaderboardMinGames = 5

	// Quiz scoring
	quizBasePoints  = 10
	quizStreakBonus = 5
)

// PresetTimeRanges are the selectable scrim time slots. Custom text entered
// through the modal is added on top of these.
var PresetTimeRanges = []string{
	"15:00-17:00 (오후)",
	"17:00-19:00 (저녁)",
	"19:00-21:00 (오후)",
	"21:00-23:00 (밤)",
	"23:00-01:00 (심야)",
}

// MapPools maps each map type to its specific maps, used by the optional
// map tagging step of the recording workflow.
var MapPools = map[string][]string{
	"쟁탈":     {"리장 타워", "네팔", "일리오스", "오아시스", "부산", "남극 반도", "사모아"},
	"호위":     {"도라도", "66번 국도", "리알토", "하바나", "감시기지: 지브롤터", "쓰레기촌", "샴발리 수도원"},
	"혼합":     {"왕의 길", "눔바니", "아이헨발데", "할리우드", "블리자드 월드", "파라이수", "미드타운"},
	"밀기":     {"콜로세오", "뉴 퀸 스트리트", "이스페란사", "루나사피"},
	"플래시포인트": {"수라바사", "뉴 정크 시티", "아틀리스"},
}

// MapTypes lists the map type picker entries in display order.
var MapTypes = []string{"쟁탈", "호위", "혼합", "밀기", "플래시포인트"}
