package application

import (
	"fmt"
	"time"

	"watchpoint/internal/models"
)

// Broadcast delivers to every target through send, swallowing per-recipient
// failures. Returns the delivered count and the targets that failed.
// There is no retry.
func Broadcast(targets []string, send func(userID string) error) (int, []string) {
	delivered := 0
	var failed []string
	for _, target := range targets {
		if err := send(target); err != nil {
			failed = append(failed, target)
			continue
		}
		delivered++
	}
	return delivered, failed
}

// DeriveDeadline returns 23:59:59 local time on the day before the earliest
// date. Dates use the "2006-01-02" layout.
func DeriveDeadline(dates []string) (time.Time, error) {
	if len(dates) == 0 {
		return time.Time{}, fmt.Errorf("날짜가 선택되지 않았습니다")
	}
	earliest := dates[0]
	for _, d := range dates[1:] {
		if d < earliest {
			earliest = d
		}
	}
	day, err := time.ParseInLocation("2006-01-02", earliest, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("잘못된 날짜 형식입니다: %s", earliest)
	}
	prev := day.AddDate(0, 0, -1)
	return time.Date(prev.Year(), prev.Month(), prev.Day(),
		deadlineHour, deadlineMinuteSecond, deadlineMinuteSecond, 0, time.Local), nil
}

// StandardComposition reports whether roles form the conventional
// 1 tank / 2 dps / 2 support lineup. Informational only, never blocking.
func StandardComposition(roles []models.Role) bool {
	counts := map[models.Role]int{}
	for _, r := range roles {
		counts[r]++
	}
	return counts[models.RoleTank] == 1 &&
		counts[models.RoleDPS] == 2 &&
		counts[models.RoleSupport] == 2
}

// FormatRemaining renders the time left until deadline for display,
// computed at render time.
func FormatRemaining(deadline, now time.Time) string {
	left := deadline.Sub(now)
	if left <= 0 {
		return "마감됨"
	}
	if left < time.Hour {
		return fmt.Sprintf("⚠️ %d분 남음", int(left.Minutes()))
	}
	days := int(left.Hours()) / 24
	hours := int(left.Hours()) % 24
	if days > 0 {
		return fmt.Sprintf("%d일 %d시간 남음", days, hours)
	}
	return fmt.Sprintf("%d시간 %d분 남음", hours, int(left.Minutes())%60)
}

func FormatDuration(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	if h > 0 {
		return fmt.Sprintf("%d시간 %d분", h, m)
	}
	return fmt.Sprintf("%d분", m)
}
