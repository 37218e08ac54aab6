package application

import (
	"time"

	"watchpoint/internal/models"
)

// RecruitDraft is the in-memory state of one organizer's recruitment wizard.
// Nothing is persisted until Publish. A draft belongs to exactly one
// (guild, user) conversation and is discarded on cancel.
type RecruitDraft struct {
	GuildID   string
	UserID    string
	ChannelID string

	OpponentClan string
	Dates        []string
	Times        []string
	CustomTime   string
	TierMin      models.Tier
	TierMax      models.Tier
	Description  string

	// ExplicitDeadline is nil when the deadline should be derived from the
	// selected dates at publish time.
	ExplicitDeadline *time.Time

	CreatedAt time.Time
}

// SetDates replaces the selected dates. Any explicitly chosen deadline is
// cleared because its validity is defined relative to the dates.
func (d *RecruitDraft) SetDates(dates []string) {
	d.Dates = dates
	d.ExplicitDeadline = nil
}

func (d *RecruitDraft) SetTimes(times []string) {
	d.Times = times
}

func (d *RecruitDraft) SetCustomTime(text string) {
	d.CustomTime = text
}

func (d *RecruitDraft) SetTierRange(min, max models.Tier) {
	if min.Rank() > max.Rank() {
		min, max = max, min
	}
	d.TierMin = min
	d.TierMax = max
}

// MissingFields returns the display names of every unfilled required field,
// so the organizer sees one consolidated list instead of one error at a time.
func (d *RecruitDraft) MissingFields() []string {
	var missing []string
	if d.OpponentClan == "" {
		missing = append(missing, "상대 클랜")
	}
	if len(d.Dates) == 0 {
		missing = append(missing, "날짜")
	}
	if len(d.Times) == 0 && d.CustomTime == "" {
		missing = append(missing, "시간")
	}
	if d.TierMin == "" || d.TierMax == "" {
		missing = append(missing, "티어")
	}
	return missing
}

// SlotCombinations is the cross product of the selected dates and time
// ranges (plus the custom time when supplied), one TimeSlot per pair.
func (d *RecruitDraft) SlotCombinations() []models.TimeSlot {
	times := make([]string, 0, len(d.Times)+1)
	times = append(times, d.Times...)
	if d.CustomTime != "" {
		times = append(times, d.CustomTime)
	}

	var slots []models.TimeSlot
	for _, date := range d.Dates {
		for _, tr := range times {
			slots = append(slots, models.TimeSlot{Date: date, TimeRange: tr})
		}
	}
	return slots
}
