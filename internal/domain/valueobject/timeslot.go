package valueobject

import (
	"strings"
	"time"

	"github.com/ignatzorin/servantin-backend/internal/pkg/apperror"
)

type TimeSlot string

const (
	TimeSlotMorning   TimeSlot = "MORNING"
	TimeSlotAfternoon TimeSlot = "AFTERNOON"
	TimeSlotEvening   TimeSlot = "EVENING"
)

func (s TimeSlot) IsValid() bool {
	switch s {
	case TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening:
		return true
	}
	return false
}

func NewTimeSlot(v string) (TimeSlot, error) {
	s := TimeSlot(strings.ToUpper(v))
	if !s.IsValid() {
		return "", apperror.Validation("unknown time slot: " + v)
	}
	return s, nil
}

// SlotForHour buckets an hour of the day. Night hours fall into EVENING.
func SlotForHour(hour int) TimeSlot {
	switch {
	case hour >= 8 && hour < 12:
		return TimeSlotMorning
	case hour >= 12 && hour < 17:
		return TimeSlotAfternoon
	default:
		return TimeSlotEvening
	}
}

// WeeklySlot is a recurring (weekday, slot) pair, weekday 0 = Sunday.
type WeeklySlot struct {
	Weekday int
	Slot    TimeSlot
}

func NewWeeklySlot(weekday int, slot string) (WeeklySlot, error) {
	if weekday < 0 || weekday > 6 {
		return WeeklySlot{}, apperror.Validation("weekday must be between 0 (Sunday) and 6 (Saturday)")
	}
	ts, err := NewTimeSlot(slot)
	if err != nil {
		return WeeklySlot{}, err
	}
	return WeeklySlot{Weekday: weekday, Slot: ts}, nil
}

// WeeklySlotAt converts an instant to the civil weekday and slot in loc.
func WeeklySlotAt(t time.Time, loc *time.Location) WeeklySlot {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return WeeklySlot{
		Weekday: int(local.Weekday()),
		Slot:    SlotForHour(local.Hour()),
	}
}
