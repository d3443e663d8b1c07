package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotForHour(t *testing.T) {
	cases := map[int]TimeSlot{
		0:  TimeSlotEvening,
		7:  TimeSlotEvening,
		8:  TimeSlotMorning,
		11: TimeSlotMorning,
		12: TimeSlotAfternoon,
		16: TimeSlotAfternoon,
		17: TimeSlotEvening,
		23: TimeSlotEvening,
	}
	for hour, want := range cases {
		assert.Equal(t, want, SlotForHour(hour), "hour %d", hour)
	}
}

func TestWeeklySlotAt_UsesLocation(t *testing.T) {
	zurich, err := time.LoadLocation("Europe/Zurich")
	require.NoError(t, err)

	// Понедельник 10:00 по Цюриху, 08:00 UTC (летнее время).
	instant := time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, WeeklySlot{Weekday: 1, Slot: TimeSlotMorning}, WeeklySlotAt(instant, zurich))
	assert.Equal(t, WeeklySlot{Weekday: 1, Slot: TimeSlotMorning}, WeeklySlotAt(instant, nil))

	late := time.Date(2024, time.June, 2, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, WeeklySlot{Weekday: 1, Slot: TimeSlotEvening}, WeeklySlotAt(late, zurich))
}

func TestNewWeeklySlot(t *testing.T) {
	s, err := NewWeeklySlot(6, "afternoon")
	require.NoError(t, err)
	assert.Equal(t, TimeSlotAfternoon, s.Slot)

	_, err = NewWeeklySlot(7, "MORNING")
	assert.Error(t, err)

	_, err = NewWeeklySlot(1, "NIGHT")
	assert.Error(t, err)
}
