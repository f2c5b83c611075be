package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotsDefaultWindow(t *testing.T) {
	slots, err := Slots(DefaultWindow())
	require.NoError(t, err)

	// 8→17 exclusive at 15 minutes: (17-8)*4 entries.
	require.Len(t, slots, 36)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "16:45", slots[len(slots)-1].String())

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Before(slots[i]),
			"slots must be strictly ascending at %d: %s vs %s", i, slots[i-1], slots[i])
	}
}

func TestSlotsDeterministic(t *testing.T) {
	first, err := Slots(DefaultWindow())
	require.NoError(t, err)
	second, err := Slots(DefaultWindow())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSlotsExtendedWindow(t *testing.T) {
	slots, err := Slots(Window{StartHour: 8, EndHour: 18, IntervalMins: 15})
	require.NoError(t, err)
	require.Len(t, slots, 40)
	assert.Equal(t, "17:45", slots[len(slots)-1].String())
}

func TestSlotsHalfHourInterval(t *testing.T) {
	slots, err := Slots(Window{StartHour: 9, EndHour: 12, IntervalMins: 30})
	require.NoError(t, err)
	require.Len(t, slots, 6)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "11:30", slots[len(slots)-1].String())
}

func TestWindowValidate(t *testing.T) {
	tests := []struct {
		name   string
		window Window
	}{
		{"end before start", Window{StartHour: 17, EndHour: 8, IntervalMins: 15}},
		{"end equals start", Window{StartHour: 8, EndHour: 8, IntervalMins: 15}},
		{"zero interval", Window{StartHour: 8, EndHour: 17, IntervalMins: 0}},
		{"interval not dividing hour", Window{StartHour: 8, EndHour: 17, IntervalMins: 25}},
		{"negative start", Window{StartHour: -1, EndHour: 17, IntervalMins: 15}},
		{"end past midnight", Window{StartHour: 8, EndHour: 25, IntervalMins: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Slots(tt.window)
			assert.Error(t, err)
		})
	}
}

func TestDistinctDatesAndTimesFor(t *testing.T) {
	d1, _ := NewDate(2025, 3, 10)
	d2, _ := NewDate(2025, 3, 11)
	slots := []AvailableSlot{
		{Date: d2, Time: TimeOfDay{Hour: 9, Minute: 0}},
		{Date: d1, Time: TimeOfDay{Hour: 10, Minute: 30}},
		{Date: d1, Time: TimeOfDay{Hour: 8, Minute: 15}},
		{Date: d1, Time: TimeOfDay{Hour: 8, Minute: 15}}, // duplicate
		{Date: d2, Time: TimeOfDay{Hour: 9, Minute: 0}},  // duplicate
	}

	dates := DistinctDates(slots)
	require.Len(t, dates, 2)
	assert.Equal(t, d1, dates[0])
	assert.Equal(t, d2, dates[1])

	times := TimesFor(slots, d1)
	require.Len(t, times, 2)
	assert.Equal(t, "08:15", times[0].String())
	assert.Equal(t, "10:30", times[1].String())

	assert.Empty(t, TimesFor(slots, Date{Year: 2030, Month: 1, Day: 1}))
}
