package schedule

import (
	"fmt"
	"sort"
)

// Window is the bookable working-hours window. StartHour is inclusive,
// EndHour exclusive, so an 8-17 window's last slot lands at 16:45.
type Window struct {
	StartHour    int
	EndHour      int
	IntervalMins int
}

// DefaultWindow is the clinic's standard booking window.
func DefaultWindow() Window {
	return Window{StartHour: 8, EndHour: 17, IntervalMins: 15}
}

func (w Window) Validate() error {
	if w.StartHour < 0 || w.StartHour > 23 {
		return fmt.Errorf("schedule: start hour %d out of range", w.StartHour)
	}
	if w.EndHour < 1 || w.EndHour > 24 {
		return fmt.Errorf("schedule: end hour %d out of range", w.EndHour)
	}
	if w.EndHour <= w.StartHour {
		return fmt.Errorf("schedule: end hour %d not after start hour %d", w.EndHour, w.StartHour)
	}
	if w.IntervalMins <= 0 || w.IntervalMins > 60 || 60%w.IntervalMins != 0 {
		return fmt.Errorf("schedule: interval %d must evenly divide an hour", w.IntervalMins)
	}
	return nil
}

// Slots generates the ordered catalog of bookable times for the window.
// Deterministic and pure; callers may invoke it per render.
func Slots(w Window) ([]TimeOfDay, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	perHour := 60 / w.IntervalMins
	out := make([]TimeOfDay, 0, (w.EndHour-w.StartHour)*perHour)
	for hour := w.StartHour; hour < w.EndHour; hour++ {
		for minute := 0; minute < 60; minute += w.IntervalMins {
			out = append(out, TimeOfDay{Hour: hour, Minute: minute})
		}
	}
	return out, nil
}

// AvailableSlot is one bookable (date, time) pair for a doctor, as served by
// the doctor-schedule-bound flow.
type AvailableSlot struct {
	Date Date      `json:"fecha"`
	Time TimeOfDay `json:"hora"`
}

// DistinctDates returns the unique dates in slots, ascending. The picker shows
// these first; times come from TimesFor once a date is chosen.
func DistinctDates(slots []AvailableSlot) []Date {
	seen := make(map[Date]struct{}, len(slots))
	out := make([]Date, 0, len(slots))
	for _, slot := range slots {
		if _, ok := seen[slot.Date]; ok {
			continue
		}
		seen[slot.Date] = struct{}{}
		out = append(out, slot.Date)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// TimesFor returns the unique times offered on date, ascending.
func TimesFor(slots []AvailableSlot, date Date) []TimeOfDay {
	seen := make(map[TimeOfDay]struct{}, len(slots))
	out := make([]TimeOfDay, 0, len(slots))
	for _, slot := range slots {
		if slot.Date != date {
			continue
		}
		if _, ok := seen[slot.Time]; ok {
			continue
		}
		seen[slot.Time] = struct{}{}
		out = append(out, slot.Time)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
