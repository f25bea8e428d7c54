package domain

import (
	"regexp"
	"time"
)

var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// TimeOfDay is a wall-clock time in HH:MM form. The zero-padded format
// makes lexical comparison agree with chronological order.
type TimeOfDay string

// ParseTimeOfDay validates an HH:MM string
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !timeOfDayPattern.MatchString(s) {
		return "", ErrInvalidTimeOfDay
	}
	return TimeOfDay(s), nil
}

// TimeOfDayFrom extracts the HH:MM wall-clock time from t
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay(t.Format("15:04"))
}

// IsValid reports whether the value is a well-formed HH:MM time
func (t TimeOfDay) IsValid() bool {
	return timeOfDayPattern.MatchString(string(t))
}

func (t TimeOfDay) String() string {
	return string(t)
}

// TimeSlot is a closed interval of times within a single day
type TimeSlot struct {
	Start TimeOfDay `json:"start"`
	End   TimeOfDay `json:"end"`
}

// Validate checks slot times are well formed and ordered
func (s TimeSlot) Validate() error {
	if !s.Start.IsValid() || !s.End.IsValid() {
		return ErrInvalidTimeOfDay
	}
	if s.Start >= s.End {
		return ErrInvalidTimeSlot
	}
	return nil
}

// Contains reports whether t falls within the slot, boundaries included
func (s TimeSlot) Contains(t TimeOfDay) bool {
	return s.Start <= t && t <= s.End
}

// DaySchedule describes opening hours for one weekday
type DaySchedule struct {
	IsOpen bool       `json:"isOpen"`
	Slots  []TimeSlot `json:"slots"`
}

// WeekSchedule maps lowercase weekday names (monday..sunday) to their
// day schedules. A missing weekday means closed.
type WeekSchedule map[string]DaySchedule

// WeekdayKey returns the schedule key for a weekday
func WeekdayKey(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	case time.Sunday:
		return "sunday"
	}
	return ""
}

// WeekdayKeys lists the schedule keys Monday-first
var WeekdayKeys = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

var validWeekdayKey = func() map[string]bool {
	m := make(map[string]bool, len(WeekdayKeys))
	for _, k := range WeekdayKeys {
		m[k] = true
	}
	return m
}()

// Validate checks that every key is a weekday name and every slot of an
// open day is well formed. Closed days may carry stale slots, they are
// simply never consulted.
func (w WeekSchedule) Validate() error {
	for key, day := range w {
		if !validWeekdayKey[key] {
			return ErrInvalidDate
		}
		if !day.IsOpen {
			continue
		}
		for _, slot := range day.Slots {
			if err := slot.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// OpenSlotsOn returns the slot list for a weekday, or nil when the day is
// closed or absent from the schedule.
func (w WeekSchedule) OpenSlotsOn(weekday time.Weekday) []TimeSlot {
	day, ok := w[WeekdayKey(weekday)]
	if !ok || !day.IsOpen {
		return nil
	}
	return day.Slots
}

// IsOpenAt reports whether the schedule is open at the given weekday and
// wall-clock time. Slot boundaries count as open.
func (w WeekSchedule) IsOpenAt(weekday time.Weekday, t TimeOfDay) bool {
	for _, slot := range w.OpenSlotsOn(weekday) {
		if slot.Contains(t) {
			return true
		}
	}
	return false
}
