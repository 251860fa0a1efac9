package domain

import "time"

// AvailabilitySlot is a concrete date plus start/end window owned by exactly
// one participant (candidate or interviewer) and scoped to one application.
// Duplicate (owner, application, start, end) submissions are rejected.
type AvailabilitySlot struct {
	SlotID        string           `json:"slotID"`
	ApplicationID string           `json:"applicationID"`
	OwnerUserID   string           `json:"ownerUserID"`
	StartsAt      time.Time        `json:"startsAt"`
	EndsAt        time.Time        `json:"endsAt"`
	OriginStage   ApplicationStage `json:"originStage"` // stage the slot was submitted in
	AuditFields
}

// Expired reports whether the slot's end instant has passed. Expired slots
// are kept for history but excluded from active matching.
func (s *AvailabilitySlot) Expired(now time.Time) bool {
	return s.EndsAt.Before(now)
}

// Overlaps reports whether two slots share a weekday and an overlapping
// time-of-day window.
func (s *AvailabilitySlot) Overlaps(other *AvailabilitySlot) bool {
	if s.StartsAt.Weekday() != other.StartsAt.Weekday() {
		return false
	}
	return minuteOfDay(s.StartsAt) < minuteOfDay(other.EndsAt) &&
		minuteOfDay(other.StartsAt) < minuteOfDay(s.EndsAt)
}

func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// Window returns the slot's weekday and time-of-day window.
func (s *AvailabilitySlot) Window() MatchWindow {
	return MatchWindow{
		Day:         s.StartsAt.Weekday(),
		StartMinute: minuteOfDay(s.StartsAt),
		EndMinute:   minuteOfDay(s.EndsAt),
	}
}

// MatchWindow is one ranked suggestion produced by the match engine: a
// weekday plus a time-of-day window both sides can attend.
type MatchWindow struct {
	Day         time.Weekday `json:"dayOfWeek"`
	StartMinute int          `json:"startMinute"` // minutes from midnight
	EndMinute   int          `json:"endMinute"`
}

// Intersect returns the overlap of two windows on the same weekday. The
// second return is false when the windows do not overlap.
func (w MatchWindow) Intersect(other MatchWindow) (MatchWindow, bool) {
	if w.Day != other.Day {
		return MatchWindow{}, false
	}
	start := w.StartMinute
	if other.StartMinute > start {
		start = other.StartMinute
	}
	end := w.EndMinute
	if other.EndMinute < end {
		end = other.EndMinute
	}
	if start >= end {
		return MatchWindow{}, false
	}
	return MatchWindow{Day: w.Day, StartMinute: start, EndMinute: end}, true
}

// MondayFirst maps time.Weekday (Sunday=0) onto a Monday-first ordering used
// to rank suggestions.
func MondayFirst(d time.Weekday) int {
	return (int(d) + 6) % 7
}
