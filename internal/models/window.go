package models

// WeeklyWindow is a recurring time span: a set of weekdays plus a start and
// end time of day. Windows never wrap past midnight; start < end always
// holds for a constructed window.
type WeeklyWindow struct {
	Days  []Weekday `json:"days"`
	Start TimeOfDay `json:"start_time"`
	End   TimeOfDay `json:"end_time"`
}

// NewWeeklyWindow validates and builds a window. Malformed windows (empty
// day set, start >= end, out-of-range times) are rejected here so the
// overlap predicates stay total.
func NewWeeklyWindow(days []Weekday, start, end TimeOfDay) (WeeklyWindow, error) {
	if len(days) == 0 {
		return WeeklyWindow{}, &WindowError{Reason: "window requires at least one day"}
	}
	seen := make(map[Weekday]struct{}, len(days))
	for _, day := range days {
		if _, ok := weekdayOrder[day]; !ok {
			return WeeklyWindow{}, &WindowError{Reason: "unknown weekday " + string(day)}
		}
		if _, dup := seen[day]; dup {
			return WeeklyWindow{}, &WindowError{Reason: "duplicate weekday " + string(day)}
		}
		seen[day] = struct{}{}
	}
	if !start.Valid() || !end.Valid() {
		return WeeklyWindow{}, &WindowError{Reason: "time of day out of range"}
	}
	if start >= end {
		return WeeklyWindow{}, &WindowError{Reason: "start time must precede end time"}
	}
	return WeeklyWindow{Days: days, Start: start, End: end}, nil
}

// WindowError reports a malformed weekly window at construction time.
type WindowError struct {
	Reason string
}

// Error implements the error interface.
func (e *WindowError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return "invalid weekly window: " + e.Reason
}

// Contains reports whether the window meets on the given day.
func (w WeeklyWindow) Contains(day Weekday) bool {
	for _, d := range w.Days {
		if d == day {
			return true
		}
	}
	return false
}

// DaysIntersect reports whether the two windows share at least one day.
func (w WeeklyWindow) DaysIntersect(other WeeklyWindow) bool {
	for _, d := range w.Days {
		if other.Contains(d) {
			return true
		}
	}
	return false
}

// OverlapsTime applies half-open interval semantics: [start, end) against
// [start, end). A window ending exactly when another begins does not
// overlap, so back-to-back classes never conflict.
func (w WeeklyWindow) OverlapsTime(other WeeklyWindow) bool {
	return w.Start < other.End && other.Start < w.End
}

// ConflictsWith reports a scheduling conflict: a shared day and overlapping
// times. The predicate is symmetric; callers must exclude self-comparison by
// activity identity, not by value, because two distinct activities with
// identical windows still conflict with each other.
func (w WeeklyWindow) ConflictsWith(other WeeklyWindow) bool {
	return w.DaysIntersect(other) && w.OverlapsTime(other)
}
