package models

import "fmt"

// Weekday names a day of the week as stored in the courses.days column.
type Weekday string

// Days of the week in display order. The default rendered week covers
// Monday through Friday; Saturday and Sunday exist for parsing so that a
// widened week definition needs only a config change.
const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// DefaultWeek is the five-day week used by the timetable grid unless
// configured otherwise.
var DefaultWeek = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayOrder = map[Weekday]int{
	Monday:    0,
	Tuesday:   1,
	Wednesday: 2,
	Thursday:  3,
	Friday:    4,
	Saturday:  5,
	Sunday:    6,
}

// ParseWeekday validates a raw day name.
func ParseWeekday(raw string) (Weekday, error) {
	day := Weekday(raw)
	if _, ok := weekdayOrder[day]; !ok {
		return "", fmt.Errorf("unknown weekday %q", raw)
	}
	return day, nil
}

// ParseWeekdays validates a list of day names preserving input order.
func ParseWeekdays(raw []string) ([]Weekday, error) {
	days := make([]Weekday, 0, len(raw))
	for _, r := range raw {
		day, err := ParseWeekday(r)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}
	return days, nil
}
