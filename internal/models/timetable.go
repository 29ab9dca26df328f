package models

// TimetableGrid is a read-only Day × Slot lookup built for one render
// request. At most one activity occupies a cell.
type TimetableGrid struct {
	days  []Weekday
	slots []TimeOfDay
	cells map[gridKey]Activity
}

type gridKey struct {
	day  Weekday
	slot int
}

// Days returns the grid's day columns in display order.
func (g *TimetableGrid) Days() []Weekday {
	return g.days
}

// Slots returns the ascending slot anchors.
func (g *TimetableGrid) Slots() []TimeOfDay {
	return g.slots
}

// Cell returns the activity shown at (day, slot index), if any.
func (g *TimetableGrid) Cell(day Weekday, slot int) (Activity, bool) {
	a, ok := g.cells[gridKey{day: day, slot: slot}]
	return a, ok
}

// BuildTimetableGrid places activities onto a Day × Slot grid. For each cell
// the first activity (in input order) meeting on that day whose window
// covers the slot anchor wins; later activities sharing the cell are not
// shown. That first-match rule is a display limitation only, conflict
// detection is the enumerator's job. An activity spans every slot whose
// anchor falls in [start, end), so one shorter than the slot interval and
// straddling no anchor occupies zero cells; the grid does not round.
func BuildTimetableGrid(activities []Activity, days []Weekday, slots []TimeOfDay) *TimetableGrid {
	grid := &TimetableGrid{
		days:  days,
		slots: slots,
		cells: make(map[gridKey]Activity),
	}
	for slotIdx, anchor := range slots {
		for _, day := range days {
			for _, activity := range activities {
				if !activity.Window.Contains(day) {
					continue
				}
				if anchor < activity.Window.Start || anchor >= activity.Window.End {
					continue
				}
				grid.cells[gridKey{day: day, slot: slotIdx}] = activity
				break
			}
		}
	}
	return grid
}

// SlotTable builds ascending anchors from start to end inclusive, stepping
// by interval minutes. The default 08:00–18:00 hourly table yields eleven
// anchors.
func SlotTable(start, end TimeOfDay, intervalMinutes int) []TimeOfDay {
	if intervalMinutes <= 0 || start >= end {
		return nil
	}
	var slots []TimeOfDay
	for anchor := start; anchor <= end; anchor += TimeOfDay(intervalMinutes) {
		slots = append(slots, anchor)
	}
	return slots
}
