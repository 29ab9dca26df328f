package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slotTable(t *testing.T) []TimeOfDay {
	t.Helper()
	start, err := ParseTimeOfDay("08:00")
	require.NoError(t, err)
	end, err := ParseTimeOfDay("18:00")
	require.NoError(t, err)
	return SlotTable(start, end, 60)
}

func activity(t *testing.T, code string, days []Weekday, start, end string) Activity {
	t.Helper()
	return Activity{
		CourseID: "course-" + code,
		Code:     code,
		Category: ActivityEnrolled,
		Window:   mustWindow(t, days, start, end),
	}
}

func TestSlotTableHourly(t *testing.T) {
	slots := slotTable(t)
	require.Len(t, slots, 11)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "18:00", slots[10].String())
}

func TestGridPlacesActivityAcrossCoveredSlots(t *testing.T) {
	a := activity(t, "CS101", []Weekday{Monday, Wednesday}, "09:00", "11:00")
	grid := BuildTimetableGrid([]Activity{a}, DefaultWeek, slotTable(t))

	// 09:00 and 10:00 anchors fall inside [09:00, 11:00); 11:00 does not.
	got, ok := grid.Cell(Monday, 1)
	require.True(t, ok)
	assert.Equal(t, "CS101", got.Code)
	_, ok = grid.Cell(Monday, 2)
	assert.True(t, ok)
	_, ok = grid.Cell(Monday, 3)
	assert.False(t, ok)

	_, ok = grid.Cell(Wednesday, 1)
	assert.True(t, ok)
	_, ok = grid.Cell(Tuesday, 1)
	assert.False(t, ok)
}

func TestGridFirstMatchWins(t *testing.T) {
	x := activity(t, "X", []Weekday{Monday}, "09:00", "10:00")
	y := activity(t, "Y", []Weekday{Monday}, "09:00", "10:00")
	slots := slotTable(t)

	grid := BuildTimetableGrid([]Activity{x, y}, DefaultWeek, slots)
	got, ok := grid.Cell(Monday, 1)
	require.True(t, ok)
	assert.Equal(t, "X", got.Code)

	grid = BuildTimetableGrid([]Activity{y, x}, DefaultWeek, slots)
	got, ok = grid.Cell(Monday, 1)
	require.True(t, ok)
	assert.Equal(t, "Y", got.Code, "reversed input order flips the cell")
}

func TestGridDeterministic(t *testing.T) {
	activities := []Activity{
		activity(t, "A", []Weekday{Monday, Friday}, "08:30", "10:00"),
		activity(t, "B", []Weekday{Tuesday}, "13:00", "15:00"),
		activity(t, "C", []Weekday{Friday}, "09:00", "09:30"),
	}
	slots := slotTable(t)

	first := BuildTimetableGrid(activities, DefaultWeek, slots)
	second := BuildTimetableGrid(activities, DefaultWeek, slots)

	for slot := range slots {
		for _, day := range DefaultWeek {
			a1, ok1 := first.Cell(day, slot)
			a2, ok2 := second.Cell(day, slot)
			assert.Equal(t, ok1, ok2)
			assert.Equal(t, a1, a2)
		}
	}
}

func TestGridSubSlotActivityMayOccupyNoCells(t *testing.T) {
	// 09:15–09:45 straddles no hourly anchor.
	a := activity(t, "SHORT", []Weekday{Monday}, "09:15", "09:45")
	grid := BuildTimetableGrid([]Activity{a}, DefaultWeek, slotTable(t))

	for slot := range grid.Slots() {
		_, ok := grid.Cell(Monday, slot)
		assert.False(t, ok)
	}
}

func TestGridOffsetActivityStillPlacedByAnchor(t *testing.T) {
	// Starts between anchors; covers the 10:00 anchor only.
	a := activity(t, "OFF", []Weekday{Thursday}, "09:30", "10:30")
	grid := BuildTimetableGrid([]Activity{a}, DefaultWeek, slotTable(t))

	_, ok := grid.Cell(Thursday, 1)
	assert.False(t, ok)
	got, ok := grid.Cell(Thursday, 2)
	require.True(t, ok)
	assert.Equal(t, "OFF", got.Code)
}
