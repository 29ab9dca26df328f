package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustWindow(t *testing.T, days []Weekday, start, end string) WeeklyWindow {
	t.Helper()
	s, err := ParseTimeOfDay(start)
	require.NoError(t, err)
	e, err := ParseTimeOfDay(end)
	require.NoError(t, err)
	w, err := NewWeeklyWindow(days, s, e)
	require.NoError(t, err)
	return w
}

func TestNewWeeklyWindowRejectsMalformed(t *testing.T) {
	nine, _ := ParseTimeOfDay("09:00")
	ten, _ := ParseTimeOfDay("10:00")

	_, err := NewWeeklyWindow(nil, nine, ten)
	assert.Error(t, err, "empty day set")

	_, err = NewWeeklyWindow([]Weekday{Monday}, ten, nine)
	assert.Error(t, err, "start after end")

	_, err = NewWeeklyWindow([]Weekday{Monday}, nine, nine)
	assert.Error(t, err, "zero length")

	_, err = NewWeeklyWindow([]Weekday{Monday, Monday}, nine, ten)
	assert.Error(t, err, "duplicate day")

	_, err = NewWeeklyWindow([]Weekday{"Moonday"}, nine, ten)
	assert.Error(t, err, "unknown day")
}

func TestConflictsBoundaryIsNotOverlap(t *testing.T) {
	a := mustWindow(t, []Weekday{Monday}, "09:00", "10:00")
	b := mustWindow(t, []Weekday{Monday}, "10:00", "11:00")

	assert.False(t, a.ConflictsWith(b))
	assert.False(t, b.ConflictsWith(a))
}

func TestConflictsDisjointDays(t *testing.T) {
	a := mustWindow(t, []Weekday{Monday}, "09:00", "10:00")
	b := mustWindow(t, []Weekday{Tuesday}, "09:00", "10:00")

	assert.False(t, a.ConflictsWith(b))
}

func TestConflictsSharedDayOverlap(t *testing.T) {
	a := mustWindow(t, []Weekday{Monday, Wednesday}, "09:00", "10:30")
	b := mustWindow(t, []Weekday{Wednesday, Friday}, "10:00", "11:00")

	assert.True(t, a.ConflictsWith(b))
	assert.True(t, b.ConflictsWith(a), "conflict is symmetric")
}

func TestConflictsIdenticalWindows(t *testing.T) {
	a := mustWindow(t, []Weekday{Thursday}, "13:00", "14:00")
	b := mustWindow(t, []Weekday{Thursday}, "13:00", "14:00")

	assert.True(t, a.ConflictsWith(b), "distinct activities with equal windows still clash")
}

func TestConflictSymmetryAcrossGrid(t *testing.T) {
	windows := []WeeklyWindow{
		mustWindow(t, []Weekday{Monday}, "08:00", "09:30"),
		mustWindow(t, []Weekday{Monday, Friday}, "09:00", "10:00"),
		mustWindow(t, []Weekday{Friday}, "09:45", "11:00"),
		mustWindow(t, []Weekday{Tuesday}, "08:00", "18:00"),
	}
	for i, a := range windows {
		for j, b := range windows {
			assert.Equalf(t, a.ConflictsWith(b), b.ConflictsWith(a), "windows %d and %d", i, j)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	v, err := ParseTimeOfDay("13:45")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(13*60+45), v)
	assert.Equal(t, "13:45", v.String())

	v, err = ParseTimeOfDay("08:00:00")
	require.NoError(t, err)
	assert.Equal(t, TimeOfDay(8*60), v)

	_, err = ParseTimeOfDay("24:00")
	assert.Error(t, err)

	_, err = ParseTimeOfDay("not-a-time")
	assert.Error(t, err)
}
