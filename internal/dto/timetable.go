package dto

import "github.com/noah-isme/campus-enroll-api/internal/models"

// TimetableCell is one occupied grid cell.
type TimetableCell struct {
	Day      models.Weekday          `json:"day"`
	Course   string                  `json:"course_id"`
	Code     string                  `json:"code"`
	Name     string                  `json:"name"`
	Room     string                  `json:"room_number,omitempty"`
	Category models.ActivityCategory `json:"category"`
	Start    models.TimeOfDay        `json:"start_time"`
	End      models.TimeOfDay        `json:"end_time"`
}

// TimetableRow groups the cells of one slot anchor.
type TimetableRow struct {
	Slot  models.TimeOfDay `json:"slot"`
	Cells []TimetableCell  `json:"cells"`
}

// TimetableResponse is the rendered weekly grid.
type TimetableResponse struct {
	Days []models.Weekday `json:"days"`
	Rows []TimetableRow   `json:"rows"`
}
