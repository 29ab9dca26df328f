package service

import "github.com/noah-isme/campus-enroll-api/internal/models"

// detectConflicts enumerates schedule clashes for each roster enrollment
// against the full set of active enrollments. Both inputs arrive already
// ordered (roster order and natural enrollment order respectively); the
// output preserves them, so repeated runs over the same data are
// bit-identical. Peers are excluded by enrollment ID, not window value:
// two distinct enrollments with identical windows still clash.
func detectConflicts(roster, active []models.EnrollmentRef) []models.ConflictReport {
	byStudent := make(map[string][]models.EnrollmentRef, len(active))
	for _, ref := range active {
		byStudent[ref.StudentID] = append(byStudent[ref.StudentID], ref)
	}

	var reports []models.ConflictReport
	for _, enrollment := range roster {
		var conflicting []models.Activity
		for _, peer := range byStudent[enrollment.StudentID] {
			if peer.EnrollmentID == enrollment.EnrollmentID {
				continue
			}
			if enrollment.Activity.Window.ConflictsWith(peer.Activity.Window) {
				conflicting = append(conflicting, peer.Activity)
			}
		}
		if len(conflicting) > 0 {
			reports = append(reports, models.ConflictReport{
				Enrollment:  enrollment,
				Conflicting: conflicting,
			})
		}
	}
	return reports
}
