package models

// EnrollmentRef ties an active enrollment to the activity it books and the
// student holding it. It is the unit the conflict enumerator works over.
type EnrollmentRef struct {
	EnrollmentID string   `json:"enrollment_id"`
	StudentID    string   `json:"student_id"`
	Activity     Activity `json:"activity"`
}

// ConflictReport lists the peer activities that clash with one enrollment's
// activity. Reports are produced fresh on each enumeration and are never
// persisted. The same pairwise clash appears once per affected enrollment,
// from that enrollment's viewpoint.
type ConflictReport struct {
	Enrollment  EnrollmentRef `json:"enrollment"`
	Conflicting []Activity    `json:"conflicting_activities"`
}
