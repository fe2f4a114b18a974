package models

// EnrollmentGrades is the nested grade block on an enrollment. Each score is
// independently optional upstream, so every field is a pointer.
type EnrollmentGrades struct {
	CurrentScore         *float64 `json:"current_score"`
	FinalScore           *float64 `json:"final_score"`
	ComputedCurrentScore *float64 `json:"computed_current_score"`
	ComputedFinalScore   *float64 `json:"computed_final_score"`
}

// Enrollment is one Canvas enrollment record. Records without a user id are
// dropped during aggregation.
type Enrollment struct {
	ID     int64             `json:"id"`
	UserID int64             `json:"user_id"`
	Type   string            `json:"type"`
	Grades *EnrollmentGrades `json:"grades,omitempty"`
}

// GradeRecord pairs one enrollment with its course identity and the course's
// assignment list. Assignments are carried for downstream consumers; no
// cross-referencing happens during aggregation.
type GradeRecord struct {
	CourseID    int64        `json:"course_id"`
	CourseName  string       `json:"course_name"`
	Enrollment  Enrollment   `json:"enrollment"`
	Assignments []Assignment `json:"assignments"`
}
