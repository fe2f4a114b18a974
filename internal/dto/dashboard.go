package dto

import "github.com/noah-isme/canvas-companion-api/internal/models"

// AssignmentView is the presentation-ready projection of an assignment.
// DueDateFormatted and DueDateISO hold the raw due_at string unchanged when
// the timestamp could not be parsed.
type AssignmentView struct {
	ID               int64    `json:"id"`
	Name             string   `json:"name"`
	CourseID         int64    `json:"course_id"`
	CourseName       string   `json:"course_name"`
	SubmissionTypes  []string `json:"submission_types"`
	PointsPossible   float64  `json:"points_possible"`
	HTMLURL          string   `json:"html_url,omitempty"`
	DueAt            string   `json:"due_at,omitempty"`
	DueDateFormatted string   `json:"due_date_formatted,omitempty"`
	DueDateISO       string   `json:"due_date_iso,omitempty"`
}

// GradeSummary projects one grade record down to its four optional scores.
// A nil score means the upstream grade block omitted the field entirely.
type GradeSummary struct {
	CourseID             int64    `json:"course_id"`
	CourseName           string   `json:"course_name"`
	CurrentScore         *float64 `json:"current_score"`
	FinalScore           *float64 `json:"final_score"`
	ComputedCurrentScore *float64 `json:"computed_current_score"`
	ComputedFinalScore   *float64 `json:"computed_final_score"`
}

// DashboardResponse is the view model consumed by the dashboard template and
// the JSON dashboard endpoint.
type DashboardResponse struct {
	Courses     []models.Course  `json:"courses"`
	Homework    []AssignmentView `json:"homework"`
	Assignments []AssignmentView `json:"assignments"`
	Grades      []GradeSummary   `json:"grades"`
}
