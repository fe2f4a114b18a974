package models

// Submission type tags Canvas uses that mark an assignment as homework.
const (
	SubmissionOnlineUpload    = "online_upload"
	SubmissionOnlineTextEntry = "online_text_entry"
)

// Assignment is one Canvas assignment. CourseID and CourseName are not part
// of the per-course response; the aggregator injects them from the course it
// iterated before the record is accumulated.
type Assignment struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	SubmissionTypes []string `json:"submission_types"`
	DueAt           string   `json:"due_at,omitempty"`
	PointsPossible  float64  `json:"points_possible"`
	HTMLURL         string   `json:"html_url,omitempty"`

	CourseID   int64  `json:"course_id"`
	CourseName string `json:"course_name"`
}

// IsHomework reports whether the submission-type set intersects the homework
// vocabulary (online_upload, online_text_entry).
func (a Assignment) IsHomework() bool {
	for _, st := range a.SubmissionTypes {
		if st == SubmissionOnlineUpload || st == SubmissionOnlineTextEntry {
			return true
		}
	}
	return false
}
