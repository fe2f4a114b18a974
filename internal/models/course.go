package models

// Course is an immutable snapshot of one Canvas course as returned by the
// course listing endpoint. Nothing here is persisted between requests.
type Course struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	CourseCode       string `json:"course_code"`
	EnrollmentTermID int64  `json:"enrollment_term_id"`
	WorkflowState    string `json:"workflow_state"`
	HTMLURL          string `json:"html_url,omitempty"`
}

// DisplayName falls back to the course code when the upstream record carries
// no name.
func (c Course) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.CourseCode != "" {
		return c.CourseCode
	}
	return "Unknown"
}
