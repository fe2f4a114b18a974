package service

import (
	"time"

	"github.com/noah-isme/canvas-companion-api/internal/dto"
	"github.com/noah-isme/canvas-companion-api/internal/models"
)

const dueDateDisplayLayout = "January 2, 2006 at 3:04 PM"

// NormalizerService reshapes aggregated records into presentation-ready view
// models. Every operation is pure; a malformed field degrades that field and
// never the pipeline.
type NormalizerService struct{}

// NewNormalizerService constructs the normalizer.
func NewNormalizerService() *NormalizerService {
	return &NormalizerService{}
}

// NormalizeAssignments partitions assignments into homework and other,
// attaching formatted and ISO due dates. The partition is stable: order
// within each slice matches the aggregator's output order. An unparseable
// due date passes through unchanged to both derived fields.
func (s *NormalizerService) NormalizeAssignments(raw []models.Assignment) (homework, other []dto.AssignmentView) {
	homework = make([]dto.AssignmentView, 0, len(raw))
	other = make([]dto.AssignmentView, 0, len(raw))

	for _, assignment := range raw {
		view := dto.AssignmentView{
			ID:              assignment.ID,
			Name:            assignment.Name,
			CourseID:        assignment.CourseID,
			CourseName:      assignment.CourseName,
			SubmissionTypes: assignment.SubmissionTypes,
			PointsPossible:  assignment.PointsPossible,
			HTMLURL:         assignment.HTMLURL,
			DueAt:           assignment.DueAt,
		}

		if assignment.DueAt != "" {
			if due, err := time.Parse(time.RFC3339, assignment.DueAt); err == nil {
				view.DueDateFormatted = due.Format(dueDateDisplayLayout)
				view.DueDateISO = due.Format(time.RFC3339)
			} else {
				view.DueDateFormatted = assignment.DueAt
				view.DueDateISO = assignment.DueAt
			}
		}

		if assignment.IsHomework() {
			homework = append(homework, view)
		} else {
			other = append(other, view)
		}
	}

	return homework, other
}

// NormalizeGrades projects grade records down to their four optional scores.
// A missing grade block or field stays nil rather than failing.
func (s *NormalizerService) NormalizeGrades(raw []models.GradeRecord) []dto.GradeSummary {
	summaries := make([]dto.GradeSummary, 0, len(raw))
	for _, record := range raw {
		summary := dto.GradeSummary{
			CourseID:   record.CourseID,
			CourseName: record.CourseName,
		}
		if grades := record.Enrollment.Grades; grades != nil {
			summary.CurrentScore = grades.CurrentScore
			summary.FinalScore = grades.FinalScore
			summary.ComputedCurrentScore = grades.ComputedCurrentScore
			summary.ComputedFinalScore = grades.ComputedFinalScore
		}
		summaries = append(summaries, summary)
	}
	return summaries
}
