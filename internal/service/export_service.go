package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/canvas-companion-api/internal/dto"
	appErrors "github.com/noah-isme/canvas-companion-api/pkg/errors"
	"github.com/noah-isme/canvas-companion-api/pkg/export"
)

const unknownScore = "unknown"

// ExportService renders the aggregated view as downloadable CSV or PDF
// documents. Data is re-fetched per export, same as the dashboard.
type ExportService struct {
	dashboard *DashboardService
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
}

// ExportResult is a rendered download.
type ExportResult struct {
	Filename    string
	ContentType string
	Content     []byte
}

// NewExportService constructs the export service.
func NewExportService(dashboard *DashboardService) *ExportService {
	return &ExportService{
		dashboard: dashboard,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
	}
}

// Grades exports one row per grade summary.
func (s *ExportService) Grades(ctx context.Context, format export.Format) (*ExportResult, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	view, err := s.dashboard.Build(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Course ID", "Course", "Current Score", "Final Score", "Computed Current", "Computed Final"},
	}
	for _, grade := range view.Grades {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Course ID":        strconv.FormatInt(grade.CourseID, 10),
			"Course":           grade.CourseName,
			"Current Score":    formatScore(grade.CurrentScore),
			"Final Score":      formatScore(grade.FinalScore),
			"Computed Current": formatScore(grade.ComputedCurrentScore),
			"Computed Final":   formatScore(grade.ComputedFinalScore),
		})
	}

	return s.render(dataset, "grades", format)
}

// Assignments exports homework and other assignments in one table, homework
// first, preserving pipeline order within each category.
func (s *ExportService) Assignments(ctx context.Context, format export.Format) (*ExportResult, error) {
	if !format.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	view, err := s.dashboard.Build(ctx)
	if err != nil {
		return nil, err
	}

	dataset := export.Dataset{
		Headers: []string{"Course", "Assignment", "Category", "Due Date", "Submission Types"},
	}
	appendRows := func(views []dto.AssignmentView, category string) {
		for _, assignment := range views {
			due := assignment.DueDateFormatted
			if due == "" {
				due = "no due date"
			}
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Course":           assignment.CourseName,
				"Assignment":       assignment.Name,
				"Category":         category,
				"Due Date":         due,
				"Submission Types": strings.Join(assignment.SubmissionTypes, ", "),
			})
		}
	}
	appendRows(view.Homework, "homework")
	appendRows(view.Assignments, "other")

	return s.render(dataset, "assignments", format)
}

func (s *ExportService) render(dataset export.Dataset, name string, format export.Format) (*ExportResult, error) {
	filename := fmt.Sprintf("%s-%s.%s", name, time.Now().UTC().Format("2006-01-02"), format)

	var content []byte
	var err error
	switch format {
	case export.FormatPDF:
		content, err = s.pdf.Render(dataset, fmt.Sprintf("Canvas %s", name))
	default:
		content, err = s.csv.Render(dataset)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render export")
	}

	return &ExportResult{
		Filename:    filename,
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

func formatScore(score *float64) string {
	if score == nil {
		return unknownScore
	}
	return strconv.FormatFloat(*score, 'f', -1, 64)
}
