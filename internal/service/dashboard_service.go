package service

import (
	"context"

	"github.com/noah-isme/canvas-companion-api/internal/dto"
)

// DashboardService composes the full dashboard view model: active courses,
// the homework/other assignment partition, and grade summaries. Course-list
// failure propagates; per-course gaps have already been absorbed upstream.
type DashboardService struct {
	aggregator *AggregatorService
	normalizer *NormalizerService
}

// NewDashboardService constructs the dashboard composer.
func NewDashboardService(aggregator *AggregatorService, normalizer *NormalizerService) *DashboardService {
	return &DashboardService{aggregator: aggregator, normalizer: normalizer}
}

// Build assembles a fresh view model. Everything is fetched per call; nothing
// is cached between requests.
func (s *DashboardService) Build(ctx context.Context) (*dto.DashboardResponse, error) {
	courses, err := s.aggregator.Courses(ctx)
	if err != nil {
		return nil, err
	}
	assignments, err := s.aggregator.FetchAllAssignments(ctx)
	if err != nil {
		return nil, err
	}
	grades, err := s.aggregator.FetchAllGrades(ctx)
	if err != nil {
		return nil, err
	}

	homework, other := s.normalizer.NormalizeAssignments(assignments)

	return &dto.DashboardResponse{
		Courses:     courses,
		Homework:    homework,
		Assignments: other,
		Grades:      s.normalizer.NormalizeGrades(grades),
	}, nil
}
