package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/canvas-companion-api/internal/models"
	"github.com/noah-isme/canvas-companion-api/pkg/fanout"
)

type canvasClient interface {
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListAssignments(ctx context.Context, courseID int64) ([]models.Assignment, error)
	ListEnrollments(ctx context.Context, courseID int64) ([]models.Enrollment, error)
}

// AggregatorService fans one fetch per course out across a bounded worker
// pool. Course listing is mandatory and its failure propagates; a failure
// inside any single course's fetch only drops that course from the result.
// Results always come back in course-list order, upstream order within a
// course, no matter which fetch finished first.
type AggregatorService struct {
	canvas  canvasClient
	metrics *MetricsService
	logger  *zap.Logger
	workers int
}

// NewAggregatorService constructs an AggregatorService with sane defaults.
func NewAggregatorService(canvas canvasClient, metrics *MetricsService, logger *zap.Logger, workers int) *AggregatorService {
	if workers <= 0 {
		workers = 4
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregatorService{
		canvas:  canvas,
		metrics: metrics,
		logger:  logger,
		workers: workers,
	}
}

// Courses lists the active courses. Every aggregation starts here.
func (s *AggregatorService) Courses(ctx context.Context) ([]models.Course, error) {
	start := time.Now()
	courses, err := s.canvas.ListCourses(ctx)
	s.metrics.ObserveCanvasRequest("courses", err, time.Since(start))
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// FetchAllAssignments returns every assignment across all active courses,
// with course identity injected into each record.
func (s *AggregatorService) FetchAllAssignments(ctx context.Context) ([]models.Assignment, error) {
	courses, err := s.Courses(ctx)
	if err != nil {
		return nil, err
	}

	results := fanout.Map(ctx, len(courses), s.workers, func(ctx context.Context, i int) ([]models.Assignment, error) {
		course := courses[i]
		if course.ID == 0 {
			return nil, nil
		}
		assignments, err := s.listAssignments(ctx, course.ID)
		if err != nil {
			return nil, err
		}
		for j := range assignments {
			assignments[j].CourseID = course.ID
			assignments[j].CourseName = course.DisplayName()
		}
		return assignments, nil
	})

	all := make([]models.Assignment, 0)
	for i, res := range results {
		if res.Err != nil {
			s.skipCourse(courses[i], "assignments", res.Err)
			continue
		}
		all = append(all, res.Value...)
	}
	return all, nil
}

// FetchAllGrades returns one grade record per student enrollment across all
// active courses. The course's assignments ride along on each record when
// their fetch succeeds; enrollments without a user id are dropped.
func (s *AggregatorService) FetchAllGrades(ctx context.Context) ([]models.GradeRecord, error) {
	courses, err := s.Courses(ctx)
	if err != nil {
		return nil, err
	}

	results := fanout.Map(ctx, len(courses), s.workers, func(ctx context.Context, i int) ([]models.GradeRecord, error) {
		course := courses[i]
		if course.ID == 0 {
			return nil, nil
		}

		enrollments, err := s.listEnrollments(ctx, course.ID)
		if err != nil {
			return nil, err
		}

		// Secondary fetch: assignment failures degrade to an empty list
		// instead of dropping the course.
		assignments, err := s.listAssignments(ctx, course.ID)
		if err != nil {
			s.logger.Warn("grade record assignments unavailable",
				zap.Int64("course_id", course.ID),
				zap.Error(err))
			assignments = nil
		}

		records := make([]models.GradeRecord, 0, len(enrollments))
		for _, enrollment := range enrollments {
			if enrollment.UserID == 0 {
				continue
			}
			records = append(records, models.GradeRecord{
				CourseID:    course.ID,
				CourseName:  course.DisplayName(),
				Enrollment:  enrollment,
				Assignments: assignments,
			})
		}
		return records, nil
	})

	all := make([]models.GradeRecord, 0)
	for i, res := range results {
		if res.Err != nil {
			s.skipCourse(courses[i], "enrollments", res.Err)
			continue
		}
		all = append(all, res.Value...)
	}
	return all, nil
}

func (s *AggregatorService) listAssignments(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	start := time.Now()
	assignments, err := s.canvas.ListAssignments(ctx, courseID)
	s.metrics.ObserveCanvasRequest("assignments", err, time.Since(start))
	return assignments, err
}

func (s *AggregatorService) listEnrollments(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	start := time.Now()
	enrollments, err := s.canvas.ListEnrollments(ctx, courseID)
	s.metrics.ObserveCanvasRequest("enrollments", err, time.Since(start))
	return enrollments, err
}

func (s *AggregatorService) skipCourse(course models.Course, resource string, err error) {
	s.metrics.RecordCourseSkipped()
	s.logger.Warn("course skipped during fan-out",
		zap.Int64("course_id", course.ID),
		zap.String("course_name", course.Name),
		zap.String("resource", resource),
		zap.Error(err))
}
