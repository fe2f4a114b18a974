package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/canvas-companion-api/internal/models"
)

type fakeCanvas struct {
	mu sync.Mutex

	courses    []models.Course
	coursesErr error

	assignments    map[int64][]models.Assignment
	assignmentsErr map[int64]error

	enrollments    map[int64][]models.Enrollment
	enrollmentsErr map[int64]error

	// delay per course id, to force out-of-order completion in tests
	delay map[int64]time.Duration
}

func (f *fakeCanvas) ListCourses(context.Context) ([]models.Course, error) {
	return f.courses, f.coursesErr
}

func (f *fakeCanvas) ListAssignments(_ context.Context, courseID int64) ([]models.Assignment, error) {
	f.sleep(courseID)
	if err := f.assignmentsErr[courseID]; err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Assignment(nil), f.assignments[courseID]...), nil
}

func (f *fakeCanvas) ListEnrollments(_ context.Context, courseID int64) ([]models.Enrollment, error) {
	f.sleep(courseID)
	if err := f.enrollmentsErr[courseID]; err != nil {
		return nil, err
	}
	return f.enrollments[courseID], nil
}

func (f *fakeCanvas) sleep(courseID int64) {
	if d := f.delay[courseID]; d > 0 {
		time.Sleep(d)
	}
}

func floatPtr(v float64) *float64 { return &v }

func testCourses() []models.Course {
	return []models.Course{
		{ID: 101, Name: "Biology"},
		{ID: 102, Name: "Chemistry"},
		{ID: 103, Name: "History"},
	}
}

func newTestAggregator(canvas canvasClient) *AggregatorService {
	return NewAggregatorService(canvas, NewMetricsService(), zap.NewNop(), 3)
}

func TestFetchAllAssignmentsInjectsCourseIdentity(t *testing.T) {
	canvas := &fakeCanvas{
		courses: testCourses(),
		assignments: map[int64][]models.Assignment{
			101: {{ID: 1, Name: "Lab Report"}},
			102: {{ID: 2, Name: "Titration"}, {ID: 3, Name: "Quiz"}},
			103: {{ID: 4, Name: "Essay"}},
		},
	}

	all, err := newTestAggregator(canvas).FetchAllAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 4)
	for _, assignment := range all {
		assert.NotZero(t, assignment.CourseID)
		assert.NotEmpty(t, assignment.CourseName)
	}
	assert.Equal(t, "Biology", all[0].CourseName)
	assert.Equal(t, int64(102), all[1].CourseID)
}

func TestFetchAllAssignmentsPreservesCourseOrderUnderConcurrency(t *testing.T) {
	// The first course is the slowest; results must still come back in
	// course-list order, not completion order.
	canvas := &fakeCanvas{
		courses: testCourses(),
		assignments: map[int64][]models.Assignment{
			101: {{ID: 1, Name: "Slow"}},
			102: {{ID: 2, Name: "Fast"}},
			103: {{ID: 3, Name: "Faster"}},
		},
		delay: map[int64]time.Duration{101: 20 * time.Millisecond, 102: 5 * time.Millisecond},
	}

	all, err := newTestAggregator(canvas).FetchAllAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{101, 102, 103}, []int64{all[0].CourseID, all[1].CourseID, all[2].CourseID})
}

func TestFetchAllAssignmentsSkipsFailingCourse(t *testing.T) {
	canvas := &fakeCanvas{
		courses: testCourses(),
		assignments: map[int64][]models.Assignment{
			101: {{ID: 1, Name: "Lab Report"}},
			103: {{ID: 4, Name: "Essay"}},
		},
		assignmentsErr: map[int64]error{102: assert.AnError},
	}

	all, err := newTestAggregator(canvas).FetchAllAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(101), all[0].CourseID)
	assert.Equal(t, int64(103), all[1].CourseID)
}

func TestFetchAllAssignmentsSkipsCoursesWithoutID(t *testing.T) {
	canvas := &fakeCanvas{
		courses: []models.Course{{ID: 0, Name: "Ghost"}, {ID: 101, Name: "Biology"}},
		assignments: map[int64][]models.Assignment{
			101: {{ID: 1, Name: "Lab Report"}},
		},
	}

	all, err := newTestAggregator(canvas).FetchAllAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, int64(101), all[0].CourseID)
}

func TestCourseListingFailurePropagatesToBothFanOuts(t *testing.T) {
	canvas := &fakeCanvas{coursesErr: assert.AnError}
	aggregator := newTestAggregator(canvas)

	_, assignmentsErr := aggregator.FetchAllAssignments(context.Background())
	require.Error(t, assignmentsErr)
	assert.ErrorIs(t, assignmentsErr, assert.AnError)

	_, gradesErr := aggregator.FetchAllGrades(context.Background())
	require.Error(t, gradesErr)
	assert.ErrorIs(t, gradesErr, assert.AnError)
}

func TestFetchAllGradesDropsUserlessEnrollments(t *testing.T) {
	canvas := &fakeCanvas{
		courses: []models.Course{{ID: 101, Name: "Biology"}},
		enrollments: map[int64][]models.Enrollment{
			101: {
				{ID: 1, UserID: 42, Grades: &models.EnrollmentGrades{CurrentScore: floatPtr(88.5)}},
				{ID: 2, UserID: 0},
			},
		},
	}

	grades, err := newTestAggregator(canvas).FetchAllGrades(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, int64(42), grades[0].Enrollment.UserID)
	assert.Equal(t, "Biology", grades[0].CourseName)
}

func TestFetchAllGradesKeepsCourseWhenAssignmentsFail(t *testing.T) {
	canvas := &fakeCanvas{
		courses: []models.Course{{ID: 101, Name: "Biology"}},
		enrollments: map[int64][]models.Enrollment{
			101: {{ID: 1, UserID: 42}},
		},
		assignmentsErr: map[int64]error{101: assert.AnError},
	}

	grades, err := newTestAggregator(canvas).FetchAllGrades(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Empty(t, grades[0].Assignments)
}

func TestFetchAllGradesSkipsCourseWhenEnrollmentsFail(t *testing.T) {
	canvas := &fakeCanvas{
		courses: testCourses(),
		enrollments: map[int64][]models.Enrollment{
			101: {{ID: 1, UserID: 42}},
			103: {{ID: 3, UserID: 43}},
		},
		enrollmentsErr: map[int64]error{102: assert.AnError},
	}

	grades, err := newTestAggregator(canvas).FetchAllGrades(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 2)
	assert.Equal(t, int64(101), grades[0].CourseID)
	assert.Equal(t, int64(103), grades[1].CourseID)
}

func TestFetchAllGradesCarriesAssignmentsAlongside(t *testing.T) {
	canvas := &fakeCanvas{
		courses: []models.Course{{ID: 101, Name: "Biology"}},
		enrollments: map[int64][]models.Enrollment{
			101: {{ID: 1, UserID: 42}},
		},
		assignments: map[int64][]models.Assignment{
			101: {{ID: 7, Name: "Lab Report"}},
		},
	}

	grades, err := newTestAggregator(canvas).FetchAllGrades(context.Background())
	require.NoError(t, err)
	require.Len(t, grades, 1)
	require.Len(t, grades[0].Assignments, 1)
	assert.Equal(t, "Lab Report", grades[0].Assignments[0].Name)
}
