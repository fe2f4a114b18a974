package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/noah-isme/canvas-companion-api/internal/models"
	"github.com/noah-isme/canvas-companion-api/pkg/config"
	appErrors "github.com/noah-isme/canvas-companion-api/pkg/errors"
)

// CanvasRepository issues authenticated calls against a Canvas-compatible
// REST API. It fetches the first page only and never retries; both are
// documented limits of this client, not defects. Callers own all failure
// policy above single-call granularity.
type CanvasRepository struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewCanvasRepository validates the credential material up front so that a
// missing base URL or token surfaces before any network I/O.
func NewCanvasRepository(cfg config.CanvasConfig) (*CanvasRepository, error) {
	if cfg.BaseURL == "" {
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "CANVAS_BASE_URL is not set")
	}
	if cfg.Token == "" {
		return nil, appErrors.Clone(appErrors.ErrConfiguration, "CANVAS_API_KEY is not set")
	}
	return &CanvasRepository{
		baseURL: cfg.BaseURL,
		token:   cfg.Token,
		client:  &http.Client{},
	}, nil
}

// ListCourses returns the caller's courses with an active enrollment.
func (r *CanvasRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	query := url.Values{"enrollment_state": {"active"}}
	if err := r.get(ctx, "/api/v1/courses", query, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// ListAssignments returns the assignments of a single course.
func (r *CanvasRepository) ListAssignments(ctx context.Context, courseID int64) ([]models.Assignment, error) {
	var assignments []models.Assignment
	path := fmt.Sprintf("/api/v1/courses/%d/assignments", courseID)
	if err := r.get(ctx, path, nil, &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListEnrollments returns the student enrollments of a single course.
func (r *CanvasRepository) ListEnrollments(ctx context.Context, courseID int64) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	path := fmt.Sprintf("/api/v1/courses/%d/enrollments", courseID)
	query := url.Values{"type": {"StudentEnrollment"}}
	if err := r.get(ctx, path, query, &enrollments); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *CanvasRepository) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	endpoint := r.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "build canvas request")
	}
	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "canvas request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "read canvas response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return appErrors.Upstream(resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode canvas response")
	}

	return nil
}
