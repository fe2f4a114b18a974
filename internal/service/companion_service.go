package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/canvas-companion-api/pkg/errors"
)

const companionInstructions = `Please provide a helpful, friendly response. You can help with:
- Questions about their courses
- Assignment due dates and details
- Grade information
- Study tips and academic advice
- General Canvas LMS questions

Be concise but helpful.`

type completionClient interface {
	Complete(ctx context.Context, model, prompt string) (string, error)
}

// CompanionServiceConfig tunes prompt construction.
type CompanionServiceConfig struct {
	Model      string
	MaxCourses int
}

// CompanionService answers free-form questions using the aggregated Canvas
// view as prompt context. Context building is best-effort: when aggregation
// fails the raw question goes out alone instead of failing the request.
type CompanionService struct {
	aggregator *AggregatorService
	completion completionClient
	metrics    *MetricsService
	logger     *zap.Logger
	cfg        CompanionServiceConfig
}

// NewCompanionService constructs a CompanionService with sane defaults.
func NewCompanionService(aggregator *AggregatorService, completion completionClient, metrics *MetricsService, logger *zap.Logger, cfg CompanionServiceConfig) *CompanionService {
	if cfg.Model == "" {
		cfg.Model = "gpt-4o"
	}
	if cfg.MaxCourses <= 0 {
		cfg.MaxCourses = 5
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanionService{
		aggregator: aggregator,
		completion: completion,
		metrics:    metrics,
		logger:     logger,
		cfg:        cfg,
	}
}

// Ask builds the prompt and performs one blocking completion round trip.
// Completion failure surfaces to the caller; nothing is retried.
func (s *CompanionService) Ask(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "No message provided")
	}

	prompt := s.buildPrompt(ctx, message)

	start := time.Now()
	answer, err := s.completion.Complete(ctx, s.cfg.Model, prompt)
	s.metrics.ObserveCompletion(err, time.Since(start))
	if err != nil {
		return "", err
	}
	return answer, nil
}

func (s *CompanionService) buildPrompt(ctx context.Context, message string) string {
	chatContext, err := s.aggregateContext(ctx)
	if err != nil {
		s.logger.Warn("chat context unavailable, falling back to raw message", zap.Error(err))
		return message
	}
	return fmt.Sprintf("%s\n\nStudent Question: %s\n\n%s", chatContext, message, companionInstructions)
}

func (s *CompanionService) aggregateContext(ctx context.Context) (string, error) {
	courses, err := s.aggregator.Courses(ctx)
	if err != nil {
		return "", err
	}
	assignments, err := s.aggregator.FetchAllAssignments(ctx)
	if err != nil {
		return "", err
	}
	grades, err := s.aggregator.FetchAllGrades(ctx)
	if err != nil {
		return "", err
	}
	return BuildChatContext(courses, assignments, grades, s.cfg.MaxCourses), nil
}
