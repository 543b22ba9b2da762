package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-tagging-be/internal/dto"
	"ai-tagging-be/internal/pkg/logger"
	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/events"
	"ai-tagging-be/pkg/tagging"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	ClassifierReady       = "ready"
	ClassifierUnavailable = "unavailable"
)

// ErrClassifierUnavailable is returned for every request when the classifier
// failed to initialise at startup.
var ErrClassifierUnavailable = errors.New("classifier service is unavailable")

type ITagService interface {
	SuggestTags(ctx context.Context, req *dto.SuggestTagsRequest) (*dto.SuggestTagsResponse, error)
	Topics() *dto.TopicsResponse
	Health() *dto.HealthResponse
}

type TagServiceConfig struct {
	Selection tagging.SelectionConfig
	Timeout   time.Duration
}

type tagService struct {
	classifier classifier.ZeroShotClassifier
	vocabulary *tagging.Vocabulary
	cfg        TagServiceConfig
	publisher  IPublisherService
	logger     logger.ILogger
	tracer     trace.Tracer
}

// NewTagService wires the tagging pipeline. A nil classifier puts the service
// in unavailable mode.
func NewTagService(
	zeroShot classifier.ZeroShotClassifier,
	vocabulary *tagging.Vocabulary,
	cfg TagServiceConfig,
	publisher IPublisherService,
	logger logger.ILogger,
) ITagService {
	return &tagService{
		classifier: zeroShot,
		vocabulary: vocabulary,
		cfg:        cfg,
		publisher:  publisher,
		logger:     logger,
		tracer:     otel.Tracer("ai-tagging-be/service"),
	}
}

func (s *tagService) SuggestTags(ctx context.Context, req *dto.SuggestTagsRequest) (*dto.SuggestTagsResponse, error) {
	if s.classifier == nil {
		s.logger.Error("TAGGING", "Classifier model is not available", nil)
		return nil, ErrClassifierUnavailable
	}

	ctx, span := s.tracer.Start(ctx, "TagService.SuggestTags",
		trace.WithAttributes(attribute.Int("content.length", len(req.Content))))
	defer span.End()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()

	ranked, err := s.rank(ctx, req.Content)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "ranking failed")
		return nil, err
	}

	_, selectSpan := s.tracer.Start(ctx, "tagging.Select")
	tags := tagging.Select(ranked, s.cfg.Selection)
	selectSpan.SetAttributes(attribute.Int("tags.count", len(tags)))
	selectSpan.End()

	elapsed := time.Since(start)
	topScore := 0.0
	if len(ranked) > 0 {
		topScore = ranked[0].Score
	}

	s.logger.Info("TAGGING", "Returning suggested tags", map[string]interface{}{
		"suggested_tags": tags,
		"top_score":      topScore,
		"duration_ms":    elapsed.Milliseconds(),
	})

	s.publish(ctx, events.TagsSuggested{
		EventId:       uuid.New(),
		ContentLength: len(req.Content),
		SuggestedTags: tags,
		TopScore:      topScore,
		DurationMs:    elapsed.Milliseconds(),
		OccurredAt:    time.Now(),
	})

	return &dto.SuggestTagsResponse{SuggestedTags: tags}, nil
}

// rank scores the content against the whole vocabulary and returns the list
// in the order Select expects.
func (s *tagService) rank(ctx context.Context, content string) (tagging.RankedResult, error) {
	ctx, span := s.tracer.Start(ctx, "classifier.Classify",
		trace.WithAttributes(attribute.Int("labels.count", s.vocabulary.Len())))
	defer span.End()

	scores, err := s.classifier.Classify(ctx, content, s.vocabulary.Labels())
	if err != nil {
		s.logger.Error("TAGGING", "Classification failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("classify content: %w", err)
	}

	ranked := tagging.SortRanked(scores, s.vocabulary)
	if err := tagging.CheckRanked(ranked, s.vocabulary); err != nil {
		s.logger.Error("TAGGING", "Classifier output rejected", map[string]interface{}{"error": err.Error()})
		return nil, err
	}

	s.logger.Debug("TAGGING", "Raw classification results", map[string]interface{}{"ranked": ranked})
	return ranked, nil
}

func (s *tagService) publish(ctx context.Context, evt events.TagsSuggested) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTagsSuggested(ctx, evt); err != nil {
		s.logger.Warn("TAGGING", "Failed to publish TAGS_SUGGESTED event", map[string]interface{}{"error": err.Error()})
	}
}

func (s *tagService) Topics() *dto.TopicsResponse {
	return &dto.TopicsResponse{Topics: s.vocabulary.Labels()}
}

func (s *tagService) Health() *dto.HealthResponse {
	if s.classifier == nil {
		return &dto.HealthResponse{Status: "degraded", Classifier: ClassifierUnavailable}
	}
	return &dto.HealthResponse{Status: "ok", Classifier: ClassifierReady}
}
