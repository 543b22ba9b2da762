package classifier

import (
	"context"
	"errors"
	"time"

	"ai-tagging-be/pkg/tagging"
)

var (
	// ErrClassifierConfig means the classifier could not be set up at startup.
	ErrClassifierConfig = errors.New("classifier configuration error")

	ErrPoolClosed = errors.New("classifier pool closed")
)

// ZeroShotClassifier scores every candidate label against a text without
// label-specific training. Scores are independent per label (multi-label).
type ZeroShotClassifier interface {
	Classify(ctx context.Context, text string, labels []string) ([]tagging.ScoredLabel, error)
}

// Config selects and parameterises a classifier backend.
type Config struct {
	Provider           string // "huggingface"
	Model              string
	BaseURL            string
	APIKey             string
	HypothesisTemplate string
	Timeout            time.Duration
}

const (
	DefaultModel              = "facebook/bart-large-mnli"
	DefaultHypothesisTemplate = "This post is about the computer systems topic of {}."
)
