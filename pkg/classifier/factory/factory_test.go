package factory

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/tagging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClassifier struct {
	scores []tagging.ScoredLabel
	err    error
}

func (f fixedClassifier) Classify(ctx context.Context, text string, labels []string) ([]tagging.ScoredLabel, error) {
	return f.scores, f.err
}

func TestNewClassifier(t *testing.T) {
	c, err := NewClassifier(classifier.Config{Provider: "huggingface", Model: classifier.DefaultModel})
	require.NoError(t, err)
	assert.NotNil(t, c)

	_, err = NewClassifier(classifier.Config{Provider: "openai", Model: "x"})
	assert.ErrorIs(t, err, classifier.ErrClassifierConfig)

	_, err = NewClassifier(classifier.Config{Provider: "huggingface"})
	assert.ErrorIs(t, err, classifier.ErrClassifierConfig)
}

func TestWarmup(t *testing.T) {
	ok := fixedClassifier{scores: []tagging.ScoredLabel{{Label: "A", Score: 0.5}}}
	assert.NoError(t, Warmup(context.Background(), ok, []string{"A"}, time.Second))

	failing := fixedClassifier{err: errors.New("connection refused")}
	assert.ErrorIs(t, Warmup(context.Background(), failing, []string{"A"}, time.Second), classifier.ErrClassifierConfig)

	empty := fixedClassifier{}
	assert.ErrorIs(t, Warmup(context.Background(), empty, []string{"A"}, time.Second), classifier.ErrClassifierConfig)
}
