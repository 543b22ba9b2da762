package huggingface

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/tagging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T, handler http.HandlerFunc) *Classifier {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClassifier(classifier.Config{
		Model:              classifier.DefaultModel,
		BaseURL:            srv.URL,
		APIKey:             "hf_test",
		HypothesisTemplate: classifier.DefaultHypothesisTemplate,
	})
	require.NoError(t, err)
	return c
}

func TestClassifyRouterResponse(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models/facebook/bart-large-mnli", r.URL.Path)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))

		var req zeroShotRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "segfault after free", req.Inputs)
		assert.Equal(t, []string{"Memory Bugs", "Signals"}, req.Parameters.CandidateLabels)
		assert.True(t, req.Parameters.MultiLabel)
		assert.Equal(t, classifier.DefaultHypothesisTemplate, req.Parameters.HypothesisTemplate)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"label":"Memory Bugs","score":0.91},{"label":"Signals","score":0.12}]`))
	})

	scores, err := c.Classify(context.Background(), "segfault after free", []string{"Memory Bugs", "Signals"})
	require.NoError(t, err)
	assert.Equal(t, []tagging.ScoredLabel{
		{Label: "Memory Bugs", Score: 0.91},
		{Label: "Signals", Score: 0.12},
	}, scores)
}

func TestClassifyLegacyResponse(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"sequence":"x","labels":["Signals","Memory Bugs"],"scores":[0.7,0.2]}`))
	})

	scores, err := c.Classify(context.Background(), "x", []string{"Memory Bugs", "Signals"})
	require.NoError(t, err)
	assert.Equal(t, []tagging.ScoredLabel{
		{Label: "Signals", Score: 0.7},
		{Label: "Memory Bugs", Score: 0.2},
	}, scores)
}

func TestClassifyAPIError(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"Model facebook/bart-large-mnli is currently loading","estimated_time":20}`))
	})

	_, err := c.Classify(context.Background(), "x", []string{"A"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currently loading")
	assert.Contains(t, err.Error(), "503")
}

func TestClassifyMismatchedLegacyResponse(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"labels":["A","B"],"scores":[0.7]}`))
	})

	_, err := c.Classify(context.Background(), "x", []string{"A", "B"})
	assert.Error(t, err)
}

func TestClassifyRejectsOversizedResponse(t *testing.T) {
	c := newTestClassifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"A","score":0.7},{"label":"B","score":0.2},{"label":"C","score":0.1}]`))
	})
	c.maxResponseBytes = 32

	_, err := c.Classify(context.Background(), "x", []string{"A", "B", "C"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds 32 bytes")

	c.maxResponseBytes = defaultMaxResponseBytes
	scores, err := c.Classify(context.Background(), "x", []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Len(t, scores, 3)
}

func TestNewClassifierRequiresModel(t *testing.T) {
	_, err := NewClassifier(classifier.Config{})
	assert.ErrorIs(t, err, classifier.ErrClassifierConfig)
}

func TestNewClassifierDefaults(t *testing.T) {
	c, err := NewClassifier(classifier.Config{Model: "m", BaseURL: "http://example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com", c.baseURL)

	c, err = NewClassifier(classifier.Config{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.baseURL)
}
