package huggingface

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/tagging"
)

const DefaultBaseURL = "https://router.huggingface.co/hf-inference"

// A score list for a few hundred labels stays far below this.
const defaultMaxResponseBytes = 2 << 20

// Classifier calls the Hugging Face zero-shot-classification task.
type Classifier struct {
	apiKey             string
	baseURL            string
	model              string
	hypothesisTemplate string
	maxResponseBytes   int64
	client             *http.Client
}

var _ classifier.ZeroShotClassifier = &Classifier{}

type zeroShotRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters zeroShotParameters `json:"parameters"`
}

type zeroShotParameters struct {
	CandidateLabels    []string `json:"candidate_labels"`
	MultiLabel         bool     `json:"multi_label"`
	HypothesisTemplate string   `json:"hypothesis_template,omitempty"`
}

// Legacy inference API shape.
type zeroShotResponse struct {
	Sequence string    `json:"sequence"`
	Labels   []string  `json:"labels"`
	Scores   []float64 `json:"scores"`
}

type apiError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}

func NewClassifier(cfg classifier.Config) (*Classifier, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("%w: huggingface model is required", classifier.ErrClassifierConfig)
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	return &Classifier{
		apiKey:             cfg.APIKey,
		baseURL:            baseURL,
		model:              cfg.Model,
		hypothesisTemplate: cfg.HypothesisTemplate,
		maxResponseBytes:   defaultMaxResponseBytes,
		client:             &http.Client{Timeout: timeout},
	}, nil
}

func (c *Classifier) Classify(ctx context.Context, text string, labels []string) ([]tagging.ScoredLabel, error) {
	reqBody := zeroShotRequest{
		Inputs: text,
		Parameters: zeroShotParameters{
			CandidateLabels:    labels,
			MultiLabel:         true,
			HypothesisTemplate: c.hypothesisTemplate,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(bodyBytes)) > c.maxResponseBytes {
		return nil, fmt.Errorf("huggingface response exceeds %d bytes", c.maxResponseBytes)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(bodyBytes, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("huggingface api error (status %d): %s", resp.StatusCode, string(bodyBytes))
	}

	return decodeScores(bodyBytes)
}

// decodeScores accepts both the router shape ([{"label","score"}]) and the
// legacy inference shape ({"labels":[...],"scores":[...]}).
func decodeScores(body []byte) ([]tagging.ScoredLabel, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response from huggingface api")
	}

	if trimmed[0] == '[' {
		var scores []tagging.ScoredLabel
		if err := json.Unmarshal(trimmed, &scores); err != nil {
			return nil, fmt.Errorf("failed to decode response: %w", err)
		}
		return scores, nil
	}

	var legacy zeroShotResponse
	if err := json.Unmarshal(trimmed, &legacy); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(legacy.Labels) != len(legacy.Scores) {
		return nil, fmt.Errorf("huggingface api returned %d labels and %d scores", len(legacy.Labels), len(legacy.Scores))
	}

	scores := make([]tagging.ScoredLabel, len(legacy.Labels))
	for i, label := range legacy.Labels {
		scores[i] = tagging.ScoredLabel{Label: label, Score: legacy.Scores[i]}
	}
	return scores, nil
}
