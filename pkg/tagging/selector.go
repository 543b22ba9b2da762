package tagging

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidSelectionConfig = errors.New("invalid selection config")

// ScoredLabel is one candidate topic with its independent relevance score.
type ScoredLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// RankedResult is a score list ordered by score descending.
type RankedResult []ScoredLabel

type SelectionConfig struct {
	MaxTags       int
	MinConfidence float64
}

func DefaultSelectionConfig() SelectionConfig {
	return SelectionConfig{
		MaxTags:       3,
		MinConfidence: 0.15,
	}
}

func (c SelectionConfig) Validate() error {
	if c.MaxTags < 1 {
		return fmt.Errorf("%w: max tags must be at least 1, got %d", ErrInvalidSelectionConfig, c.MaxTags)
	}
	if math.IsNaN(c.MinConfidence) || c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min confidence must be within [0,1], got %v", ErrInvalidSelectionConfig, c.MinConfidence)
	}
	return nil
}

// Select applies the maximum confidence-gap cutoff to a ranked score list.
//
// The top score gates the whole result: below MinConfidence nothing is returned.
// Otherwise the list is cut after the largest drop between adjacent entries
// among the first MaxTags candidates, earliest gap winning ties. Gaps are the
// signed differences of neighbouring scores. The result is always a prefix of
// ranked and never nil.
//
// The window holds MaxTags entries, so it has MaxTags-1 gaps and the cut
// lands no later than entry MaxTags-2. With two or more candidates the result
// therefore has at most max(1, min(MaxTags, len(ranked))-1) tags: the
// default MaxTags of 3 returns one or two tags, never three.
func Select(ranked RankedResult, cfg SelectionConfig) []string {
	if len(ranked) == 0 || ranked[0].Score < cfg.MinConfidence {
		return []string{}
	}
	if len(ranked) == 1 {
		return []string{ranked[0].Label}
	}

	gaps := min(cfg.MaxTags, len(ranked)) - 1
	cut := 0
	maxGap := math.Inf(-1)
	for i := 0; i < gaps; i++ {
		gap := ranked[i].Score - ranked[i+1].Score
		if gap > maxGap {
			maxGap = gap
			cut = i
		}
	}

	tags := make([]string, cut+1)
	for i := range tags {
		tags[i] = ranked[i].Label
	}
	return tags
}
