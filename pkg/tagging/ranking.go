package tagging

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrSelectorInput marks a ranked list that breaks the contract Select relies on.
// It is a programming error between the classifier adapter and the selector.
var ErrSelectorInput = errors.New("selector input contract violated")

// SortRanked orders scores descending. Equal scores keep vocabulary order.
// Labels unknown to the vocabulary sort after known ones on ties.
func SortRanked(scores []ScoredLabel, vocab *Vocabulary) RankedResult {
	ranked := make(RankedResult, len(scores))
	copy(ranked, scores)

	position := func(label string) int {
		if i := vocab.Index(label); i >= 0 {
			return i
		}
		return vocab.Len()
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return position(ranked[i].Label) < position(ranked[j].Label)
	})
	return ranked
}

// CheckRanked verifies that ranked holds exactly one finite score in [0,1] for
// every vocabulary topic and is sorted by score descending.
func CheckRanked(ranked RankedResult, vocab *Vocabulary) error {
	if len(ranked) != vocab.Len() {
		return fmt.Errorf("%w: got %d scores for %d topics", ErrSelectorInput, len(ranked), vocab.Len())
	}

	seen := make(map[string]struct{}, len(ranked))
	for i, s := range ranked {
		if !vocab.Contains(s.Label) {
			return fmt.Errorf("%w: unknown topic %q at rank %d", ErrSelectorInput, s.Label, i)
		}
		if _, dup := seen[s.Label]; dup {
			return fmt.Errorf("%w: topic %q scored twice", ErrSelectorInput, s.Label)
		}
		seen[s.Label] = struct{}{}

		if math.IsNaN(s.Score) || s.Score < 0 || s.Score > 1 {
			return fmt.Errorf("%w: score %v for %q outside [0,1]", ErrSelectorInput, s.Score, s.Label)
		}
		if i > 0 && s.Score > ranked[i-1].Score {
			return fmt.Errorf("%w: not sorted descending at rank %d (%v > %v)", ErrSelectorInput, i, s.Score, ranked[i-1].Score)
		}
	}
	return nil
}
