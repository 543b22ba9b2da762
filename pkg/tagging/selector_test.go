package tagging

import (
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranked(labels []string, scores []float64) RankedResult {
	out := make(RankedResult, len(labels))
	for i := range labels {
		out[i] = ScoredLabel{Label: labels[i], Score: scores[i]}
	}
	return out
}

func TestSelect(t *testing.T) {
	cfg := DefaultSelectionConfig()

	tests := []struct {
		name   string
		labels []string
		scores []float64
		cfg    SelectionConfig
		want   []string
	}{
		{
			name:   "top score below floor",
			labels: []string{"A", "B", "C"},
			scores: []float64{0.10, 0.08, 0.05},
			cfg:    cfg,
			want:   []string{},
		},
		{
			name:   "single candidate",
			labels: []string{"A"},
			scores: []float64{0.92},
			cfg:    cfg,
			want:   []string{"A"},
		},
		{
			name:   "largest drop after second",
			labels: []string{"A", "B", "C", "D"},
			scores: []float64{0.90, 0.85, 0.20, 0.18},
			cfg:    cfg,
			want:   []string{"A", "B"},
		},
		{
			name:   "flat window keeps only the top",
			labels: []string{"A", "B", "C", "D"},
			scores: []float64{0.50, 0.50, 0.50, 0.10},
			cfg:    cfg,
			want:   []string{"A"},
		},
		{
			name:   "drop outside the window is ignored",
			labels: []string{"A", "B", "C", "D", "E"},
			scores: []float64{0.99, 0.97, 0.95, 0.93, 0.10},
			cfg:    cfg,
			want:   []string{"A"},
		},
		{
			name:   "empty input",
			labels: nil,
			scores: nil,
			cfg:    cfg,
			want:   []string{},
		},
		{
			name:   "single candidate below floor",
			labels: []string{"A"},
			scores: []float64{0.05},
			cfg:    cfg,
			want:   []string{},
		},
		{
			name:   "top score exactly on the floor passes",
			labels: []string{"A", "B"},
			scores: []float64{0.15, 0.01},
			cfg:    cfg,
			want:   []string{"A"},
		},
		{
			name:   "tags below the floor may follow the top",
			labels: []string{"A", "B", "C", "D"},
			scores: []float64{0.16, 0.14, 0.01, 0.00},
			cfg:    cfg,
			want:   []string{"A", "B"},
		},
		{
			name:   "max tags larger than candidate count",
			labels: []string{"A", "B", "C"},
			scores: []float64{0.9, 0.8, 0.1},
			cfg:    SelectionConfig{MaxTags: 10, MinConfidence: 0.15},
			want:   []string{"A", "B"},
		},
		{
			name:   "max tags of one",
			labels: []string{"A", "B", "C"},
			scores: []float64{0.9, 0.1, 0.05},
			cfg:    SelectionConfig{MaxTags: 1, MinConfidence: 0.15},
			want:   []string{"A"},
		},
		{
			name:   "drop right after the window is ignored",
			labels: []string{"A", "B", "C", "D"},
			scores: []float64{0.875, 0.75, 0.625, 0.125},
			cfg:    cfg,
			want:   []string{"A"},
		},
		{
			name:   "wider window reaches the drop",
			labels: []string{"A", "B", "C", "D"},
			scores: []float64{0.875, 0.75, 0.625, 0.125},
			cfg:    SelectionConfig{MaxTags: 4, MinConfidence: 0.15},
			want:   []string{"A", "B", "C"},
		},
		{
			name:   "unsorted input uses signed differences",
			labels: []string{"A", "B", "C"},
			scores: []float64{0.5, 0.9, 0.1},
			cfg:    cfg,
			want:   []string{"A", "B"},
		},
		{
			name:   "zero floor admits any top score",
			labels: []string{"A", "B"},
			scores: []float64{0.0, 0.0},
			cfg:    SelectionConfig{MaxTags: 3, MinConfidence: 0},
			want:   []string{"A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(ranked(tt.labels, tt.scores), tt.cfg)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 500; iter++ {
		n := 1 + rng.Intn(12)
		cfg := SelectionConfig{MaxTags: 1 + rng.Intn(6), MinConfidence: rng.Float64() * 0.5}

		scores := make([]float64, n)
		for i := range scores {
			scores[i] = rng.Float64()
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(scores)))

		labels := make([]string, n)
		for i := range labels {
			labels[i] = string(rune('A' + i))
		}
		in := ranked(labels, scores)

		got := Select(in, cfg)

		assert.LessOrEqual(t, len(got), cfg.MaxTags)
		assert.LessOrEqual(t, len(got), n)
		for i, label := range got {
			assert.Equal(t, in[i].Label, label, "result must be a prefix of the ranked list")
		}
		if scores[0] < cfg.MinConfidence {
			assert.Empty(t, got)
		} else {
			assert.NotEmpty(t, got)
		}
		if n == 1 && scores[0] >= cfg.MinConfidence {
			assert.Equal(t, []string{"A"}, got)
		}
		if n > 1 {
			assert.LessOrEqual(t, len(got), max(1, min(cfg.MaxTags, n)-1), "cut must sit inside the window")
		}
		assert.Equal(t, got, Select(in, cfg), "selection must be repeatable")
	}
}

func TestSelectDefaultConfigReturnsAtMostTwoOfMany(t *testing.T) {
	in := ranked([]string{"A", "B", "C", "D"}, []float64{0.875, 0.75, 0.625, 0.125})

	got := Select(in, DefaultSelectionConfig())
	assert.Equal(t, []string{"A"}, got)

	in = ranked([]string{"A", "B", "C"}, []float64{0.875, 0.75, 0.125})
	assert.Equal(t, []string{"A", "B"}, Select(in, DefaultSelectionConfig()))
}

func TestSelectDoesNotModifyInput(t *testing.T) {
	in := ranked([]string{"A", "B", "C"}, []float64{0.9, 0.5, 0.1})
	before := make(RankedResult, len(in))
	copy(before, in)

	Select(in, DefaultSelectionConfig())

	assert.Equal(t, before, in)
}

func TestSelectConcurrent(t *testing.T) {
	in := ranked([]string{"A", "B", "C", "D"}, []float64{0.90, 0.85, 0.20, 0.18})
	cfg := DefaultSelectionConfig()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"A", "B"}, Select(in, cfg))
		}()
	}
	wg.Wait()
}

func TestSelectionConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultSelectionConfig().Validate())
	assert.NoError(t, SelectionConfig{MaxTags: 1, MinConfidence: 0}.Validate())
	assert.NoError(t, SelectionConfig{MaxTags: 5, MinConfidence: 1}.Validate())

	for _, bad := range []SelectionConfig{
		{MaxTags: 0, MinConfidence: 0.1},
		{MaxTags: -2, MinConfidence: 0.1},
		{MaxTags: 3, MinConfidence: -0.01},
		{MaxTags: 3, MinConfidence: 1.5},
	} {
		assert.ErrorIs(t, bad.Validate(), ErrInvalidSelectionConfig, "%+v", bad)
	}
}
