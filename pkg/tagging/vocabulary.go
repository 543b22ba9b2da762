package tagging

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Vocabulary is the fixed, ordered set of candidate topics. It is immutable
// once built and safe for concurrent use.
type Vocabulary struct {
	labels []string
	index  map[string]int
}

func NewVocabulary(labels []string) (*Vocabulary, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("%w: no topics configured", ErrInvalidVocabulary)
	}

	v := &Vocabulary{
		labels: make([]string, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for i, label := range labels {
		if strings.TrimSpace(label) == "" {
			return nil, fmt.Errorf("%w: blank topic at position %d", ErrInvalidVocabulary, i)
		}
		if prev, dup := v.index[label]; dup {
			return nil, fmt.Errorf("%w: duplicate topic %q at positions %d and %d", ErrInvalidVocabulary, label, prev, i)
		}
		v.index[label] = i
		v.labels[i] = label
	}
	return v, nil
}

// Labels returns a copy of the topics in configured order.
func (v *Vocabulary) Labels() []string {
	out := make([]string, len(v.labels))
	copy(out, v.labels)
	return out
}

func (v *Vocabulary) Len() int {
	return len(v.labels)
}

// Index returns the configured position of label, or -1.
func (v *Vocabulary) Index(label string) int {
	if i, ok := v.index[label]; ok {
		return i
	}
	return -1
}

func (v *Vocabulary) Contains(label string) bool {
	_, ok := v.index[label]
	return ok
}
