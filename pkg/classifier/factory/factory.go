package factory

import (
	"context"
	"fmt"
	"time"

	"ai-tagging-be/pkg/classifier"
	"ai-tagging-be/pkg/classifier/huggingface"
)

const warmupText = "How does the cache handle a write miss?"

func NewClassifier(cfg classifier.Config) (classifier.ZeroShotClassifier, error) {
	switch cfg.Provider {
	case "huggingface", "":
		c, err := huggingface.NewClassifier(cfg)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w: unsupported classifier provider: %s", classifier.ErrClassifierConfig, cfg.Provider)
	}
}

// Warmup sends one probe request so a backend that cannot serve is detected
// before traffic arrives. Hosted models may need a while to load.
func Warmup(ctx context.Context, c classifier.ZeroShotClassifier, labels []string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scores, err := c.Classify(ctx, warmupText, labels)
	if err != nil {
		return fmt.Errorf("%w: warmup failed: %v", classifier.ErrClassifierConfig, err)
	}
	if len(scores) == 0 {
		return fmt.Errorf("%w: warmup returned no scores", classifier.ErrClassifierConfig)
	}
	return nil
}
