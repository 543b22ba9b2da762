package commands

import (
	"fmt"
	"strconv"
	"strings"

	"ai-tagging-be/pkg/tagging"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	defaults := tagging.DefaultSelectionConfig()
	cfg := defaults

	cmd := &cobra.Command{
		Use:   "select label=score [label=score...]",
		Short: "Run the gap-cutoff selector on hand-written scores",
		Long: `Scores are ranked highest first; equal scores keep argument order.
The kept tags are printed one per line, highlighted against the dropped ones.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.Validate(); err != nil {
				return err
			}

			scores, err := parseScores(args)
			if err != nil {
				return err
			}

			labels := make([]string, len(scores))
			for i, s := range scores {
				labels[i] = s.Label
			}
			vocab, err := tagging.NewVocabulary(labels)
			if err != nil {
				return err
			}

			ranked := tagging.SortRanked(scores, vocab)
			if err := tagging.CheckRanked(ranked, vocab); err != nil {
				return err
			}
			selected := tagging.Select(ranked, cfg)

			kept := color.New(color.FgGreen, color.Bold)
			dropped := color.New(color.Faint)
			out := cmd.OutOrStdout()
			for i, s := range ranked {
				line := fmt.Sprintf("%-40s %.4f", s.Label, s.Score)
				if i < len(selected) {
					kept.Fprintln(out, "+ "+line)
				} else {
					dropped.Fprintln(out, "  "+line)
				}
			}
			if len(selected) == 0 {
				color.New(color.FgYellow).Fprintf(out, "no tags: top score below %.2f\n", cfg.MinConfidence)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&cfg.MaxTags, "max-tags", defaults.MaxTags, "upper bound on returned tags")
	cmd.Flags().Float64Var(&cfg.MinConfidence, "min-confidence", defaults.MinConfidence, "floor for the top score")

	return cmd
}

// parseScores reads label=score pairs. The last '=' splits, so labels may
// contain '='.
func parseScores(args []string) ([]tagging.ScoredLabel, error) {
	scores := make([]tagging.ScoredLabel, 0, len(args))
	for _, arg := range args {
		i := strings.LastIndex(arg, "=")
		if i <= 0 {
			return nil, fmt.Errorf("expected label=score, got %q", arg)
		}
		score, err := strconv.ParseFloat(arg[i+1:], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score in %q: %w", arg, err)
		}
		scores = append(scores, tagging.ScoredLabel{Label: arg[:i], Score: score})
	}
	return scores, nil
}
