package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"ai-tagging-be/internal/dto"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newSuggestCmd() *cobra.Command {
	var (
		server  string
		file    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "suggest [text]",
		Short: "Ask a running server for tag suggestions",
		Long: `The text comes from the argument, from --file, or from stdin when
neither is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readContent(cmd, args, file)
			if err != nil {
				return err
			}

			client := &http.Client{Timeout: timeout}
			tags, err := requestSuggestions(client, server, content)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tags) == 0 {
				color.New(color.FgYellow).Fprintln(out, "no confident tags")
				return nil
			}
			for _, tag := range tags {
				color.New(color.FgGreen).Fprintln(out, tag)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&server, "server", "s", "http://localhost:5000", "base URL of the tagging service")
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the text from a file")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "request timeout")

	return cmd
}

func readContent(cmd *cobra.Command, args []string, file string) (string, error) {
	switch {
	case len(args) == 1 && file != "":
		return "", errors.New("pass the text either as an argument or with --file")
	case len(args) == 1:
		return args[0], nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return "", err
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

func requestSuggestions(client *http.Client, server, content string) ([]string, error) {
	body, err := json.Marshal(dto.SuggestTagsRequest{Content: content})
	if err != nil {
		return nil, err
	}

	url := strings.TrimRight(server, "/") + "/api/v1/suggest-tags"
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	var res dto.SuggestTagsResponse
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return res.SuggestedTags, nil
}
