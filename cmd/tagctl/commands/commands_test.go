package commands

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ai-tagging-be/internal/dto"
	"ai-tagging-be/pkg/tagging"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	var out bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))

	err := root.Execute()
	return out.String(), err
}

func TestParseScores(t *testing.T) {
	scores, err := parseScores([]string{"Paging=0.8", "a=b=0.1"})
	require.NoError(t, err)
	assert.Equal(t, []tagging.ScoredLabel{
		{Label: "Paging", Score: 0.8},
		{Label: "a=b", Score: 0.1},
	}, scores)

	for _, bad := range []string{"Paging", "=0.5", "Paging=high"} {
		_, err := parseScores([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestSelectCommand(t *testing.T) {
	t.Run("keeps the leading cluster", func(t *testing.T) {
		out, err := runCmd(t, "", "select", "A=0.5", "B=0.5", "C=0.5", "D=0.1")
		require.NoError(t, err)
		assert.Contains(t, out, "+ A")
		assert.NotContains(t, out, "+ B")
		assert.NotContains(t, out, "+ C")
	})

	t.Run("sorts arguments before selecting", func(t *testing.T) {
		out, err := runCmd(t, "", "select", "Low=0.05", "High=0.9", "Mid=0.85")
		require.NoError(t, err)
		assert.Contains(t, out, "+ High")
		assert.Contains(t, out, "+ Mid")
		assert.NotContains(t, out, "+ Low")
	})

	t.Run("max tags flag", func(t *testing.T) {
		out, err := runCmd(t, "", "select", "--max-tags", "1", "A=0.9", "B=0.89")
		require.NoError(t, err)
		assert.Contains(t, out, "+ A")
		assert.NotContains(t, out, "+ B")
	})

	t.Run("below floor", func(t *testing.T) {
		out, err := runCmd(t, "", "select", "A=0.1", "B=0.05")
		require.NoError(t, err)
		assert.Contains(t, out, "no tags: top score below 0.15")
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := runCmd(t, "", "select", "A=0.5", "A=0.4")
		assert.ErrorIs(t, err, tagging.ErrInvalidVocabulary)

		_, err = runCmd(t, "", "select", "A=1.5")
		assert.ErrorIs(t, err, tagging.ErrSelectorInput)

		_, err = runCmd(t, "", "select", "--max-tags", "0", "A=0.5")
		assert.ErrorIs(t, err, tagging.ErrInvalidSelectionConfig)
	})
}

func TestTopicsCommand(t *testing.T) {
	out, err := runCmd(t, "", "topics")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, tagging.DefaultVocabulary().Labels(), lines)
}

func newSuggestServer(t *testing.T, status int, body interface{}) (*httptest.Server, *[]string) {
	t.Helper()
	var received []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/suggest-tags", r.URL.Path)
		var req dto.SuggestTagsRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		received = append(received, req.Content)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &received
}

func TestSuggestCommand(t *testing.T) {
	t.Run("argument", func(t *testing.T) {
		srv, received := newSuggestServer(t, http.StatusOK, dto.SuggestTagsResponse{SuggestedTags: []string{"Paging", "TLB"}})

		out, err := runCmd(t, "", "suggest", "--server", srv.URL+"/", "page faults")
		require.NoError(t, err)
		assert.Equal(t, "Paging\nTLB\n", out)
		assert.Equal(t, []string{"page faults"}, *received)
	})

	t.Run("stdin", func(t *testing.T) {
		srv, received := newSuggestServer(t, http.StatusOK, dto.SuggestTagsResponse{SuggestedTags: []string{}})

		out, err := runCmd(t, "from stdin", "suggest", "-s", srv.URL)
		require.NoError(t, err)
		assert.Contains(t, out, "no confident tags")
		assert.Equal(t, []string{"from stdin"}, *received)
	})

	t.Run("file", func(t *testing.T) {
		srv, received := newSuggestServer(t, http.StatusOK, dto.SuggestTagsResponse{SuggestedTags: []string{"Deadlock"}})
		path := filepath.Join(t.TempDir(), "post.txt")
		require.NoError(t, os.WriteFile(path, []byte("two locks"), 0o644))

		_, err := runCmd(t, "", "suggest", "-s", srv.URL, "-f", path)
		require.NoError(t, err)
		assert.Equal(t, []string{"two locks"}, *received)
	})

	t.Run("server error", func(t *testing.T) {
		srv, _ := newSuggestServer(t, http.StatusServiceUnavailable, map[string]string{"error": "Classifier service is unavailable"})

		_, err := runCmd(t, "", "suggest", "-s", srv.URL, "text")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "503")
		assert.Contains(t, err.Error(), "Classifier service is unavailable")
	})

	t.Run("argument and file", func(t *testing.T) {
		_, err := runCmd(t, "", "suggest", "-f", "x.txt", "text")
		assert.Error(t, err)
	})
}
