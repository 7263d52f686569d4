package summarize

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a client at a fake generateContent endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", "test-model")
	c.baseURL = srv.URL
	c.httpClient = srv.Client()
	return c
}

func modelReply(t *testing.T, w http.ResponseWriter, text string) {
	t.Helper()
	resp := generateResponse{}
	resp.Candidates = []struct {
		Content content `json:"content"`
	}{{Content: content{Parts: []part{{Text: text}}}}}
	require.NoError(t, json.NewEncoder(w).Encode(resp))
}

func TestSummarize_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "test-model")

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "Graph Theory Notes")
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMimeType)

		modelReply(t, w, `{"summary":"Concise notes on graphs.","tags":["graphs","trees"]}`)
	})

	got := c.Summarize(context.Background(), "Graph Theory Notes", "Lecture notes for unit 3")
	assert.Equal(t, "Concise notes on graphs.", got.Summary)
	assert.Equal(t, []string{"graphs", "trees"}, got.Tags)
}

func TestSummarize_APIFailureFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	got := c.Summarize(context.Background(), "t", "d")
	assert.Equal(t, summaryFailed, got.Summary)
	assert.Empty(t, got.Tags)
}

func TestSummarize_MalformedModelOutputFallsBack(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		modelReply(t, w, "not json at all")
	})

	got := c.Summarize(context.Background(), "t", "d")
	assert.Equal(t, summaryFailed, got.Summary)
	assert.Empty(t, got.Tags)
}

func TestSummarize_EmptyCandidates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(generateResponse{}))
	})

	got := c.Summarize(context.Background(), "t", "d")
	assert.Equal(t, summaryUnavailable, got.Summary)
	assert.Empty(t, got.Tags)
}

func TestSummarize_DisabledWithoutKey(t *testing.T) {
	c := NewClient("", "test-model")

	got := c.Summarize(context.Background(), "t", "d")
	assert.Equal(t, summaryUnavailable, got.Summary)
	assert.Empty(t, got.Tags)
}
