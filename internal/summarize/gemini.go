// Package summarize calls the Gemini generateContent REST API to produce a
// short summary and search keywords for a resource at publish time.
//
// Summarization is best-effort: every failure collapses into a fallback
// result so the publish flow is never blocked on this collaborator.
package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Fallback summaries, shown when the collaborator cannot be used.
const (
	summaryUnavailable = "AI Summary unavailable at this moment."
	summaryFailed      = "Error generating summary."
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Result is the structured output of one summarization call.
type Result struct {
	Summary string   `json:"summary"` // Short summary for display
	Tags    []string `json:"tags"`    // 3-5 keywords for searchability
}

// Client talks to the Gemini API. A zero API key disables the collaborator;
// Summarize then always returns the fallback.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient builds a summarizer client for the given model.
func NewClient(apiKey, model string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// Request/response wire types for generateContent.
type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// responseSchema constrains the model to {summary, tags} JSON output.
var responseSchema = map[string]any{
	"type": "OBJECT",
	"properties": map[string]any{
		"summary": map[string]any{"type": "STRING"},
		"tags": map[string]any{
			"type":  "ARRAY",
			"items": map[string]any{"type": "STRING"},
		},
	},
	"required": []string{"summary", "tags"},
}

// Summarize asks the model for a summary and keywords. It never returns an
// error: any transport, API or decoding failure degrades to a fallback
// Result with no tags, and the publish flow proceeds with that.
func (c *Client) Summarize(ctx context.Context, title, description string) Result {
	if c.apiKey == "" {
		return Result{Summary: summaryUnavailable, Tags: []string{}} // Collaborator disabled
	}

	prompt := fmt.Sprintf(
		"You are an academic assistant. Briefly summarize the following resource and provide 3-5 keywords for better searchability.\nTitle: %s\nDescription: %s",
		title, description,
	)
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   responseSchema,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{Summary: summaryFailed, Tags: []string{}}
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{Summary: summaryFailed, Tags: []string{}}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logrus.WithField("error", err.Error()).Warn("Summarization request failed")
		return Result{Summary: summaryFailed, Tags: []string{}}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithField("status", resp.StatusCode).Warn("Summarization API error")
		return Result{Summary: summaryFailed, Tags: []string{}}
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		logrus.WithField("error", err.Error()).Warn("Summarization response decode failed")
		return Result{Summary: summaryFailed, Tags: []string{}}
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return Result{Summary: summaryUnavailable, Tags: []string{}} // Model returned nothing
	}

	var result Result
	if err := json.Unmarshal([]byte(decoded.Candidates[0].Content.Parts[0].Text), &result); err != nil {
		logrus.WithField("error", err.Error()).Warn("Summarization payload parse failed")
		return Result{Summary: summaryFailed, Tags: []string{}}
	}
	if result.Summary == "" {
		result.Summary = summaryUnavailable
	}
	if result.Tags == nil {
		result.Tags = []string{}
	}
	return result
}
