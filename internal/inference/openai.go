package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"guardian/server/internal/models"
)

const analysisPrompt = `You are a property-listing reviewer. Given a listing's title,
description, price and photo count, respond ONLY with valid JSON:
{"quality_score": <0-100>, "summary": "<one sentence>", "concerns": ["..."], "confidence": <0-1>}`

// OpenAIAnalyzer calls an OpenAI-compatible chat-completions endpoint to
// review listings.
type OpenAIAnalyzer struct {
	apiBase string
	apiKey  string
	model   string
	client  *http.Client
}

func NewOpenAIAnalyzer(apiBase, apiKey, model string, timeout time.Duration) *OpenAIAnalyzer {
	return &OpenAIAnalyzer{
		apiBase: apiBase,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: timeout},
	}
}

func (a *OpenAIAnalyzer) Enabled() bool {
	return a.apiKey != ""
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (a *OpenAIAnalyzer) AnalyzeListing(ctx context.Context, listing *models.Listing) (*Analysis, error) {
	if !a.Enabled() {
		return nil, fmt.Errorf("inference API is not enabled (missing API key)")
	}
	if listing == nil {
		return nil, fmt.Errorf("no listing to analyze")
	}

	userPrompt := fmt.Sprintf("Title: %s\nDescription: %s\nPrice: %.0f\nPhotos: %d",
		listing.Title, listing.Description, listing.Price, len(listing.Images))

	reqBody, err := json.Marshal(chatRequest{
		Model: a.model,
		Messages: []chatMessage{
			{Role: "system", Content: analysisPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/chat/completions", a.apiBase)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chat chatResponse
	if err := json.Unmarshal(body, &chat); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return nil, fmt.Errorf("empty completion response")
	}

	return parseAnalysis(chat.Choices[0].Message.Content)
}

// parseAnalysis extracts the JSON object from a completion, tolerating
// markdown code fences around it.
func parseAnalysis(content string) (*Analysis, error) {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			content = content[start : end+1]
		}
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(content), &analysis); err != nil {
		return nil, fmt.Errorf("failed to parse analysis: %w", err)
	}
	if analysis.QualityScore < 0 {
		analysis.QualityScore = 0
	}
	if analysis.QualityScore > 100 {
		analysis.QualityScore = 100
	}
	return &analysis, nil
}
