package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wordup-app/apiserver/config"
)

const coherePrompt = `You are an expert speech coach and English language teacher. Analyze this speech transcript and provide detailed, constructive feedback.

Speech Transcript:
%q

Please provide your analysis in this format:

OVERALL ASSESSMENT:
[2-3 sentences about the overall quality]

STRENGTHS:
- [Strength 1]
- [Strength 2]
- [Strength 3]

AREAS FOR IMPROVEMENT:
- [Area 1]
- [Area 2]
- [Area 3]

SPECIFIC SUGGESTIONS:
- [Actionable tip 1]
- [Actionable tip 2]
- [Actionable tip 3]

SCORE: [X]/100

Keep feedback encouraging and constructive.`

// CohereClient calls the Cohere chat API. The credential lives only in
// backend configuration and is never echoed to clients.
type CohereClient struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

// NewCohereClient constructs a Cohere client from config.
func NewCohereClient(cfg config.FeedbackConfig) (*CohereClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("feedback api key is required")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("feedback model is required")
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.cohere.ai"
	}

	return &CohereClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    baseURL,
	}, nil
}

type cohereChatRequest struct {
	Message string `json:"message"`
	Model   string `json:"model"`
}

type cohereChatResponse struct {
	Text    string `json:"text"`
	Message string `json:"message"`
}

// Feedback sends the transcript to the chat endpoint and returns the
// generated text verbatim.
func (c *CohereClient) Feedback(ctx context.Context, transcript string) (string, error) {
	payload, err := json.Marshal(cohereChatRequest{
		Message: fmt.Sprintf(coherePrompt, transcript),
		Model:   c.model,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}

	var parsed cohereChatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("feedback api returned status %d", resp.StatusCode)
		}
		return "", errors.New("feedback api returned malformed response")
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Message != "" {
			return "", fmt.Errorf("feedback api error: %s", parsed.Message)
		}
		return "", fmt.Errorf("feedback api returned status %d", resp.StatusCode)
	}
	if strings.TrimSpace(parsed.Text) == "" {
		return "", errors.New("feedback api returned empty feedback")
	}
	return parsed.Text, nil
}
