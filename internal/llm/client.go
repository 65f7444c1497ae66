// ABOUTME: Azure OpenAI chat-completions client
// ABOUTME: Builds the deployment URL, issues one POST per call, extracts the first choice

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jee1994/movie-chat-backend/internal/config"
	"github.com/jee1994/movie-chat-backend/internal/observability"
)

const requestTimeout = 30 * time.Second

type Client struct {
	endpoint    string
	apiVersion  string
	deployment  string
	apiKey      string
	maxTokens   int
	temperature float64
	httpClient  *http.Client
	log         *zap.Logger
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func NewClient(cfg *config.Config, log *zap.Logger) *Client {
	return &Client{
		endpoint:    strings.TrimSuffix(cfg.AzureEndpoint, "/"),
		apiVersion:  cfg.AzureAPIVersion,
		deployment:  cfg.AzureDeployment,
		apiKey:      cfg.AzureAPIKey,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		log: log,
	}
}

// Deployment returns the configured deployment name, reported by /api/health.
func (c *Client) Deployment() string {
	return c.deployment
}

// Complete sends the fixed system prompt plus userMessage to the deployment
// and returns the first choice's content. Errors carry a Kind; no retries.
func (c *Client) Complete(ctx context.Context, userMessage string) (string, error) {
	reqBody := completionRequest{
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", networkErr("failed to marshal completion request", err)
	}

	apiURL := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", networkErr("failed to build completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	c.log.Debug("calling Azure OpenAI",
		zap.String("deployment", c.deployment),
		zap.Int("message_len", len(userMessage)))

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		observability.ObserveCompletion(time.Since(start), "network_error")
		return "", networkErr("completion request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observability.ObserveCompletion(time.Since(start), "network_error")
		return "", networkErr(fmt.Sprintf("Azure OpenAI returned status %d", resp.StatusCode), nil)
	}

	var cr completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		observability.ObserveCompletion(time.Since(start), "bad_response")
		return "", badResponseErr("failed to decode completion response", err)
	}

	if len(cr.Choices) == 0 || cr.Choices[0].Message.Content == "" {
		observability.ObserveCompletion(time.Since(start), "bad_response")
		return "", badResponseErr("completion response missing choices[0].message.content", nil)
	}

	observability.ObserveCompletion(time.Since(start), "success")
	c.log.Debug("completion succeeded",
		zap.Duration("took", time.Since(start)),
		zap.Int("reply_len", len(cr.Choices[0].Message.Content)))

	return cr.Choices[0].Message.Content, nil
}
