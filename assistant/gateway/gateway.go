// Package gateway provides an OpenAI-compatible agent gateway with a
// deterministic simulated fallback. It backs the auxiliary agent invoke
// endpoint and is never consulted by the query router.
package gateway

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	openai "github.com/sashabaranov/go-openai"
)

// Config represents gateway configuration.
type Config struct {
	Provider string // openai, deepseek, siliconflow, ollama
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  int // request timeout in seconds (default: 120)
}

// Gateway answers free-form prompts. With an API key configured it calls the
// remote model; without one it returns deterministic simulated completions.
type Gateway struct {
	client *openai.Client
	model  string
}

// New creates a gateway. A nil or keyless config yields the simulated mode.
func New(cfg *Config) *Gateway {
	if cfg == nil || cfg.APIKey == "" {
		return &Gateway{}
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = newHTTPClient(cfg.Timeout)

	return &Gateway{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}
}

// IsSimulated reports whether the gateway answers from canned completions.
func (g *Gateway) IsSimulated() bool {
	return g.client == nil
}

// Invoke sends the prompt to the model, or answers from the simulated
// completion table. Remote failures degrade to the simulated answer.
func (g *Gateway) Invoke(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return simulateCompletion(prompt), nil
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a financial assistant helping with portfolios, financial insights, and FOMC report summaries."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		slog.Warn("LLM call failed, returning simulated completion", "error", err)
		return simulateCompletion(prompt), nil
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("LLM returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// simulateCompletion answers from prompt keywords, mirroring the canned
// agent responses used in development.
func simulateCompletion(prompt string) string {
	lower := strings.ToLower(prompt)

	switch {
	case strings.Contains(lower, "portfolio"):
		return "I can help you create an investment portfolio. Please specify which industry you're interested in and how many companies you'd like to include."
	case strings.Contains(lower, "financial data") || strings.Contains(lower, "insights"):
		return "I can provide financial insights and data analysis. What specific information are you looking for?"
	case strings.Contains(lower, "fomc") || strings.Contains(lower, "federal reserve"):
		return "I can summarize the latest FOMC report for you. The Federal Reserve has maintained its policy stance with a focus on inflation and employment targets."
	default:
		return "I'm your financial assistant. I can help with portfolio creation, financial insights, and FOMC report summaries. How can I assist you today?"
	}
}

// newHTTPClient creates an HTTP client tuned for long-running LLM requests.
func newHTTPClient(timeoutSeconds int) *http.Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 120
	}
	return &http.Client{
		Timeout: time.Duration(timeoutSeconds) * time.Second,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   10 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}
