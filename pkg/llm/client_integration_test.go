//go:build integration

package llm

import (
	"context"
	"os"
	"testing"
	"time"

	"livslogg/pkg/confkit"
)

// TestMain loads .env so OPENROUTER_API_KEY can be injected easily in local/CI.
func TestMain(m *testing.M) {
	confkit.LoadDotenvOnce()
	os.Exit(m.Run())
}

func newIntegrationClient(t *testing.T) *Client {
	t.Helper()

	apiKey := os.Getenv("OPENROUTER_API_KEY")
	if apiKey == "" {
		t.Skip("OPENROUTER_API_KEY not set; skipping integration test")
	}
	baseURL := os.Getenv("OPENROUTER_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	cfg := &Config{
		BaseURL:      baseURL,
		APIKey:       apiKey,
		DefaultModel: defaultModel,
		Timeout:      15 * time.Second,
		MaxRetries:   2,
		LogLevel:     "error",
	}

	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestIntegration_Chat_Basic(t *testing.T) {
	client := newIntegrationClient(t)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	resp, err := client.Chat(ctx, &ChatRequest{
		Messages: []Message{
			{Role: "user", Content: "Say a short hello."},
		},
	})
	if err != nil {
		t.Fatalf("Chat error: %v", err)
	}
	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		t.Fatalf("unexpected empty response: %#v", resp)
	}
}
