package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/thinkfirst-app/thinkfirst/internal/domain"
)

// ─── Remote Classifier ──────────────────────────────────────────────────────
// Talks to an OpenAI-compatible chat-completions endpoint. Any non-2xx
// status or unparseable body is an error; callers fall back to the
// heuristic and never surface the failure to the user.

const analyzeSystemPrompt = `You are an AI usage analyzer that determines if a prompt represents "lazy" usage of AI or good learning behavior.

These are considered LAZY usage and should be flagged:
1. Copy-pasted assignment/homework text
2. Direct requests for solutions without showing work/understanding
3. Asking AI to write complete or fix code/essays
4. Direct requests like "solve this" or "help with this homework"
5. Any text that appears to be directly copied from a course assignment

These are considered GOOD LEARNING behavior and should be flagged as learning:
1. Asking for explanations of concepts
2. Requesting help with specific parts after showing attempt
3. Asking about best practices or approaches
4. Seeking to understand why something works
5. Asking for guidance on problem-solving approach

Respond with a JSON object: {"isLazy": boolean, "isLearning": boolean, "reason": string (very brief)}`

const rewriteSystemPrompt = `You are an AI tutor that helps students rephrase their questions to focus on learning and understanding.
Convert "lazy" prompts that ask for direct solutions into learning-focused prompts that ask for explanations, guidance, and concepts instead of finished answers. Keep the rephrased prompt around the same length as the original.

Respond with a JSON object: {"learningPrompt": string}`

// RemoteConfig configures the remote classification service.
type RemoteConfig struct {
	Endpoint string
	APIKey   string
	Model    string
	Timeout  time.Duration
}

// RemoteClient is an OpenAI-compatible chat-completions client.
type RemoteClient struct {
	cfg    RemoteConfig
	client *http.Client
}

// NewRemoteClient builds a remote client. The transport timeout bounds
// every call; there is no retry — one failed call means fallback.
func NewRemoteClient(cfg RemoteConfig) *RemoteClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RemoteClient{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Analyze classifies prompt via the remote service.
func (c *RemoteClient) Analyze(ctx context.Context, prompt string) (domain.Analysis, error) {
	content, err := c.complete(ctx, analyzeSystemPrompt, prompt, 0.3, 150)
	if err != nil {
		return domain.Analysis{}, err
	}

	var parsed struct {
		IsLazy     bool   `json:"isLazy"`
		IsLearning bool   `json:"isLearning"`
		Reason     string `json:"reason"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return domain.Analysis{}, fmt.Errorf("%w: malformed analysis body: %v", domain.ErrRemoteClassifier, err)
	}

	return domain.Analysis{
		IsLazy:     parsed.IsLazy,
		IsLearning: parsed.IsLearning,
		Reason:     parsed.Reason,
		Source:     domain.SourceRemote,
	}, nil
}

// Rewrite asks the remote service for a learning-focused phrasing of a
// lazy prompt. Best-effort: callers proceed without a suggestion on
// error.
func (c *RemoteClient) Rewrite(ctx context.Context, prompt string) (string, error) {
	content, err := c.complete(ctx, rewriteSystemPrompt, prompt, 0.7, 200)
	if err != nil {
		return "", err
	}

	var parsed struct {
		LearningPrompt string `json:"learningPrompt"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed rewrite body: %v", domain.ErrRemoteClassifier, err)
	}
	return parsed.LearningPrompt, nil
}

// complete runs one chat completion and returns the first choice's
// message content.
func (c *RemoteClient) complete(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteClassifier, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteClassifier, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", domain.ErrRemoteClassifier, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrRemoteClassifier, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed response: %v", domain.ErrRemoteClassifier, err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domain.ErrRemoteClassifier)
	}
	return parsed.Choices[0].Message.Content, nil
}
