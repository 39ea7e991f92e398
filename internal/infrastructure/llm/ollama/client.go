// Package ollama implements zero-shot document classification against a
// local Ollama server. The candidate label set travels in the prompt and
// the model returns the labels ranked by confidence as strict JSON.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/idimitrov/docsorter/internal/core/domain"
	"github.com/idimitrov/docsorter/internal/infrastructure/resilience"
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type Option func(*Client)

// WithMaxRPS throttles requests to the model host. Zero disables the limit.
func WithMaxRPS(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func New(baseURL, model string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classifier ranks the fixed candidate labels for extracted document text.
type Classifier struct {
	client   *Client
	executor *resilience.Executor
}

func NewClassifier(client *Client, executor *resilience.Executor) *Classifier {
	return &Classifier{client: client, executor: executor}
}

// rankedResponse is the strict JSON shape the prompt demands: labels in
// descending confidence order with matching scores.
type rankedResponse struct {
	Labels []string  `json:"labels"`
	Scores []float64 `json:"scores"`
}

func (c *Classifier) Classify(ctx context.Context, text string) (domain.Classification, error) {
	if strings.TrimSpace(text) == "" {
		return domain.Classification{}, domain.WrapError(domain.ErrInvalidInput, "classify", fmt.Errorf("empty document text"))
	}

	var ranked rankedResponse
	call := func(callCtx context.Context) error {
		respText, err := c.client.generateJSON(callCtx, buildClassificationPrompt(text, domain.CandidateLabels()))
		if err != nil {
			return err
		}
		var parsed rankedResponse
		if err := json.Unmarshal([]byte(extractJSONObject(respText)), &parsed); err != nil {
			return fmt.Errorf("parse ranked labels json: %w", err)
		}
		ranked = parsed
		return nil
	}

	var err error
	if c.executor != nil {
		err = c.executor.Execute(ctx, "ollama.classify", call, classifyOllamaError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return domain.Classification{}, wrapTemporaryIfNeeded("classify", err)
	}

	return topLabel(ranked)
}

// topLabel takes the single highest-ranked label and discards the rest.
func topLabel(ranked rankedResponse) (domain.Classification, error) {
	if len(ranked.Labels) == 0 {
		return domain.Classification{}, fmt.Errorf("classifier returned no labels")
	}
	if len(ranked.Scores) != len(ranked.Labels) {
		return domain.Classification{}, fmt.Errorf("labels/scores mismatch: %d/%d", len(ranked.Labels), len(ranked.Scores))
	}
	label := strings.TrimSpace(ranked.Labels[0])
	if label == "" {
		return domain.Classification{}, fmt.Errorf("classifier returned blank top label")
	}
	return domain.Classification{
		Label:      domain.DocumentType(label),
		Confidence: ranked.Scores[0],
	}, nil
}

func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
	}

	var response struct {
		Response string `json:"response"`
	}
	if err := c.postJSON(ctx, "/api/generate", reqBody, &response, "generate"); err != nil {
		return "", err
	}
	return strings.TrimSpace(response.Response), nil
}

func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
