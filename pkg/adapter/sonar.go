package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kagehara/sonarbridge/pkg/model"
	"github.com/m-mizutani/goerr/v2"
)

const (
	sonarBaseURL = "https://api.perplexity.ai"
	DefaultModel = "sonar-pro"

	// Low temperature favors precision over creativity; answers should be
	// reproducible rather than inventive.
	sonarTemperature = 0.3

	defaultInstruction = "You are a helpful research assistant. Answer the question helpfully and accurately."
)

var (
	ErrNoAPIKey = goerr.New("upstream API key is not configured")
	ErrUpstream = goerr.New("upstream API returned error")
)

// AnswerStyle is a caller-supplied hint for how long the answer should be
type AnswerStyle string

const (
	StyleShort  AnswerStyle = "short"
	StyleMedium AnswerStyle = "medium"
	StyleLong   AnswerStyle = "long"
)

// WordFloor returns the minimum word target implied by the style, or 0 for
// an unset style.
func (s AnswerStyle) WordFloor() int {
	switch s {
	case StyleShort:
		return 60
	case StyleMedium:
		return 160
	case StyleLong:
		return 300
	default:
		return 0
	}
}

// Validate checks if the style is one of the allowed hints. An empty style
// is valid and means "no hint".
func (s AnswerStyle) Validate() error {
	switch s {
	case "", StyleShort, StyleMedium, StyleLong:
		return nil
	default:
		return goerr.New("invalid answer style", goerr.V("style", string(s)))
	}
}

// AskOptions carries the optional length hints for a single Ask call
type AskOptions struct {
	Style    AnswerStyle
	MinWords int
}

// Sonar is the interface for the upstream QA API client
type Sonar interface {
	// Ask sends one question upstream and returns the normalized answer.
	// Exactly one outbound call per invocation; no retries.
	Ask(ctx context.Context, query model.Query, opts AskOptions) (*model.Answer, error)
}

// SonarClient implements Sonar against the Perplexity chat-completions API
type SonarClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type SonarOption func(*SonarClient)

func WithModel(m string) SonarOption {
	return func(c *SonarClient) {
		c.model = m
	}
}

func WithBaseURL(u string) SonarOption {
	return func(c *SonarClient) {
		c.baseURL = u
	}
}

func WithHTTPClient(hc *http.Client) SonarOption {
	return func(c *SonarClient) {
		c.httpClient = hc
	}
}

// NewSonar creates a new Sonar API client. The API key is checked at call
// time, not here, so a server can start without a credential and fail only
// the calls that need one.
func NewSonar(apiKey string, opts ...SonarOption) *SonarClient {
	c := &SonarClient{
		apiKey:  apiKey,
		model:   DefaultModel,
		baseURL: sonarBaseURL,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
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
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage map[string]any `json:"usage"`
}

// instruction resolves the length hints into a system instruction. No hints
// means the unmodified default with no word target embedded.
func instruction(opts AskOptions) string {
	if opts.Style == "" && opts.MinWords <= 0 {
		return defaultInstruction
	}

	target := opts.Style.WordFloor()
	if opts.MinWords > target {
		target = opts.MinWords
	}
	if target <= 0 {
		return defaultInstruction
	}

	return fmt.Sprintf("You are a helpful research assistant. Write a thorough answer of around %d words if appropriate for the question. Precision matters more than length: do not pad the answer or fabricate detail to reach the word count, and keep simple answers short.", target)
}

func (c *SonarClient) Ask(ctx context.Context, query model.Query, opts AskOptions) (*model.Answer, error) {
	if c.apiKey == "" {
		return nil, goerr.Wrap(ErrNoAPIKey, "set PERPLEXITY_API_KEY to call the upstream API")
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: instruction(opts)},
			{Role: "user", Content: string(query)},
		},
		Temperature: sonarTemperature,
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal upstream request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to call upstream API")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, goerr.Wrap(ErrUpstream, "upstream API returned non-success status",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)))
	}

	var payload chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, goerr.Wrap(err, "failed to decode upstream response")
	}

	// The payload shape is only partially trusted. A response without
	// choices degrades to an empty answer instead of failing the call.
	text := ""
	if len(payload.Choices) > 0 {
		text = payload.Choices[0].Message.Content
	}

	return &model.Answer{
		Text: text,
		Meta: map[string]any{
			"model": payload.Model,
			"usage": payload.Usage,
		},
	}, nil
}
