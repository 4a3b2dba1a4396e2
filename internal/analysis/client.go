// Package analysis asks a chat-completions endpoint for a short critique of
// a day's schedule.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tokei/internal/constants"
	"github.com/julianstephens/tokei/internal/logger"
	"github.com/julianstephens/tokei/internal/models"
)

// Analyzer turns an ordered interval list into free text. ok is false when
// no analysis could be produced.
type Analyzer interface {
	Analyze(ctx context.Context, intervals []models.Interval) (text string, ok bool)
}

const systemPrompt = "You review daily schedules and give practical advice on time management and ordering. " +
	"Only discuss the entries you are given; never invent appointments."

const userPromptPrefix = "Here is today's schedule. Analyse it and suggest improvements to how the time is arranged:\n"

// Config configures a Client.
type Config struct {
	Endpoint    string
	Model       string
	APIKey      string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
	HTTPClient  *http.Client
}

// Client calls an OpenAI-compatible chat-completions endpoint.
type Client struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = constants.DefaultAnalysisURL
	}
	if cfg.Model == "" {
		cfg.Model = constants.DefaultAnalysisModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = constants.DefaultAnalysisTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = constants.DefaultAnalysisTemp
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = constants.DefaultAnalysisTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{cfg: cfg, client: client}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// FormatSchedule renders intervals one per line as "HH:MM-HH:MM: title",
// ordered by start.
func FormatSchedule(intervals []models.Interval) string {
	sorted := make([]models.Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMinute() < sorted[j].StartMinute()
	})

	var b strings.Builder
	for _, iv := range sorted {
		fmt.Fprintf(&b, "%s: %s\n", iv.Span(), iv.Title)
	}
	return b.String()
}

// Analyze returns the fixed empty-schedule message without any request when
// intervals is empty. Every failure is logged and reported as ok false.
func (c *Client) Analyze(ctx context.Context, intervals []models.Interval) (string, bool) {
	if len(intervals) == 0 {
		return constants.EmptyScheduleMessage, true
	}
	text, err := c.request(ctx, intervals)
	if err != nil {
		logger.Warn("schedule analysis failed", "error", err)
		return "", false
	}
	return text, true
}

func (c *Client) request(ctx context.Context, intervals []models.Interval) (string, error) {
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("no API key configured")
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPromptPrefix + FormatSchedule(intervals)},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(data)))
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("response contained no message")
	}
	return parsed.Choices[0].Message.Content, nil
}
