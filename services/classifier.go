package services

import (
	"ReframeGo/config"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

var (
	// ErrUnavailable means the provider could not be reached, timed
	// out, or answered garbage. Callers treat it as "no label".
	ErrUnavailable = errors.New("classifier unavailable")
	// ErrRateLimited means the provider refused with a quota error.
	ErrRateLimited = errors.New("classifier rate limited")
)

// EmotionLabel is the classifier's verdict for one piece of text.
type EmotionLabel struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// EmotionClassifier labels free text with a dominant emotion. The call
// is synchronous and bounded; implementations never retry.
type EmotionClassifier interface {
	Classify(ctx context.Context, text string) (*EmotionLabel, error)
}

const classifierPrompt = `You label short behavioral-health journal entries with the single dominant emotion of the writer.
Answer with JSON only, no prose: {"label": "<one lowercase word, e.g. anxiety, shame, anger, guilt, relief>", "confidence": <number between 0 and 1>}`

// OpenAIClassifier talks to any OpenAI-compatible chat endpoint in
// json_object mode.
type OpenAIClassifier struct {
	model   llms.Model
	timeout time.Duration
}

func NewOpenAIClassifier(conf config.Config) (*OpenAIClassifier, error) {
	if conf.ClassifierAPIKey == "" {
		return nil, fmt.Errorf("classifier API key not configured")
	}

	opts := []openai.Option{
		openai.WithToken(conf.ClassifierAPIKey),
		openai.WithModel(conf.ClassifierModel),
		openai.WithResponseFormat(&openai.ResponseFormat{
			Type: "json_object",
		}),
	}
	if conf.ClassifierAPIEndpoint != "" {
		opts = append(opts, openai.WithBaseURL(conf.ClassifierAPIEndpoint))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier client: %w", err)
	}

	timeout := time.Duration(conf.ClassifierTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 4 * time.Second
	}

	return &OpenAIClassifier{
		model:   client,
		timeout: timeout,
	}, nil
}

// Classify asks the provider for a label, bounded by the configured
// timeout. Provider exceptions of any shape come back as ErrUnavailable
// or ErrRateLimited so the caller's fallback is a plain conditional.
func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (*EmotionLabel, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(classifierPrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	response, err := c.model.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		if isRateLimit(err) {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if len(response.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", ErrUnavailable)
	}

	var label EmotionLabel
	if err := json.Unmarshal([]byte(response.Choices[0].Content), &label); err != nil {
		return nil, fmt.Errorf("%w: malformed response: %v", ErrUnavailable, err)
	}

	label.Label = strings.ToLower(strings.TrimSpace(label.Label))
	if label.Label == "" {
		return nil, fmt.Errorf("%w: empty label", ErrUnavailable)
	}
	if label.Confidence < 0 {
		label.Confidence = 0
	}
	if label.Confidence > 1 {
		label.Confidence = 1
	}

	return &label, nil
}

func isRateLimit(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "rate limit")
}
