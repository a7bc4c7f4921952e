package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/pdelacruz/newscred/internal/model"
)

const classifierSystemPrompt = `You are a misinformation analyst. Given a piece of news or social media text, decide whether it reads as genuine reporting ("real") or fabricated/misleading content ("fake").

Respond with ONLY a JSON object, no prose:
{"label": "real" or "fake", "confidence": 0.0 to 1.0}

Base the confidence on how strongly the text's style, claims, and framing match known misinformation patterns. Do not refuse; always pick a label.`

// OpenAIClassifier implements Provider using OpenAI's Chat Completions API
type OpenAIClassifier struct {
	client    *openai.Client
	modelName string
	maxTokens int
	timeout   time.Duration
}

// NewOpenAIClassifier creates an OpenAI-backed classifier
func NewOpenAIClassifier(cfg model.ClassifierConfig) (*OpenAIClassifier, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 200
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 20 * time.Second
	}

	return &OpenAIClassifier{
		client:    openai.NewClientWithConfig(clientConfig),
		modelName: modelName,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

// Name returns the provider name
func (c *OpenAIClassifier) Name() string {
	return "openai"
}

// Predict classifies text via a chat completion with a strict JSON contract
func (c *OpenAIClassifier) Predict(ctx context.Context, text string) (*Prediction, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: classifierSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
		MaxTokens:   c.maxTokens,
		Temperature: 0.3, // Lower temperature for more consistent labeling
	}

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	pred, err := parsePrediction(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	pred.ModelName = c.modelName
	return pred, nil
}

// parsePrediction reads the JSON contract out of a completion, tolerating
// code fences and surrounding prose.
func parsePrediction(content string) (*Prediction, error) {
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("classifier returned no JSON object: %q", content)
	}

	var parsed struct {
		Label      string  `json:"label"`
		Confidence float64 `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(content[start:end+1]), &parsed); err != nil {
		return nil, fmt.Errorf("parse classifier response: %w", err)
	}

	label := strings.ToLower(strings.TrimSpace(parsed.Label))
	if label != LabelReal && label != LabelFake {
		return nil, fmt.Errorf("classifier returned unknown label: %q", parsed.Label)
	}

	confidence := parsed.Confidence
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &Prediction{Label: label, Confidence: confidence}, nil
}
