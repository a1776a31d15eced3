package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент генеративной модели Gemini
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
	timeout   time.Duration
	log       Logger
}

// NewClient создает клиент Gemini. Закрывать через Close.
func NewClient(ctx context.Context, apiKey, modelName string, timeout time.Duration, log Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create client: %v", ErrInternal, err)
	}

	return &Client{
		client:    client,
		model:     client.GenerativeModel(modelName),
		modelName: modelName,
		timeout:   timeout,
		log:       log,
	}, nil
}

// Generate отправляет prompt и склеивает текстовые части первого кандидата
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.log.Error("Gemini: model=%s request failed after %s: %v", c.modelName, time.Since(start), err)
		return "", fmt.Errorf("%w: generate content: %v", ErrInternal, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	result := strings.TrimSpace(sb.String())
	if result == "" {
		return "", ErrEmptyResponse
	}

	c.log.Info("Gemini: model=%s answered in %s", c.modelName, time.Since(start))
	return result, nil
}

// Close освобождает соединение с API
func (c *Client) Close() error {
	return c.client.Close()
}
