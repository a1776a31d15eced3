package stylist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	geminiClient "github.com/m04kA/SMC-BarberBooking/internal/integrations/gemini"
)

const (
	fallbackOffline = "AI is offline. Just trust the barber!"
	fallbackEmpty   = "Just ask for a Mid Fade bro, always looks good."
)

const promptTemplate = `Context: You are a professional barber at University Kebangsaan Malaysia (UKM).
Client: A male university student.
Constraints:
- Wants to look handsome for class/presentations.
- Needs low maintenance.
- The haircut costs RM13 (affordable).

Student Profile:
- Face Shape: %s
- Hair Texture: %s
- Request: %s

Task: Recommend a specific haircut style. Explain why it suits their face shape. Keep the tone friendly, like a "bro" or "abang" talking to a student. Keep it short (max 100 words).`

var validate = validator.New(validator.WithRequiredStructEnabled())

// Service подбор стрижки через генеративную модель
type Service struct {
	provider Provider
	metrics  Metrics
	logger   Logger
}

// NewService создает сервис. provider == nil означает, что модель не настроена.
func NewService(provider Provider, metrics Metrics, logger Logger) *Service {
	return &Service{
		provider: provider,
		metrics:  metrics,
		logger:   logger,
	}
}

// Recommend возвращает рекомендацию. Сбой модели не считается ошибкой:
// клиент получает запасной ответ.
func (s *Service) Recommend(ctx context.Context, req *Request) (*Response, error) {
	if s.provider == nil {
		return nil, ErrProviderNotConfigured
	}

	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	prompt := BuildPrompt(req)

	text, err := s.provider.Generate(ctx, prompt)
	switch {
	case err == nil && strings.TrimSpace(text) != "":
		s.metrics.RecommendationServed(SourceAI)
		return &Response{Recommendation: strings.TrimSpace(text), Source: SourceAI}, nil
	case err == nil, errors.Is(err, geminiClient.ErrEmptyResponse):
		s.logger.Warn("Recommend: provider returned an empty answer")
		s.metrics.RecommendationServed(SourceFallback)
		return &Response{Recommendation: fallbackEmpty, Source: SourceFallback}, nil
	case errors.Is(err, context.Canceled):
		return nil, err
	default:
		s.logger.Error("Recommend: provider failed: %v", err)
		s.metrics.RecommendationServed(SourceFallback)
		return &Response{Recommendation: fallbackOffline, Source: SourceFallback}, nil
	}
}

// BuildPrompt собирает prompt для модели
func BuildPrompt(req *Request) string {
	return fmt.Sprintf(promptTemplate,
		strings.TrimSpace(req.FaceShape),
		strings.TrimSpace(req.HairTexture),
		strings.TrimSpace(req.Description),
	)
}
