package stylist

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	geminiClient "github.com/m04kA/SMC-BarberBooking/internal/integrations/gemini"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type providerFunc func(ctx context.Context, prompt string) (string, error)

func (f providerFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

type countingMetrics struct {
	served map[string]int
}

func (m *countingMetrics) RecommendationServed(source string) {
	if m.served == nil {
		m.served = map[string]int{}
	}
	m.served[source]++
}

var validRequest = &Request{
	Description: "something clean for my FYP presentation",
	FaceShape:   "Oval",
	HairTexture: "Thick",
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name       string
		provider   providerFunc
		wantText   string
		wantSource string
	}{
		{
			name: "model answer",
			provider: func(ctx context.Context, prompt string) (string, error) {
				return "  Go for a textured crop, abang.  ", nil
			},
			wantText:   "Go for a textured crop, abang.",
			wantSource: SourceAI,
		},
		{
			name: "empty answer",
			provider: func(ctx context.Context, prompt string) (string, error) {
				return " ", nil
			},
			wantText:   fallbackEmpty,
			wantSource: SourceFallback,
		},
		{
			name: "no candidates",
			provider: func(ctx context.Context, prompt string) (string, error) {
				return "", geminiClient.ErrEmptyResponse
			},
			wantText:   fallbackEmpty,
			wantSource: SourceFallback,
		},
		{
			name: "provider down",
			provider: func(ctx context.Context, prompt string) (string, error) {
				return "", fmt.Errorf("%w: 503", geminiClient.ErrInternal)
			},
			wantText:   fallbackOffline,
			wantSource: SourceFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &countingMetrics{}
			svc := NewService(tt.provider, m, logger.NewNop())

			resp, err := svc.Recommend(context.Background(), validRequest)

			require.NoError(t, err)
			assert.Equal(t, tt.wantText, resp.Recommendation)
			assert.Equal(t, tt.wantSource, resp.Source)
			assert.Equal(t, 1, m.served[tt.wantSource])
		})
	}
}

func TestRecommend_NotConfigured(t *testing.T) {
	svc := NewService(nil, &countingMetrics{}, logger.NewNop())

	_, err := svc.Recommend(context.Background(), validRequest)

	require.ErrorIs(t, err, ErrProviderNotConfigured)
}

func TestRecommend_InvalidInput(t *testing.T) {
	called := false
	svc := NewService(providerFunc(func(ctx context.Context, prompt string) (string, error) {
		called = true
		return "", nil
	}), &countingMetrics{}, logger.NewNop())

	_, err := svc.Recommend(context.Background(), &Request{Description: "anything"})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.False(t, called)
}

func TestRecommend_CancelledRequest(t *testing.T) {
	svc := NewService(providerFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", fmt.Errorf("rpc: %w", context.Canceled)
	}), &countingMetrics{}, logger.NewNop())

	_, err := svc.Recommend(context.Background(), validRequest)

	require.True(t, errors.Is(err, context.Canceled))
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt(&Request{Description: " short sides ", FaceShape: "Round", HairTexture: "Wavy"})

	assert.Contains(t, prompt, "- Face Shape: Round")
	assert.Contains(t, prompt, "- Hair Texture: Wavy")
	assert.Contains(t, prompt, "- Request: short sides\n")
	assert.Contains(t, prompt, "RM13")
}
