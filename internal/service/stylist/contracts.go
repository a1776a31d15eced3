package stylist

import "context"

// Provider генеративная модель, возвращающая текст по prompt
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Metrics учет выданных рекомендаций
type Metrics interface {
	RecommendationServed(source string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
