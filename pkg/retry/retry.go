package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultMaxAttempts     = 3
	DefaultInitialInterval = 100 * time.Millisecond
	DefaultMaxInterval     = 2 * time.Second
)

// Config параметры повторных попыток
type Config struct {
	MaxAttempts     int           // Общее число попыток, включая первую
	InitialInterval time.Duration // Пауза перед второй попыткой
	MaxInterval     time.Duration // Верхняя граница паузы
}

// Retrier повторяет операцию с экспоненциальной паузой, пока ошибка временная
type Retrier struct {
	cfg         Config
	isTransient func(error) bool
}

// New создает Retrier. isTransient решает, имеет ли смысл повторять операцию.
func New(cfg Config, isTransient func(error) bool) *Retrier {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = DefaultInitialInterval
	}
	if cfg.MaxInterval <= 0 {
		cfg.MaxInterval = DefaultMaxInterval
	}
	if isTransient == nil {
		isTransient = func(error) bool { return false }
	}
	return &Retrier{cfg: cfg, isTransient: isTransient}
}

// Do выполняет fn. Постоянные ошибки возвращаются сразу, временные повторяются
// не более MaxAttempts раз. Отмена контекста прерывает ожидание.
func (r *Retrier) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.cfg.InitialInterval
	exp.MaxInterval = r.cfg.MaxInterval
	exp.MaxElapsedTime = 0

	policy := backoff.WithContext(
		backoff.WithMaxRetries(exp, uint64(r.cfg.MaxAttempts-1)),
		ctx,
	)

	return backoff.Retry(func() error {
		err := fn(ctx)
		if err == nil {
			return nil
		}
		if !r.isTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy)
}

// NoRetry выполняет операцию ровно один раз
type NoRetry struct{}

func (NoRetry) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
