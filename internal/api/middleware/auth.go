package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const (
	headerAuthorization = "Authorization"
	headerUserID        = "X-User-ID"
	bearerPrefix        = "Bearer "

	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier проверяет ID token identity provider'а
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (domain.Identity, error)
}

type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth аутентификация запросов.
// В production пользователь определяется только по Bearer токену.
// Заголовок X-User-ID принимается, только если allowUserIDHeader = true (локальная разработка).
type Auth struct {
	verifier          TokenVerifier
	allowUserIDHeader bool
	logger            Logger
}

func NewAuth(verifier TokenVerifier, allowUserIDHeader bool, logger Logger) *Auth {
	return &Auth{
		verifier:          verifier,
		allowUserIDHeader: allowUserIDHeader,
		logger:            logger,
	}
}

// Middleware mux.MiddlewareFunc
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := bearerToken(r); ok && a.verifier != nil {
			identity, err := a.verifier.VerifyToken(r.Context(), token)
			if err != nil {
				a.logger.Warn("Auth - invalid token: request_id=%s, error=%v", GetRequestID(r.Context()), err)
				handlers.RespondUnauthorized(w, msgInvalidToken)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
			return
		}

		if a.allowUserIDHeader {
			if userID := strings.TrimSpace(r.Header.Get(headerUserID)); userID != "" {
				next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), domain.Identity{UserID: userID})))
				return
			}
		}

		handlers.RespondUnauthorized(w, msgMissingToken)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(headerAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	return token, token != ""
}

// WithIdentity кладет identity в контекст
func WithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity извлекает identity из контекста
func GetIdentity(ctx context.Context) (domain.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(domain.Identity)
	if !ok || identity.UserID == "" {
		return domain.Identity{}, false
	}
	return identity, true
}

// GetUserID извлекает ID пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.UserID, ok
}
