package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/logger"
)

type stubVerifier struct {
	identity domain.Identity
	err      error
}

func (v *stubVerifier) VerifyToken(ctx context.Context, idToken string) (domain.Identity, error) {
	if idToken != "good-token" {
		return domain.Identity{}, errors.New("bad token")
	}
	return v.identity, v.err
}

// echoUser возвращает ID пользователя из контекста в теле ответа
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	userID, _ := GetUserID(r.Context())
	_, _ = w.Write([]byte(userID))
})

func TestAuth(t *testing.T) {
	verifier := &stubVerifier{identity: domain.Identity{UserID: "uid-1", Email: "ali@student.ukm.my"}}

	tests := []struct {
		name        string
		verifier    TokenVerifier
		allowHeader bool
		headers     map[string]string
		wantStatus  int
		wantUser    string
	}{
		{
			name:       "valid token",
			verifier:   verifier,
			headers:    map[string]string{"Authorization": "Bearer good-token"},
			wantStatus: http.StatusOK,
			wantUser:   "uid-1",
		},
		{
			name:       "invalid token",
			verifier:   verifier,
			headers:    map[string]string{"Authorization": "Bearer forged"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "header ignored in production",
			verifier:   verifier,
			headers:    map[string]string{"X-User-ID": "admin"},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:        "header accepted in development",
			allowHeader: true,
			headers:     map[string]string{"X-User-ID": "dev-user"},
			wantStatus:  http.StatusOK,
			wantUser:    "dev-user",
		},
		{
			name:        "token wins over header",
			verifier:    verifier,
			allowHeader: true,
			headers:     map[string]string{"Authorization": "Bearer good-token", "X-User-ID": "admin"},
			wantStatus:  http.StatusOK,
			wantUser:    "uid-1",
		},
		{
			name:       "no credentials",
			verifier:   verifier,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			NewAuth(tt.verifier, tt.allowHeader, logger.NewNop()).Middleware(echoUser).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, rec.Body.String())
			}
		})
	}
}

func TestGetIdentity_Empty(t *testing.T) {
	_, ok := GetIdentity(context.Background())
	assert.False(t, ok)

	_, ok = GetUserID(WithIdentity(context.Background(), domain.Identity{}))
	assert.False(t, ok)
}
