package firebaseauth

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Verifier проверяет Firebase ID token и возвращает identity пользователя
type Verifier struct {
	client *auth.Client
}

// NewVerifier инициализирует Firebase App. credentialsFile может быть пустым,
// тогда используются Application Default Credentials.
func NewVerifier(ctx context.Context, projectID, credentialsFile string) (*Verifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: init app: %v", ErrInternal, err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: init auth client: %v", ErrInternal, err)
	}

	return &Verifier{client: client}, nil
}

// VerifyToken проверяет подпись и срок действия токена
func (v *Verifier) VerifyToken(ctx context.Context, idToken string) (domain.Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	email, _ := token.Claims["email"].(string)

	return domain.Identity{
		UserID: token.UID,
		Email:  email,
	}, nil
}
