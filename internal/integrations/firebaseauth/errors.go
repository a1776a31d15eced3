package firebaseauth

import "errors"

var (
	// ErrInvalidToken возвращается, когда ID token не прошел проверку
	ErrInvalidToken = errors.New("firebaseauth: invalid id token")

	// ErrInternal возвращается при ошибках инициализации
	ErrInternal = errors.New("firebaseauth: internal error")
)
