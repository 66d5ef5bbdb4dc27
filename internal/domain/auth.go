package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrHashing            = errors.New("password hashing failed")

	// ErrTokenInvalid is matched by every token verification failure.
	ErrTokenInvalid      = errors.New("token is invalid or expired")
	ErrTokenMalformed    = fmt.Errorf("%w: malformed", ErrTokenInvalid)
	ErrTokenBadSignature = fmt.Errorf("%w: bad signature", ErrTokenInvalid)
	ErrTokenExpired      = fmt.Errorf("%w: expired", ErrTokenInvalid)
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
