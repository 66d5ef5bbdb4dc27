package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/repository"
	"github.com/google/uuid"
)

// passwordHasher is satisfied by *auth.BcryptHasher.
type passwordHasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
	Decoy(password string)
}

// tokenIssuer is satisfied by *auth.TokenService.
type tokenIssuer interface {
	Issue(userID string) (string, error)
}

type IdentityUsecase struct {
	users     repository.UserRepository
	passwords passwordHasher
	tokens    tokenIssuer
	now       func() time.Time
}

func NewIdentityUsecase(users repository.UserRepository, passwords passwordHasher, tokens tokenIssuer) *IdentityUsecase {
	return &IdentityUsecase{
		users:     users,
		passwords: passwords,
		tokens:    tokens,
		now:       time.Now,
	}
}

type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in RegisterInput) validate() error {
	var v violations
	v.check("username", in.Username, "min=3", "must be at least 3 characters")
	v.check("email", in.Email, "required,email", msgEmail)
	v.check("password", in.Password, "min=6", "must be at least 6 characters")
	return v.err()
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token string    `json:"token"`
	User  *UserView `json:"user"`
}

// Register creates a user. The email pre-check gives a clean error for the
// common case; a concurrent insert that loses the race is rejected by the
// store's unique constraint and reported the same way.
func (u *IdentityUsecase) Register(ctx context.Context, input RegisterInput) (*UserView, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	_, err := u.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return nil, domain.ErrEmailExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("find user: %w", err)
	}

	hash, err := u.passwords.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := u.now().UTC()
	created, err := u.users.Create(ctx, &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return newUserView(created), nil
}

// Login returns domain.ErrInvalidCredentials for both an unknown email and a
// wrong password, with the same bcrypt work in either case.
func (u *IdentityUsecase) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := u.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			u.passwords.Decoy(input.Password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := u.passwords.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, User: newUserView(user)}, nil
}

// Me resolves a verified token subject to the stored user.
func (u *IdentityUsecase) Me(ctx context.Context, userID string) (*UserView, error) {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return newUserView(user), nil
}
