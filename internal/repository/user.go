package repository

import (
	"context"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
)

// UserRepository is the user directory. Email uniqueness is a hard constraint
// of the store: Create returns domain.ErrEmailExists when it is violated.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByEmail and FindByID return domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
