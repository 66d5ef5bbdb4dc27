package repository

import (
	"context"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
)

// ContactRepository stores contacts. Lookups do not filter by owner; the
// ownership gate lives in the use-case so that NotFound and Unauthorized stay
// distinguishable.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	// Delete removes the contact together with its addresses.
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Contact, error)
	// FindByOwner returns the user's contacts in creation order.
	FindByOwner(ctx context.Context, userID string) ([]*domain.Contact, error)
}

type AddressRepository interface {
	Create(ctx context.Context, address *domain.Address) (*domain.Address, error)
	Update(ctx context.Context, address *domain.Address) (*domain.Address, error)
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*domain.Address, error)
	// FindByContact returns the contact's addresses in creation order.
	FindByContact(ctx context.Context, contactID string) ([]*domain.Address, error)
}
