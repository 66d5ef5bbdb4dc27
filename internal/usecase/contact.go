package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// addressFetchConcurrency bounds parallel address lookups in SearchContacts.
const addressFetchConcurrency = 8

type ContactUsecase struct {
	contacts  repository.ContactRepository
	addresses repository.AddressRepository
	now       func() time.Time
}

func NewContactUsecase(contacts repository.ContactRepository, addresses repository.AddressRepository) *ContactUsecase {
	return &ContactUsecase{contacts: contacts, addresses: addresses, now: time.Now}
}

type CreateContactInput struct {
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (in CreateContactInput) validate() error {
	var v violations
	v.check("first_name", in.FirstName, "min=1", msgRequired)
	v.checkPresent("email", in.Email, "email", msgEmail)
	v.checkPresent("phone", in.Phone, "min=3", "must be at least 3 characters")
	return v.err()
}

// UpdateContactInput is a partial update: a nil field keeps its current value.
// There is no way to clear an optional field back to null.
type UpdateContactInput struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
}

func (in UpdateContactInput) validate() error {
	var v violations
	v.checkPresent("first_name", in.FirstName, "min=1", msgRequired)
	v.checkPresent("email", in.Email, "email", msgEmail)
	v.checkPresent("phone", in.Phone, "min=3", "must be at least 3 characters")
	return v.err()
}

// ownedContact is the ownership gate. Every operation on a contact or one of
// its addresses goes through it before touching anything else.
func (u *ContactUsecase) ownedContact(ctx context.Context, userID, contactID string) (*domain.Contact, error) {
	c, err := u.contacts.FindByID(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("find contact: %w", err)
	}
	if !c.OwnedBy(userID) {
		return nil, domain.ErrUnauthorized
	}
	return c, nil
}

func (u *ContactUsecase) CreateContact(ctx context.Context, userID string, input CreateContactInput) (ContactView, error) {
	if err := input.validate(); err != nil {
		return ContactView{}, err
	}

	now := u.now().UTC()
	created, err := u.contacts.Create(ctx, &domain.Contact{
		ID:        uuid.NewString(),
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return ContactView{}, fmt.Errorf("create contact: %w", err)
	}

	return newContactView(created, nil), nil
}

func (u *ContactUsecase) UpdateContact(ctx context.Context, userID, contactID string, input UpdateContactInput) (ContactView, error) {
	if err := input.validate(); err != nil {
		return ContactView{}, err
	}

	c, err := u.ownedContact(ctx, userID, contactID)
	if err != nil {
		return ContactView{}, err
	}

	if input.FirstName != nil {
		c.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		c.LastName = input.LastName
	}
	if input.Email != nil {
		c.Email = input.Email
	}
	if input.Phone != nil {
		c.Phone = input.Phone
	}
	c.UpdatedAt = u.now().UTC()

	updated, err := u.contacts.Update(ctx, c)
	if err != nil {
		return ContactView{}, fmt.Errorf("update contact: %w", err)
	}

	addresses, err := u.addresses.FindByContact(ctx, updated.ID)
	if err != nil {
		return ContactView{}, fmt.Errorf("find addresses: %w", err)
	}
	return newContactView(updated, addresses), nil
}

// DeleteContact removes the contact; its addresses go with it in storage.
func (u *ContactUsecase) DeleteContact(ctx context.Context, userID, contactID string) error {
	if _, err := u.ownedContact(ctx, userID, contactID); err != nil {
		return err
	}
	if err := u.contacts.Delete(ctx, contactID); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	return nil
}

func (u *ContactUsecase) GetContact(ctx context.Context, userID, contactID string) (ContactView, error) {
	c, err := u.ownedContact(ctx, userID, contactID)
	if err != nil {
		return ContactView{}, err
	}

	addresses, err := u.addresses.FindByContact(ctx, c.ID)
	if err != nil {
		return ContactView{}, fmt.Errorf("find addresses: %w", err)
	}
	return newContactView(c, addresses), nil
}

// SearchContacts returns every contact the user owns, in creation order, each
// with its addresses. Ownership is the query itself.
func (u *ContactUsecase) SearchContacts(ctx context.Context, userID string) ([]ContactView, error) {
	contacts, err := u.contacts.FindByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}

	views := make([]ContactView, len(contacts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(addressFetchConcurrency)
	for i, c := range contacts {
		g.Go(func() error {
			addresses, err := u.addresses.FindByContact(gctx, c.ID)
			if err != nil {
				return fmt.Errorf("find addresses for contact %s: %w", c.ID, err)
			}
			views[i] = newContactView(c, addresses)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return views, nil
}
