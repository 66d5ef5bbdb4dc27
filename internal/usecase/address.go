package usecase

import (
	"context"
	"fmt"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/google/uuid"
)

type CreateAddressInput struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    string  `json:"country"`
	PostalCode *string `json:"postal_code"`
}

func (in CreateAddressInput) validate() error {
	var v violations
	v.check("country", in.Country, "min=1", msgRequired)
	return v.err()
}

// UpdateAddressInput is a partial update; nil keeps the current value.
type UpdateAddressInput struct {
	Street     *string `json:"street"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postal_code"`
}

func (in UpdateAddressInput) validate() error {
	var v violations
	v.checkPresent("country", in.Country, "min=1", msgRequired)
	return v.err()
}

// CreateAddress attaches a new address to contactID. Access is decided by the
// parent contact's owner; the contact id comes from the caller, never the body.
func (u *ContactUsecase) CreateAddress(ctx context.Context, userID, contactID string, input CreateAddressInput) (AddressView, error) {
	if err := input.validate(); err != nil {
		return AddressView{}, err
	}

	c, err := u.ownedContact(ctx, userID, contactID)
	if err != nil {
		return AddressView{}, err
	}

	now := u.now().UTC()
	created, err := u.addresses.Create(ctx, &domain.Address{
		ID:         uuid.NewString(),
		ContactID:  c.ID,
		Street:     input.Street,
		City:       input.City,
		Province:   input.Province,
		Country:    input.Country,
		PostalCode: input.PostalCode,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return AddressView{}, fmt.Errorf("create address: %w", err)
	}

	return newAddressView(created), nil
}

func (u *ContactUsecase) UpdateAddress(ctx context.Context, userID, contactID, addressID string, input UpdateAddressInput) (AddressView, error) {
	if err := input.validate(); err != nil {
		return AddressView{}, err
	}

	a, err := u.ownedAddress(ctx, userID, contactID, addressID)
	if err != nil {
		return AddressView{}, err
	}

	if input.Street != nil {
		a.Street = input.Street
	}
	if input.City != nil {
		a.City = input.City
	}
	if input.Province != nil {
		a.Province = input.Province
	}
	if input.Country != nil {
		a.Country = *input.Country
	}
	if input.PostalCode != nil {
		a.PostalCode = input.PostalCode
	}
	a.UpdatedAt = u.now().UTC()

	updated, err := u.addresses.Update(ctx, a)
	if err != nil {
		return AddressView{}, fmt.Errorf("update address: %w", err)
	}
	return newAddressView(updated), nil
}

func (u *ContactUsecase) DeleteAddress(ctx context.Context, userID, contactID, addressID string) error {
	if _, err := u.ownedAddress(ctx, userID, contactID, addressID); err != nil {
		return err
	}
	if err := u.addresses.Delete(ctx, addressID); err != nil {
		return fmt.Errorf("delete address: %w", err)
	}
	return nil
}

// ownedAddress gates through the contact first, then requires the address to
// belong to that contact.
func (u *ContactUsecase) ownedAddress(ctx context.Context, userID, contactID, addressID string) (*domain.Address, error) {
	c, err := u.ownedContact(ctx, userID, contactID)
	if err != nil {
		return nil, err
	}

	a, err := u.addresses.FindByID(ctx, addressID)
	if err != nil {
		return nil, fmt.Errorf("find address: %w", err)
	}
	if a.ContactID != c.ID {
		return nil, domain.ErrAddressNotFound
	}
	return a, nil
}
