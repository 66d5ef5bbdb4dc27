package memory

import (
	"context"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
)

type AddressRepository struct{ s *Store }

// Create fails with domain.ErrContactNotFound when the parent is gone, as the
// foreign key does in Postgres.
func (r *AddressRepository) Create(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contacts[address.ContactID]; !ok {
		return nil, domain.ErrContactNotFound
	}
	a := *address
	r.s.addresses[a.ID] = &a
	r.s.addressOrder = append(r.s.addressOrder, a.ID)

	out := a
	return &out, nil
}

func (r *AddressRepository) Update(ctx context.Context, address *domain.Address) (*domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.addresses[address.ID]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	stored.Street = address.Street
	stored.City = address.City
	stored.Province = address.Province
	stored.Country = address.Country
	stored.PostalCode = address.PostalCode
	stored.UpdatedAt = address.UpdatedAt

	out := *stored
	return &out, nil
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.addresses[id]; !ok {
		return domain.ErrAddressNotFound
	}
	delete(r.s.addresses, id)
	for i, aid := range r.s.addressOrder {
		if aid == id {
			r.s.addressOrder = append(r.s.addressOrder[:i], r.s.addressOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.addresses[id]
	if !ok {
		return nil, domain.ErrAddressNotFound
	}
	out := *a
	return &out, nil
}

func (r *AddressRepository) FindByContact(ctx context.Context, contactID string) ([]*domain.Address, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Address{}
	for _, id := range r.s.addressOrder {
		if a := r.s.addresses[id]; a.ContactID == contactID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}
