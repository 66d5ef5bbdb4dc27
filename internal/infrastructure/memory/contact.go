package memory

import (
	"context"
	"slices"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
)

type ContactRepository struct{ s *Store }

func (r *ContactRepository) Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	c := *contact
	r.s.contacts[c.ID] = &c
	r.s.contactOrder = append(r.s.contactOrder, c.ID)

	out := c
	return &out, nil
}

// Update rewrites the mutable fields; UserID and CreatedAt are kept as stored.
func (r *ContactRepository) Update(ctx context.Context, contact *domain.Contact) (*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.contacts[contact.ID]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	stored.FirstName = contact.FirstName
	stored.LastName = contact.LastName
	stored.Email = contact.Email
	stored.Phone = contact.Phone
	stored.UpdatedAt = contact.UpdatedAt

	out := *stored
	return &out, nil
}

// Delete removes the contact and cascades to its addresses.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.contacts[id]; !ok {
		return domain.ErrContactNotFound
	}
	delete(r.s.contacts, id)
	r.s.contactOrder = slices.DeleteFunc(r.s.contactOrder, func(cid string) bool { return cid == id })

	r.s.addressOrder = slices.DeleteFunc(r.s.addressOrder, func(aid string) bool {
		if r.s.addresses[aid].ContactID == id {
			delete(r.s.addresses, aid)
			return true
		}
		return false
	})
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.contacts[id]
	if !ok {
		return nil, domain.ErrContactNotFound
	}
	out := *c
	return &out, nil
}

func (r *ContactRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Contact{}
	for _, id := range r.s.contactOrder {
		if c := r.s.contacts[id]; c.UserID == userID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}
