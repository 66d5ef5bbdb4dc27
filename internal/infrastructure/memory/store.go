// Package memory is an in-process implementation of the repository ports.
// It enforces the same constraints as the Postgres schema: unique user email
// and cascading address deletion.
package memory

import (
	"context"
	"sync"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
)

// Store holds all three aggregates behind one lock so that cross-aggregate
// rules (email uniqueness, cascade) are atomic.
type Store struct {
	mu sync.RWMutex

	users        map[string]*domain.User
	userByEmail  map[string]string
	contacts     map[string]*domain.Contact
	contactOrder []string
	addresses    map[string]*domain.Address
	addressOrder []string
}

func NewStore() *Store {
	return &Store{
		users:       make(map[string]*domain.User),
		userByEmail: make(map[string]string),
		contacts:    make(map[string]*domain.Contact),
		addresses:   make(map[string]*domain.Address),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Contacts() *ContactRepository { return &ContactRepository{s: s} }
func (s *Store) Addresses() *AddressRepository {
	return &AddressRepository{s: s}
}

// Ping satisfies health.Pinger; memory is always reachable.
func (s *Store) Ping(_ context.Context) error { return nil }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.userByEmail[user.Email]; taken {
		return nil, domain.ErrEmailExists
	}
	u := *user
	r.s.users[u.ID] = &u
	r.s.userByEmail[u.Email] = u.ID

	out := u
	return &out, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.userByEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *r.s.users[id]
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}
