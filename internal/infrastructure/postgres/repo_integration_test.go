package postgres_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/infrastructure/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestPool connects to TEST_DATABASE_URL and migrates it; the test is
// skipped when the variable is unset.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, url, 4)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

func newUser(t *testing.T, users *postgres.UserRepository) *domain.User {
	t.Helper()
	now := time.Now().UTC()
	u, err := users.Create(context.Background(), &domain.User{
		ID:           uuid.NewString(),
		Username:     "integration",
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return u
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	pool := newTestPool(t)
	users := postgres.NewUserRepository(pool)
	u := newUser(t, users)

	dup := *u
	dup.ID = uuid.NewString()
	_, err := users.Create(context.Background(), &dup)
	assert.ErrorIs(t, err, domain.ErrEmailExists)

	found, err := users.FindByEmail(context.Background(), u.Email)
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = users.FindByID(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestContactRepository_LifecycleAndCascade(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	owner := newUser(t, postgres.NewUserRepository(pool))
	contacts := postgres.NewContactRepository(pool)
	addresses := postgres.NewAddressRepository(pool)

	now := time.Now().UTC()
	c, err := contacts.Create(ctx, &domain.Contact{
		ID: uuid.NewString(), UserID: owner.ID, FirstName: "Ada", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	c.FirstName = "Grace"
	c.UserID = uuid.NewString()
	updated, err := contacts.Update(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "Grace", updated.FirstName)
	assert.Equal(t, owner.ID, updated.UserID, "owner must not change")

	a, err := addresses.Create(ctx, &domain.Address{
		ID: uuid.NewString(), ContactID: c.ID, Country: "CA", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)

	list, err := contacts.FindByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, contacts.Delete(ctx, c.ID))
	_, err = addresses.FindByID(ctx, a.ID)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
	assert.ErrorIs(t, contacts.Delete(ctx, c.ID), domain.ErrContactNotFound)

	_, err = addresses.Create(ctx, &domain.Address{
		ID: uuid.NewString(), ContactID: c.ID, Country: "CA", CreatedAt: now, UpdatedAt: now,
	})
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}
