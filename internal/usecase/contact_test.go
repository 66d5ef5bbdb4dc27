package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/infrastructure/memory"
	"github.com/ErlanBelekov/contact-manager/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fakes ----

// failingContactRepo fails the test on any call; used to prove validation
// happens before storage is touched.
type failingContactRepo struct{ t *testing.T }

func (r failingContactRepo) Create(context.Context, *domain.Contact) (*domain.Contact, error) {
	r.t.Fatal("unexpected Create")
	return nil, nil
}

func (r failingContactRepo) Update(context.Context, *domain.Contact) (*domain.Contact, error) {
	r.t.Fatal("unexpected Update")
	return nil, nil
}

func (r failingContactRepo) Delete(context.Context, string) error {
	r.t.Fatal("unexpected Delete")
	return nil
}

func (r failingContactRepo) FindByID(context.Context, string) (*domain.Contact, error) {
	r.t.Fatal("unexpected FindByID")
	return nil, nil
}

func (r failingContactRepo) FindByOwner(context.Context, string) ([]*domain.Contact, error) {
	r.t.Fatal("unexpected FindByOwner")
	return nil, nil
}

type brokenAddressRepo struct {
	err error
}

func (r brokenAddressRepo) Create(context.Context, *domain.Address) (*domain.Address, error) {
	return nil, r.err
}
func (r brokenAddressRepo) Update(context.Context, *domain.Address) (*domain.Address, error) {
	return nil, r.err
}
func (r brokenAddressRepo) Delete(context.Context, string) error { return r.err }
func (r brokenAddressRepo) FindByID(context.Context, string) (*domain.Address, error) {
	return nil, r.err
}
func (r brokenAddressRepo) FindByContact(context.Context, string) ([]*domain.Address, error) {
	return nil, r.err
}

// ---- helpers ----

const (
	alice = "user-alice"
	bob   = "user-bob"
)

func ptr(s string) *string { return &s }

func newContacts() *usecase.ContactUsecase {
	store := memory.NewStore()
	return usecase.NewContactUsecase(store.Contacts(), store.Addresses())
}

func mustCreateContact(t *testing.T, uc *usecase.ContactUsecase, userID, firstName string) usecase.ContactView {
	t.Helper()
	c, err := uc.CreateContact(context.Background(), userID, usecase.CreateContactInput{FirstName: firstName})
	require.NoError(t, err)
	return c
}

// ---- CreateContact / GetContact ----

func TestCreateThenGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	uc := newContacts()

	created, err := uc.CreateContact(ctx, alice, usecase.CreateContactInput{
		FirstName: "John",
		LastName:  ptr("Doe"),
		Email:     ptr("john@example.com"),
		Phone:     ptr("123456789"),
	})
	require.NoError(t, err)
	assert.NotNil(t, created.Addresses)
	assert.Empty(t, created.Addresses)

	got, err := uc.GetContact(ctx, alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "John", got.FirstName)
	assert.Equal(t, ptr("Doe"), got.LastName)
	assert.Equal(t, ptr("john@example.com"), got.Email)
	assert.Equal(t, ptr("123456789"), got.Phone)
	assert.Empty(t, got.Addresses)

	addr, err := uc.CreateAddress(ctx, alice, created.ID, usecase.CreateAddressInput{
		Street:     ptr("1 Main St"),
		City:       ptr("Toronto"),
		Province:   ptr("ON"),
		Country:    "Canada",
		PostalCode: ptr("M5V 2T6"),
	})
	require.NoError(t, err)

	got, err = uc.GetContact(ctx, alice, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, addr, got.Addresses[0])
	assert.Equal(t, "Canada", got.Addresses[0].Country)
	assert.Equal(t, ptr("Toronto"), got.Addresses[0].City)
}

func TestCreateContact_ReportsAllViolations(t *testing.T) {
	uc := usecase.NewContactUsecase(failingContactRepo{t}, brokenAddressRepo{})

	_, err := uc.CreateContact(context.Background(), alice, usecase.CreateContactInput{
		FirstName: "",
		Email:     ptr("nope"),
		Phone:     ptr("12"),
	})

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.Violations, 3)
}

func TestCreateContact_OptionalFieldsMayBeAbsent(t *testing.T) {
	c := mustCreateContact(t, newContacts(), alice, "Solo")
	assert.Nil(t, c.LastName)
	assert.Nil(t, c.Email)
	assert.Nil(t, c.Phone)
}

func TestGetContact_NotFound(t *testing.T) {
	_, err := newContacts().GetContact(context.Background(), alice, "missing")
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}

// ---- ownership gate ----

func TestCrossOwner_EveryOperationDenied(t *testing.T) {
	ctx := context.Background()
	uc := newContacts()
	bobs := mustCreateContact(t, uc, bob, "Bob's friend")
	bobsAddr, err := uc.CreateAddress(ctx, bob, bobs.ID, usecase.CreateAddressInput{Country: "NZ"})
	require.NoError(t, err)

	_, err = uc.GetContact(ctx, alice, bobs.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "get")

	_, err = uc.UpdateContact(ctx, alice, bobs.ID, usecase.UpdateContactInput{FirstName: ptr("hijacked")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "update")

	err = uc.DeleteContact(ctx, alice, bobs.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "delete")

	_, err = uc.CreateAddress(ctx, alice, bobs.ID, usecase.CreateAddressInput{Country: "CA"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "create address")

	_, err = uc.UpdateAddress(ctx, alice, bobs.ID, bobsAddr.ID, usecase.UpdateAddressInput{Country: ptr("CA")})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "update address")

	err = uc.DeleteAddress(ctx, alice, bobs.ID, bobsAddr.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "delete address")

	// Nothing changed for the owner.
	got, err := uc.GetContact(ctx, bob, bobs.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob's friend", got.FirstName)
	require.Len(t, got.Addresses, 1)
	assert.Equal(t, "NZ", got.Addresses[0].Country)

	list, err := uc.SearchContacts(ctx, alice)
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ---- UpdateContact ----

func TestUpdateContact_AppliesOnlyPresentFields(t *testing.T) {
	ctx := context.Background()
	uc := newContacts()
	created, err := uc.CreateContact(ctx, alice, usecase.CreateContactInput{
		FirstName: "John",
		LastName:  ptr("Doe"),
		Email:     ptr("john@example.com"),
	})
	require.NoError(t, err)

	updated, err := uc.UpdateContact(ctx, alice, created.ID, usecase.UpdateContactInput{
		Phone: ptr("555-0100"),
	})
	require.NoError(t, err)
	assert.Equal(t, "John", updated.FirstName)
	assert.Equal(t, ptr("Doe"), updated.LastName)
	assert.Equal(t, ptr("john@example.com"), updated.Email)
	assert.Equal(t, ptr("555-0100"), updated.Phone)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateContact_EmptyFirstNameRejected(t *testing.T) {
	uc := usecase.NewContactUsecase(failingContactRepo{t}, brokenAddressRepo{})

	_, err := uc.UpdateContact(context.Background(), alice, "c-1", usecase.UpdateContactInput{FirstName: ptr("")})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "first_name", vErr.Violations[0].Field)
}

func TestUpdateContact_NotFound(t *testing.T) {
	_, err := newContacts().UpdateContact(context.Background(), alice, "missing", usecase.UpdateContactInput{})
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}

// ---- DeleteContact ----

func TestDeleteContact_RemovesContactAndAddresses(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := usecase.NewContactUsecase(store.Contacts(), store.Addresses())

	c := mustCreateContact(t, uc, alice, "Temp")
	addr, err := uc.CreateAddress(ctx, alice, c.ID, usecase.CreateAddressInput{Country: "CA"})
	require.NoError(t, err)

	require.NoError(t, uc.DeleteContact(ctx, alice, c.ID))

	_, err = uc.GetContact(ctx, alice, c.ID)
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
	_, err = store.Addresses().FindByID(ctx, addr.ID)
	assert.ErrorIs(t, err, domain.ErrAddressNotFound)
}

func TestDeleteContact_NotFound(t *testing.T) {
	err := newContacts().DeleteContact(context.Background(), alice, "missing")
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
}

// ---- SearchContacts ----

func TestSearchContacts_OnlyOwnInCreationOrderWithAddresses(t *testing.T) {
	ctx := context.Background()
	uc := newContacts()

	first := mustCreateContact(t, uc, alice, "First")
	mustCreateContact(t, uc, bob, "Not mine")
	second := mustCreateContact(t, uc, alice, "Second")
	_, err := uc.CreateAddress(ctx, alice, second.ID, usecase.CreateAddressInput{Country: "CA"})
	require.NoError(t, err)
	_, err = uc.CreateAddress(ctx, alice, second.ID, usecase.CreateAddressInput{Country: "US"})
	require.NoError(t, err)

	got, err := uc.SearchContacts(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, first.ID, got[0].ID)
	assert.Empty(t, got[0].Addresses)
	assert.Equal(t, second.ID, got[1].ID)
	require.Len(t, got[1].Addresses, 2)
	assert.Equal(t, "CA", got[1].Addresses[0].Country)
	assert.Equal(t, "US", got[1].Addresses[1].Country)
}

func TestSearchContacts_NoContacts_EmptyNotNil(t *testing.T) {
	got, err := newContacts().SearchContacts(context.Background(), alice)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSearchContacts_AddressError_Propagates(t *testing.T) {
	store := memory.NewStore()
	repoErr := errors.New("db down")
	uc := usecase.NewContactUsecase(store.Contacts(), brokenAddressRepo{err: repoErr})
	mustCreateContact(t, uc, alice, "Someone")

	_, err := uc.SearchContacts(context.Background(), alice)
	assert.ErrorIs(t, err, repoErr)
}
