package domain

import (
	"errors"
	"time"
)

var (
	ErrContactNotFound = errors.New("contact not found")
	ErrAddressNotFound = errors.New("address not found")
	// ErrUnauthorized means the caller is authenticated but does not own the resource.
	ErrUnauthorized = errors.New("unauthorized")
)

type Contact struct {
	ID        string
	UserID    string // owner, never changes after creation
	FirstName string
	LastName  *string
	Email     *string
	Phone     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether userID owns the contact and, through it, its addresses.
func (c *Contact) OwnedBy(userID string) bool {
	return c.UserID == userID
}

type Address struct {
	ID         string
	ContactID  string
	Street     *string
	City       *string
	Province   *string
	Country    string
	PostalCode *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
