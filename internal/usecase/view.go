package usecase

import (
	"time"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
)

// UserView is a user without its password hash.
type UserView struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserView(u *domain.User) *UserView {
	return &UserView{ID: u.ID, Username: u.Username, Email: u.Email, CreatedAt: u.CreatedAt}
}

type ContactView struct {
	ID        string        `json:"id"`
	FirstName string        `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Email     *string       `json:"email"`
	Phone     *string       `json:"phone"`
	Addresses []AddressView `json:"addresses"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

type AddressView struct {
	ID         string    `json:"id"`
	Street     *string   `json:"street"`
	City       *string   `json:"city"`
	Province   *string   `json:"province"`
	Country    string    `json:"country"`
	PostalCode *string   `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newContactView(c *domain.Contact, addresses []*domain.Address) ContactView {
	v := ContactView{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Phone:     c.Phone,
		Addresses: make([]AddressView, len(addresses)),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	for i, a := range addresses {
		v.Addresses[i] = newAddressView(a)
	}
	return v
}

func newAddressView(a *domain.Address) AddressView {
	return AddressView{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		Province:   a.Province,
		Country:    a.Country,
		PostalCode: a.PostalCode,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
