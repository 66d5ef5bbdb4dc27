// seed registers a demo user and a handful of contacts in the local dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/ErlanBelekov/contact-manager/internal/auth"
	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/ErlanBelekov/contact-manager/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/contact-manager/internal/usecase"
	"golang.org/x/crypto/bcrypt"
)

const (
	seedUsername = "seed"
	seedEmail    = "seed@test.local"
	seedPassword = "seed-password"
)

type contactSpec struct {
	first   string
	last    string
	email   string
	phone   string
	country string
	city    string
}

var contacts = []contactSpec{
	{"Ada", "Lovelace", "ada@example.com", "+44 20 7946 0001", "GB", "London"},
	{"Grace", "Hopper", "grace@example.com", "+1 202 555 0101", "US", "Arlington"},
	{"Alan", "Turing", "alan@example.com", "", "GB", "Manchester"},
	{"Edsger", "Dijkstra", "", "+31 20 555 0199", "NL", "Amsterdam"},
	{"Barbara", "Liskov", "barbara@example.com", "", "", ""},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL, 4)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	hasher, err := auth.NewBcryptHasher(bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hasher: %v", err)
	}
	tokens, err := auth.NewTokenService([]byte(secret))
	if err != nil {
		log.Fatalf("token service: %v", err)
	}

	identity := usecase.NewIdentityUsecase(postgres.NewUserRepository(pool), hasher, tokens)
	ledger := usecase.NewContactUsecase(postgres.NewContactRepository(pool), postgres.NewAddressRepository(pool))

	_, err = identity.Register(ctx, usecase.RegisterInput{Username: seedUsername, Email: seedEmail, Password: seedPassword})
	if err != nil && !errors.Is(err, domain.ErrEmailExists) {
		log.Fatalf("register seed user: %v", err)
	}

	session, err := identity.Login(ctx, usecase.LoginInput{Email: seedEmail, Password: seedPassword})
	if err != nil {
		log.Fatalf("login seed user (password changed?): %v", err)
	}
	userID := session.User.ID
	fmt.Printf("seed user: %s (%s)\n", seedEmail, userID)

	inserted := 0
	for _, entry := range contacts {
		c, err := ledger.CreateContact(ctx, userID, usecase.CreateContactInput{
			FirstName: entry.first,
			LastName:  optional(entry.last),
			Email:     optional(entry.email),
			Phone:     optional(entry.phone),
		})
		if err != nil {
			log.Printf("contact %s: %v", entry.first, err)
			continue
		}
		inserted++

		if entry.country == "" {
			continue
		}
		if _, err := ledger.CreateAddress(ctx, userID, c.ID, usecase.CreateAddressInput{
			Country: entry.country,
			City:    optional(entry.city),
		}); err != nil {
			log.Printf("address for %s: %v", entry.first, err)
		}
	}

	fmt.Printf("inserted %d contacts\n", inserted)
	fmt.Printf("token: %s\n", session.Token)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
