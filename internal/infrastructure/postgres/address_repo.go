package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const addressColumns = `id, contact_id, street, city, province, country, postal_code, created_at, updated_at`

type AddressRepository struct {
	pool *pgxpool.Pool
}

func NewAddressRepository(pool *pgxpool.Pool) *AddressRepository {
	return &AddressRepository{pool: pool}
}

func (r *AddressRepository) Create(ctx context.Context, a *domain.Address) (*domain.Address, error) {
	query := `
		INSERT INTO addresses (id, contact_id, street, city, province, country, postal_code, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + addressColumns

	row := r.pool.QueryRow(ctx, query,
		a.ID, a.ContactID, a.Street, a.City, a.Province, a.Country, a.PostalCode, a.CreatedAt, a.UpdatedAt,
	)
	created, err := scanAddress(row)
	if err != nil {
		// The parent contact was deleted between the ownership check and the insert.
		if hasCode(err, codeForeignKeyViolation) {
			return nil, domain.ErrContactNotFound
		}
		return nil, err
	}
	return created, nil
}

func (r *AddressRepository) Update(ctx context.Context, a *domain.Address) (*domain.Address, error) {
	query := `
		UPDATE addresses
		SET    street      = $2,
		       city        = $3,
		       province    = $4,
		       country     = $5,
		       postal_code = $6,
		       updated_at  = $7
		WHERE  id = $1
		RETURNING ` + addressColumns

	row := r.pool.QueryRow(ctx, query, a.ID, a.Street, a.City, a.Province, a.Country, a.PostalCode, a.UpdatedAt)
	return scanAddress(row)
}

func (r *AddressRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM addresses WHERE id = $1`, id)
	if err != nil {
		if hasCode(err, codeInvalidText) {
			return domain.ErrAddressNotFound
		}
		return fmt.Errorf("delete address: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAddressNotFound
	}
	return nil
}

func (r *AddressRepository) FindByID(ctx context.Context, id string) (*domain.Address, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+addressColumns+` FROM addresses WHERE id = $1`, id)
	return scanAddress(row)
}

func (r *AddressRepository) FindByContact(ctx context.Context, contactID string) ([]*domain.Address, error) {
	query := `
		SELECT ` + addressColumns + `
		FROM   addresses
		WHERE  contact_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, contactID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	addresses := []*domain.Address{}
	for rows.Next() {
		a, err := scanAddress(rows)
		if err != nil {
			return nil, err
		}
		addresses = append(addresses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate addresses: %w", err)
	}
	return addresses, nil
}

func scanAddress(row pgx.Row) (*domain.Address, error) {
	var a domain.Address
	err := row.Scan(&a.ID, &a.ContactID, &a.Street, &a.City, &a.Province, &a.Country, &a.PostalCode, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidText) {
			return nil, domain.ErrAddressNotFound
		}
		return nil, fmt.Errorf("scan address: %w", err)
	}
	return &a, nil
}
