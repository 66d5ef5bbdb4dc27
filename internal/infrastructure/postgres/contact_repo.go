package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ErlanBelekov/contact-manager/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const contactColumns = `id, user_id, first_name, last_name, email, phone, created_at, updated_at`

type ContactRepository struct {
	pool *pgxpool.Pool
}

func NewContactRepository(pool *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{pool: pool}
}

func (r *ContactRepository) Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query := `
		INSERT INTO contacts (id, user_id, first_name, last_name, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query,
		c.ID, c.UserID, c.FirstName, c.LastName, c.Email, c.Phone, c.CreatedAt, c.UpdatedAt,
	)
	return scanContact(row)
}

// Update never touches user_id: the owner is fixed at creation.
func (r *ContactRepository) Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error) {
	query := `
		UPDATE contacts
		SET    first_name = $2,
		       last_name  = $3,
		       email      = $4,
		       phone      = $5,
		       updated_at = $6
		WHERE  id = $1
		RETURNING ` + contactColumns

	row := r.pool.QueryRow(ctx, query, c.ID, c.FirstName, c.LastName, c.Email, c.Phone, c.UpdatedAt)
	return scanContact(row)
}

// Delete cascades to addresses through the foreign key.
func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		if hasCode(err, codeInvalidText) {
			return domain.ErrContactNotFound
		}
		return fmt.Errorf("delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContactNotFound
	}
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*domain.Contact, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+contactColumns+` FROM contacts WHERE id = $1`, id)
	return scanContact(row)
}

func (r *ContactRepository) FindByOwner(ctx context.Context, userID string) ([]*domain.Contact, error) {
	query := `
		SELECT ` + contactColumns + `
		FROM   contacts
		WHERE  user_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []*domain.Contact{}
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contacts: %w", err)
	}
	return contacts, nil
}

func scanContact(row pgx.Row) (*domain.Contact, error) {
	var c domain.Contact
	err := row.Scan(&c.ID, &c.UserID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || hasCode(err, codeInvalidText) {
			return nil, domain.ErrContactNotFound
		}
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	return &c, nil
}
