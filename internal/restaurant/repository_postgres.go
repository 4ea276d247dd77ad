package restaurant

import (
	"context"
	"errors"
	"fmt"

	"cardapio/internal/auth"
	"cardapio/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Restaurant owned by a user
// --------------------------------------------------
func (r *PostgresRepository) GetByOwner(ctx context.Context, ownerID string) (*Restaurant, error) {
	query := `
		SELECT
			id,
			owner_id,
			name,
			description,
			address,
			phone,
			email,
			logo_url,
			created_at,
			updated_at
		FROM restaurants
		WHERE owner_id = $1
	`

	var res Restaurant
	err := r.db.QueryRow(ctx, query, ownerID).Scan(
		&res.ID,
		&res.OwnerID,
		&res.Name,
		&res.Description,
		&res.Address,
		&res.Phone,
		&res.Email,
		&res.LogoURL,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// --------------------------------------------------
// Create restaurant + owner role (one transaction)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, res *Restaurant) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if res.ID == "" {
		res.ID = uuid.New().String()
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO restaurants (
			id,
			owner_id,
			name,
			description,
			address,
			phone,
			email
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		res.ID,
		res.OwnerID,
		res.Name,
		res.Description,
		res.Address,
		res.Phone,
		res.Email,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if db.IsUniqueViolation(err, "restaurants_owner_id_key") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("insert restaurant: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role)
		VALUES ($1, $2)
		ON CONFLICT (user_id, role) DO NOTHING
	`, res.OwnerID, auth.RoleRestaurantOwner)
	if err != nil {
		return fmt.Errorf("grant owner role: %w", err)
	}

	return tx.Commit(ctx)
}

// --------------------------------------------------
// Update restaurant details
// --------------------------------------------------
func (r *PostgresRepository) Update(ctx context.Context, res *Restaurant) error {
	err := r.db.QueryRow(ctx, `
		UPDATE restaurants
		SET name = $1,
		    description = $2,
		    address = $3,
		    phone = $4,
		    email = $5,
		    updated_at = now()
		WHERE id = $6
		RETURNING updated_at
	`,
		res.Name,
		res.Description,
		res.Address,
		res.Phone,
		res.Email,
		res.ID,
	).Scan(&res.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// --------------------------------------------------
// Logo
// --------------------------------------------------
func (r *PostgresRepository) SetLogo(ctx context.Context, restaurantID, logoURL string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET logo_url = $1,
		    updated_at = now()
		WHERE id = $2
	`, logoURL, restaurantID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
