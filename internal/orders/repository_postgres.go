package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `
	id,
	restaurant_id,
	customer_name,
	table_number,
	status,
	total_amount::text,
	notes,
	created_at,
	updated_at
`

func scanOrder(row pgx.Row) (Order, error) {
	var (
		o     Order
		total string
	)
	err := row.Scan(
		&o.ID,
		&o.RestaurantID,
		&o.CustomerName,
		&o.TableNumber,
		&o.Status,
		&total,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return Order{}, err
	}

	o.TotalAmount, err = decimal.NewFromString(total)
	if err != nil {
		return Order{}, fmt.Errorf("order %s total: %w", o.ID, err)
	}
	return o, nil
}

// --------------------------------------------------
// Orders of a restaurant
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY created_at DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// --------------------------------------------------
// Status transition
// --------------------------------------------------
func (r *PostgresRepository) UpdateStatus(ctx context.Context, restaurantID, orderID string, status Status) (*Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $1,
		    updated_at = now()
		WHERE id = $2 AND restaurant_id = $3
		RETURNING `+orderColumns,
		string(status), orderID, restaurantID,
	)

	o, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
