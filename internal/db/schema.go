package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OrdersChannel is the LISTEN/NOTIFY channel fed by the orders trigger.
const OrdersChannel = "orders_changes"

type migration struct {
	name string
	sql  string
}

var migrations = []migration{
	// -------------------------------
	// USERS + PROFILES
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"profiles", `
		CREATE TABLE IF NOT EXISTS profiles (
			id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50) NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"user_roles", `
		CREATE TABLE IF NOT EXISTS user_roles (
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			role VARCHAR(50) NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (user_id, role)
		)
	`},

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	{"restaurants", `
		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			owner_id UUID UNIQUE NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			name VARCHAR(255) NOT NULL,
			description TEXT NULL,
			address TEXT NULL,
			phone VARCHAR(50) NULL,
			email VARCHAR(255) NULL,
			logo_url VARCHAR(500) NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},

	// -------------------------------
	// ORDERS
	// -------------------------------
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			customer_name VARCHAR(255) NULL,
			table_number INTEGER NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending'
				CHECK (status IN ('pending', 'preparing', 'ready', 'delivered', 'cancelled')),
			total_amount NUMERIC(10,2) NOT NULL DEFAULT 0,
			notes TEXT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"orders_restaurant_index", `
		CREATE INDEX IF NOT EXISTS orders_restaurant_created_idx
		ON orders (restaurant_id, created_at DESC)
	`},

	// -------------------------------
	// REALTIME: order change notifications
	// -------------------------------
	{"orders_notify_function", `
		CREATE OR REPLACE FUNCTION notify_orders_change() RETURNS trigger AS $$
		DECLARE
			rec RECORD;
		BEGIN
			IF TG_OP = 'DELETE' THEN
				rec := OLD;
			ELSE
				rec := NEW;
			END IF;
			PERFORM pg_notify('` + OrdersChannel + `', json_build_object(
				'op', TG_OP,
				'restaurant_id', rec.restaurant_id,
				'id', rec.id
			)::text);
			RETURN rec;
		END;
		$$ LANGUAGE plpgsql
	`},
	{"orders_notify_trigger_drop", `DROP TRIGGER IF EXISTS orders_notify ON orders`},
	{"orders_notify_trigger", `
		CREATE TRIGGER orders_notify
		AFTER INSERT OR UPDATE OR DELETE ON orders
		FOR EACH ROW EXECUTE FUNCTION notify_orders_change()
	`},
}

// InitSchema applies the idempotent schema. It is safe to run on every start.
func InitSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, m := range migrations {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("schema step %s: %w", m.name, err)
		}
		logger.Debug("schema step applied", zap.String("step", m.name))
	}

	logger.Info("schema initialized", zap.Int("steps", len(migrations)))
	return nil
}
