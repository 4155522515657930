package db

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

func ConnectPostgres() *pgxpool.Pool {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Fatal(err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		log.Fatal(err)
	}

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Postgres connection failed:", err)
	}

	if err := initSchema(pool); err != nil {
		log.Fatal("Failed to initialize schema:", err)
	}

	return pool
}

// initSchema creates or updates the database schema. Cascade deletes
// (restaurant -> categories -> subcategories/items, group -> items) live
// here as foreign keys so the import and CRUD layers never delete dependents
// themselves.
func initSchema(pool *pgxpool.Pool) error {
	ctx := context.Background()

	schemaSQL := `
		CREATE TABLE IF NOT EXISTS staff_users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'STAFF',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS properties (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			address VARCHAR(500) NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS restaurants (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			property_id UUID REFERENCES properties(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			sort_order INT NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS subcategories (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS modifier_groups (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			min_selections INT NOT NULL DEFAULT 0,
			max_selections INT NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS modifier_items (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			modifier_group_id UUID NOT NULL REFERENCES modifier_groups(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS allergens (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS attributes (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			restaurant_id UUID NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS menu_items (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			item_code VARCHAR(100) NOT NULL,
			category_id UUID NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
			subcategory_id UUID REFERENCES subcategories(id) ON DELETE CASCADE,
			price NUMERIC(10,2) NOT NULL DEFAULT 0,
			currency VARCHAR(10) NOT NULL DEFAULT 'USD',
			description TEXT NOT NULL DEFAULT '',
			image_url VARCHAR(500) NOT NULL DEFAULT '',
			allergen_ids TEXT[] NOT NULL DEFAULT '{}',
			attribute_ids TEXT[] NOT NULL DEFAULT '{}',
			modifier_group_ids TEXT[] NOT NULL DEFAULT '{}',
			available BOOLEAN NOT NULL DEFAULT TRUE,
			sold_out BOOLEAN NOT NULL DEFAULT FALSE,
			bogo BOOLEAN NOT NULL DEFAULT FALSE,
			sort_order INT NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_menu_items_code
			ON menu_items (category_id, LOWER(TRIM(item_code)));

		CREATE TABLE IF NOT EXISTS audit_log (
			id UUID PRIMARY KEY,
			actor VARCHAR(255) NOT NULL DEFAULT '',
			action VARCHAR(50) NOT NULL,
			entity_kind VARCHAR(100) NOT NULL,
			entity_name VARCHAR(255) NOT NULL,
			detail TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		);
	`
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return err
	}

	log.Println("Schema initialized")
	return nil
}
