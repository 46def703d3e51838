package postgres

import (
	"context"
	"database/sql"
	"errors"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
)

// CoffeePostgres is a PostgreSQL implementation of repository.CoffeeRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CoffeePostgres struct {
	db *sql.DB
}

// NewCoffeePostgres creates a new CoffeePostgres repository over a migrated database.
func NewCoffeePostgres(db *sql.DB) *CoffeePostgres {
	return &CoffeePostgres{db: db}
}

var _ repository.CoffeeRepository = (*CoffeePostgres)(nil)

// FindAll returns every coffee ordered by insertion sequence.
func (r *CoffeePostgres) FindAll(ctx context.Context) ([]model.Coffee, error) {
	const q = `SELECT id, name FROM coffees ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Coffee, 0)
	for rows.Next() {
		var c model.Coffee
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single coffee by its ID.
func (r *CoffeePostgres) FindByID(ctx context.Context, id string) (*model.Coffee, error) {
	const q = `SELECT id, name FROM coffees WHERE id = $1`
	var c model.Coffee
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ExistsByID reports whether a row with the ID exists.
func (r *CoffeePostgres) ExistsByID(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM coffees WHERE id = $1)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, q, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Save upserts the coffee. On conflict only the name changes, so seq (and list position) is kept.
func (r *CoffeePostgres) Save(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	const q = `
		INSERT INTO coffees (id, name)
		VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`
	var out model.Coffee
	if err := r.db.QueryRowContext(ctx, q, c.ID, c.Name).Scan(&out.ID, &out.Name); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteByID removes a coffee by ID. It does not return an error if the row does not exist.
func (r *CoffeePostgres) DeleteByID(ctx context.Context, id string) error {
	const q = `DELETE FROM coffees WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}

// Ping verifies database connectivity.
func (r *CoffeePostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
