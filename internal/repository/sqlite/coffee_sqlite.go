// Package sqlite implements repository.CoffeeRepository on an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
)

// CoffeeSQLite stores coffees in the coffees table created by the sqlite migration steps.
type CoffeeSQLite struct {
	db *sql.DB
}

// NewCoffeeSQLite wraps an open, migrated SQLite handle.
func NewCoffeeSQLite(db *sql.DB) *CoffeeSQLite {
	return &CoffeeSQLite{db: db}
}

var _ repository.CoffeeRepository = (*CoffeeSQLite)(nil)

func (r *CoffeeSQLite) FindAll(ctx context.Context) ([]model.Coffee, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM coffees ORDER BY seq`)
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
	return items, rows.Err()
}

func (r *CoffeeSQLite) FindByID(ctx context.Context, id string) (*model.Coffee, error) {
	var c model.Coffee
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM coffees WHERE id = ?`, id).Scan(&c.ID, &c.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CoffeeSQLite) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM coffees WHERE id = ?)`, id).Scan(&exists)
	return exists, err
}

// Save upserts on the unique id column; the row keeps its seq on update.
func (r *CoffeeSQLite) Save(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO coffees (id, name) VALUES (?, ?)
		 ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		c.ID, c.Name,
	)
	if err != nil {
		return nil, err
	}
	out := *c
	return &out, nil
}

func (r *CoffeeSQLite) DeleteByID(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM coffees WHERE id = ?`, id)
	return err
}

func (r *CoffeeSQLite) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
