package repository

import (
	"context"
	"errors"

	"coffeeapi/internal/model"
)

// ErrNotFound is returned by FindByID when no record carries the requested ID.
// Backends translate their driver-specific "no rows" signal into this value.
var ErrNotFound = errors.New("coffee not found")

// CoffeeRepository is the record-store abstraction every backend implements.
// Records are keyed by ID; there is no business logic at this layer.
type CoffeeRepository interface {
	// FindAll returns every stored coffee in insertion order. An empty store yields an empty slice.
	FindAll(ctx context.Context) ([]model.Coffee, error)

	// FindByID returns the coffee with the given ID or ErrNotFound.
	FindByID(ctx context.Context, id string) (*model.Coffee, error)

	// ExistsByID reports whether a coffee with the given ID is stored.
	ExistsByID(ctx context.Context, id string) (bool, error)

	// Save inserts the coffee, or replaces the stored record with the same ID in place.
	// Returns the stored record.
	Save(ctx context.Context, c *model.Coffee) (*model.Coffee, error)

	// DeleteByID removes the coffee. Deleting an unknown ID is not an error.
	DeleteByID(ctx context.Context, id string) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error
}
