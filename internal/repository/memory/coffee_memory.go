// Package memory implements an in-process coffee repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"coffeeapi/internal/model"
	"coffeeapi/internal/repository"
)

// CoffeeMemory keeps coffees in a map keyed by ID plus an ordered ID list,
// so lookups are O(1) and FindAll preserves insertion order.
// It is safe for concurrent use by multiple goroutines.
type CoffeeMemory struct {
	mu      sync.RWMutex
	coffees map[string]model.Coffee
	order   []string
}

// NewCoffeeMemory creates an empty in-memory repository.
func NewCoffeeMemory() *CoffeeMemory {
	return &CoffeeMemory{coffees: make(map[string]model.Coffee)}
}

var _ repository.CoffeeRepository = (*CoffeeMemory)(nil)

// FindAll returns a copy of every coffee in insertion order.
func (r *CoffeeMemory) FindAll(ctx context.Context) ([]model.Coffee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Coffee, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.coffees[id])
	}
	return out, nil
}

// FindByID returns the coffee with the given ID.
func (r *CoffeeMemory) FindByID(ctx context.Context, id string) (*model.Coffee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.coffees[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &c, nil
}

// ExistsByID reports whether the ID is stored.
func (r *CoffeeMemory) ExistsByID(ctx context.Context, id string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.coffees[id]
	return ok, nil
}

// Save stores the coffee. A known ID keeps its position in the order.
func (r *CoffeeMemory) Save(ctx context.Context, c *model.Coffee) (*model.Coffee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coffees[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.coffees[c.ID] = *c
	out := *c
	return &out, nil
}

// DeleteByID removes the coffee if present.
func (r *CoffeeMemory) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.coffees[id]; !ok {
		return nil
	}
	delete(r.coffees, id)
	r.order = slices.DeleteFunc(r.order, func(v string) bool { return v == id })
	return nil
}

// Ping always succeeds.
func (r *CoffeeMemory) Ping(ctx context.Context) error {
	return nil
}
