package model

import "github.com/google/uuid"

// Coffee is the single resource served by the API.
// ID is assigned once at construction and is the only lookup key; Name may change freely.
type Coffee struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DefaultCoffeeNames is the catalogue seeded into an empty store at startup.
var DefaultCoffeeNames = []string{
	"Cafe Cereze",
	"Cafe Ganador",
	"Cafe Lareno",
	"Cafe Tres Pontas",
}

// NewID returns a random 128-bit identifier rendered as a UUID string.
func NewID() string {
	return uuid.NewString()
}

// NewCoffee builds a Coffee with a freshly generated ID.
func NewCoffee(name string) Coffee {
	return NewCoffeeWithID(NewID(), name)
}

// NewCoffeeWithID builds a Coffee with a caller-chosen ID.
func NewCoffeeWithID(id, name string) Coffee {
	return Coffee{ID: id, Name: name}
}
