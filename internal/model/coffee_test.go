package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewCoffee(t *testing.T) {
	c := NewCoffee("Cafe Roma")

	assert.Equal(t, "Cafe Roma", c.Name)
	assert.NotEmpty(t, c.ID)
	_, err := uuid.Parse(c.ID)
	assert.NoError(t, err)
}

func TestNewCoffee_UniqueIDs(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		c := NewCoffee("Cafe")
		_, dup := seen[c.ID]
		assert.False(t, dup, "duplicate id %s", c.ID)
		seen[c.ID] = struct{}{}
	}
}

func TestNewCoffeeWithID(t *testing.T) {
	c := NewCoffeeWithID("abc", "Cafe Lareno")
	assert.Equal(t, Coffee{ID: "abc", Name: "Cafe Lareno"}, c)
}
