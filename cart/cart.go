// Package cart keeps the line items of one browser session.
package cart

import (
	"errors"
	"sync"

	"github.com/yashrajoria/storefront/models"
)

// ErrInvalidQuantity is returned when a quantity below 1 is requested.
var ErrInvalidQuantity = errors.New("quantity must be at least 1")

// ProductFinder resolves product ids against the catalog.
type ProductFinder interface {
	Find(id int) (models.Product, bool)
}

// Cart is an ordered list of lines, one per product id, each with quantity >= 1.
type Cart struct {
	mu     sync.Mutex
	finder ProductFinder
	lines  []models.CartLine
}

// New returns an empty cart backed by finder.
func New(finder ProductFinder) *Cart {
	return &Cart{finder: finder}
}

// Add puts one more unit of the product in the cart.
// It returns false when the product is not in the catalog.
func (c *Cart) Add(productID int) bool {
	product, ok := c.finder.Find(productID)
	if !ok {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines[i].Quantity++
			return true
		}
	}
	c.lines = append(c.lines, models.CartLine{Product: product, Quantity: 1})
	return true
}

// UpdateQuantity sets the quantity of an existing line.
// Quantities below 1 are rejected without touching the cart; unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ID == productID {
			c.lines[i].Quantity = quantity
			return nil
		}
	}
	return nil
}

// Remove deletes the line for productID if there is one.
func (c *Cart) Remove(productID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.ID != productID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()
}

// Lines returns a copy of the lines in insertion order.
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.CartLine(nil), c.lines...)
}

// TotalItemCount sums quantities over all lines; the header badge shows it.
func (c *Cart) TotalItemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}
