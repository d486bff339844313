// Package catalog holds the storefront's static product list.
package catalog

import (
	"github.com/shopspring/decimal"
	"github.com/yashrajoria/storefront/models"
)

// AllCategories is the pseudo-category that selects every product.
const AllCategories = "all"

// Catalog is an immutable product list.
type Catalog struct {
	products   []models.Product
	categories []string
}

// New builds a catalog from products. Categories are collected in first-seen order.
func New(products []models.Product) *Catalog {
	c := &Catalog{
		products:   append([]models.Product(nil), products...),
		categories: []string{AllCategories},
	}
	seen := map[string]bool{}
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			c.categories = append(c.categories, p.Category)
		}
	}
	return c
}

// Default returns the store's built-in assortment.
func Default() *Catalog {
	return New([]models.Product{
		{ID: 1, Name: "Беспроводные наушники", Price: decimal.NewFromInt(8990), Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop", Category: "Аудио"},
		{ID: 2, Name: "Умные часы", Price: decimal.NewFromInt(15990), Image: "https://images.unsplash.com/photo-1523275335684-37898b6baf30?w=500&h=500&fit=crop", Category: "Аксессуары"},
		{ID: 3, Name: "Минималистичный рюкзак", Price: decimal.NewFromInt(4990), Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&h=500&fit=crop", Category: "Сумки"},
		{ID: 4, Name: "Портативная колонка", Price: decimal.NewFromInt(6490), Image: "https://images.unsplash.com/photo-1608043152269-423dbba4e7e1?w=500&h=500&fit=crop", Category: "Аудио"},
		{ID: 5, Name: "Беспроводная мышь", Price: decimal.NewFromInt(2990), Image: "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&h=500&fit=crop", Category: "Техника"},
		{ID: 6, Name: "Клавиатура механическая", Price: decimal.NewFromInt(9990), Image: "https://images.unsplash.com/photo-1587829741301-dc798b83add3?w=500&h=500&fit=crop", Category: "Техника"},
	})
}

// Find looks a product up by id.
func (c *Catalog) Find(id int) (models.Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// All returns a copy of every product.
func (c *Catalog) All() []models.Product {
	return append([]models.Product(nil), c.products...)
}

// Categories returns the category tabs, starting with AllCategories.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// ByCategory filters products. An empty category or AllCategories returns everything.
func (c *Catalog) ByCategory(category string) []models.Product {
	if category == "" || category == AllCategories {
		return c.All()
	}
	out := make([]models.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}
