// Package store provides an interface for product storage operations.
package store

import (
	"context"
	"fmt"
)

// Product represents a product entity in the store.
type Product struct {
	ID    int64
	Name  string
	Price float64
	Stock float64
}

// ProductStore is an interface for product storage operations.
// It abstracts the underlying data store, allowing for different implementations (e.g., in-memory, database).
type ProductStore interface {
	// FindAll returns all products in insertion order.
	// Returns an empty slice if no products exist.
	FindAll(ctx context.Context) ([]Product, error)

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// Create adds a new product with the next available ID and returns the stored copy.
	Create(ctx context.Context, name string, price, stock float64) (*Product, error)

	// Update replaces every field of the product with the given ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, name string, price, stock float64) (*Product, error)

	// DeleteByID removes a product by its ID. Remaining products keep their identifiers.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// DefaultCatalog returns the demo catalog: 26 products named "Producto A".."Producto Z",
// priced 100..2600 in steps of 100. Only the first four carry stock.
func DefaultCatalog() []Product {
	stocks := []float64{20, 15, 10, 5}
	catalog := make([]Product, 0, 26)
	for i := 0; i < 26; i++ {
		var stock float64
		if i < len(stocks) {
			stock = stocks[i]
		}
		catalog = append(catalog, Product{
			ID:    int64(i + 1),
			Name:  fmt.Sprintf("Producto %c", 'A'+rune(i)),
			Price: float64((i + 1) * 100),
			Stock: stock,
		})
	}
	return catalog
}
