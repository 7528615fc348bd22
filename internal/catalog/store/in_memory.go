package store

import (
	"context"
	"sync"

	caterrors "github.com/rlagos/catalog-api/internal/catalog/errors"
)

// inMemory implements ProductStore using an ordered in-memory slice.
// Products keep insertion order; identifiers come from a monotonically
// increasing counter and are never reused after deletion.
type inMemory struct {
	mu       sync.RWMutex
	products []Product
	nextID   int64
}

// NewInMemoryStore creates a new ProductStore seeded with the given products.
// Seed products must carry unique, ascending identifiers (see DefaultCatalog).
func NewInMemoryStore(seed ...Product) ProductStore {
	s := &inMemory{
		products: make([]Product, 0, len(seed)),
		nextID:   1,
	}
	for _, p := range seed {
		s.products = append(s.products, p)
		if p.ID >= s.nextID {
			s.nextID = p.ID + 1
		}
	}
	return s
}

// FindAll retrieves all products in insertion order.
func (s *inMemory) FindAll(_ context.Context) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, len(s.products))
	copy(list, s.products)
	return list, nil
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.indexOf(id)
	if !ok {
		return nil, caterrors.ErrProductNotFound
	}
	p := s.products[i]
	return &p, nil
}

// Create appends a new product and returns the stored copy.
func (s *inMemory) Create(_ context.Context, name string, price, stock float64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{
		ID:    s.nextID,
		Name:  name,
		Price: price,
		Stock: stock,
	}
	s.nextID++
	s.products = append(s.products, product)
	return &product, nil
}

// Update replaces every field of the product at the found position.
func (s *inMemory) Update(_ context.Context, id int64, name string, price, stock float64) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return nil, caterrors.ErrProductNotFound
	}
	s.products[i] = Product{ID: id, Name: name, Price: price, Stock: stock}
	p := s.products[i]
	return &p, nil
}

// DeleteByID removes a product by its ID without renumbering the rest.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.indexOf(id)
	if !ok {
		return caterrors.ErrProductNotFound
	}
	s.products = append(s.products[:i], s.products[i+1:]...)
	return nil
}

// indexOf returns the position of the product with the given ID.
// Callers must hold the lock.
func (s *inMemory) indexOf(id int64) (int, bool) {
	for i, p := range s.products {
		if p.ID == id {
			return i, true
		}
	}
	return 0, false
}
