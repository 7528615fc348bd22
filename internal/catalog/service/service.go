// Package service provides the implementation of catalog business logic.
package service

import (
	"context"
	"fmt"

	caterrors "github.com/rlagos/catalog-api/internal/catalog/errors"
	"github.com/rlagos/catalog-api/internal/catalog/metrics"
	"github.com/rlagos/catalog-api/internal/catalog/query"
	"github.com/rlagos/catalog-api/internal/catalog/store"
)

// topExpensiveLimit is how many products the top-expensive ranking returns.
const topExpensiveLimit = 5

// ProductService defines the operations of the catalog: CRUD, filtered
// paginated listing and the derived analytics. Every operation fails fast
// with a typed error before any mutation takes place.
type ProductService interface {
	// List returns one page of products matching the criteria.
	// Returns ErrInvalidPagination when page or limit is not positive.
	List(ctx context.Context, criteria query.Criteria, page, limit int) (*query.Page[ProductDto], error)

	// FindByID retrieves a single product by its identifier.
	// Returns ErrInvalidID for a non-positive ID, ErrProductNotFound if absent.
	FindByID(ctx context.Context, id int64) (*ProductDto, error)

	// Create adds a new product and returns the stored copy with its assigned ID.
	Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error)

	// Update fully replaces the product with the given ID. Partial updates
	// are not supported; every call replaces name, price and stock.
	Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error)

	// DeleteByID removes a product and returns a confirmation message.
	DeleteByID(ctx context.Context, id int64) (string, error)

	// TotalProducts returns the number of products matching the criteria.
	TotalProducts(ctx context.Context, criteria query.Criteria) (int, error)

	// TotalRevenue returns the sum of price*stock over matching products.
	TotalRevenue(ctx context.Context, criteria query.Criteria) (float64, error)

	// AverageStock returns the mean stock of matching products, 0 when none match.
	AverageStock(ctx context.Context, criteria query.Criteria) (float64, error)

	// TopExpensive returns at most five matching products, most expensive first.
	TopExpensive(ctx context.Context, criteria query.Criteria) ([]ProductDto, error)

	// PriceDistribution returns a price histogram keyed by bucket lower bound.
	PriceDistribution(ctx context.Context, criteria query.Criteria) (map[int64]int, error)

	// StockVsPrice returns the {name, price, stock} projection of matching products.
	StockVsPrice(ctx context.Context, criteria query.Criteria) ([]metrics.StockPricePoint, error)
}

// Service implements ProductService on top of a ProductStore.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided store.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductCreateDto represents the data transfer object for creating or
// fully replacing a product. All three fields are required; a zero price
// or stock is rejected at the boundary.
type ProductCreateDto struct {
	Name  string  `json:"name"  validate:"required,max=100"`
	Price float64 `json:"price" validate:"required"`
	Stock float64 `json:"stock" validate:"required"`
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock float64 `json:"stock"`
}

// List filters the catalog and slices the result into the requested page.
func (s *Service) List(ctx context.Context, criteria query.Criteria, page, limit int) (*query.Page[ProductDto], error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return nil, err
	}
	result, err := query.Paginate(toDtoList(filtered), page, limit)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// FindByID retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) FindByID(ctx context.Context, id int64) (*ProductDto, error) {
	if id <= 0 {
		return nil, caterrors.ErrInvalidID
	}
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product by ID %d: %w", id, err)
	}
	return toDto(product), nil
}

// Create adds a new product and returns it as a ProductDto.
func (s *Service) Create(ctx context.Context, product ProductCreateDto) (*ProductDto, error) {
	created, err := s.repository.Create(ctx, product.Name, product.Price, product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return toDto(created), nil
}

// Update fully replaces an existing product and returns the updated copy.
func (s *Service) Update(ctx context.Context, id int64, product ProductCreateDto) (*ProductDto, error) {
	if id <= 0 {
		return nil, caterrors.ErrInvalidID
	}
	updated, err := s.repository.Update(ctx, id, product.Name, product.Price, product.Stock)
	if err != nil {
		return nil, fmt.Errorf("failed to update product with ID %d: %w", id, err)
	}
	return toDto(updated), nil
}

// DeleteByID deletes a product by its ID and returns a confirmation message.
func (s *Service) DeleteByID(ctx context.Context, id int64) (string, error) {
	if id <= 0 {
		return "", caterrors.ErrInvalidID
	}
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return "", fmt.Errorf("failed to delete product with ID %d: %w", id, err)
	}
	return fmt.Sprintf("Product with ID %d deleted", id), nil
}

// TotalProducts counts the products matching the criteria.
func (s *Service) TotalProducts(ctx context.Context, criteria query.Criteria) (int, error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return len(filtered), nil
}

// TotalRevenue sums price*stock over the products matching the criteria.
func (s *Service) TotalRevenue(ctx context.Context, criteria query.Criteria) (float64, error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return metrics.Revenue(filtered), nil
}

// AverageStock computes the mean stock of the products matching the criteria.
func (s *Service) AverageStock(ctx context.Context, criteria query.Criteria) (float64, error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return 0, err
	}
	return metrics.AverageStock(filtered), nil
}

// TopExpensive returns the most expensive matching products, capped at five.
func (s *Service) TopExpensive(ctx context.Context, criteria query.Criteria) ([]ProductDto, error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return toDtoList(metrics.TopExpensive(filtered, topExpensiveLimit)), nil
}

// PriceDistribution buckets the matching products by price.
func (s *Service) PriceDistribution(ctx context.Context, criteria query.Criteria) (map[int64]int, error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return metrics.PriceDistribution(filtered), nil
}

// StockVsPrice projects the matching products onto {name, price, stock}.
func (s *Service) StockVsPrice(ctx context.Context, criteria query.Criteria) ([]metrics.StockPricePoint, error) {
	filtered, err := s.filtered(ctx, criteria)
	if err != nil {
		return nil, err
	}
	return metrics.StockVsPrice(filtered), nil
}

// filtered loads the catalog and applies the filter criteria.
func (s *Service) filtered(ctx context.Context, criteria query.Criteria) ([]store.Product, error) {
	products, err := s.repository.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return query.Filter(products, criteria), nil
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}

// toDtoList converts a slice of store.Product to ProductDtos.
func toDtoList(products []store.Product) []ProductDto {
	dtos := make([]ProductDto, len(products))
	for i, p := range products {
		dtos[i] = *toDto(&p)
	}
	return dtos
}
