// Package metrics computes derived analytics over a filtered product
// sequence. Every function is a pure reducer: it never mutates its input
// and returns a zero value, not an error, for an empty sequence.
package metrics

import (
	"math"
	"sort"

	"github.com/rlagos/catalog-api/internal/catalog/store"
)

// PriceBucketWidth is the fixed width of the price histogram buckets.
const PriceBucketWidth = 200

// StockPricePoint is a single point of the stock-vs-price projection.
type StockPricePoint struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	Stock float64 `json:"stock"`
}

// Revenue returns the sum of price*stock over all products.
func Revenue(products []store.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.Price * p.Stock
	}
	return total
}

// AverageStock returns the mean stock, or 0 for an empty sequence.
func AverageStock(products []store.Product) float64 {
	if len(products) == 0 {
		return 0
	}
	var total float64
	for _, p := range products {
		total += p.Stock
	}
	return total / float64(len(products))
}

// TopExpensive returns the n most expensive products, sorted by
// non-increasing price. Ties keep their original relative order.
func TopExpensive(products []store.Product, n int) []store.Product {
	sorted := make([]store.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price > sorted[j].Price
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// PriceDistribution groups products into fixed-width price buckets keyed
// by the bucket's lower bound: floor(price/200)*200. Empty buckets are
// omitted rather than zero-filled.
func PriceDistribution(products []store.Product) map[int64]int {
	distribution := make(map[int64]int)
	for _, p := range products {
		bucket := int64(math.Floor(p.Price/PriceBucketWidth)) * PriceBucketWidth
		distribution[bucket]++
	}
	return distribution
}

// StockVsPrice projects each product onto {name, price, stock},
// preserving input order.
func StockVsPrice(products []store.Product) []StockPricePoint {
	points := make([]StockPricePoint, len(products))
	for i, p := range products {
		points[i] = StockPricePoint{Name: p.Name, Price: p.Price, Stock: p.Stock}
	}
	return points
}
