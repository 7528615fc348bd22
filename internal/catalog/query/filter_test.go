package query

import (
	"testing"

	"github.com/rlagos/catalog-api/internal/catalog/store"
	"github.com/stretchr/testify/assert"
)

func fixture() []store.Product {
	return []store.Product{
		{ID: 1, Name: "Producto A", Price: 100, Stock: 20},
		{ID: 2, Name: "Producto B", Price: 200, Stock: 15},
		{ID: 3, Name: "Gadget", Price: 1000, Stock: 10},
		{ID: 4, Name: "gadget pro", Price: 210, Stock: 0},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func ids(products []store.Product) []int64 {
	result := make([]int64, len(products))
	for i, p := range products {
		result[i] = p.ID
	}
	return result
}

func Test_Filter(t *testing.T) {
	testCases := []struct {
		name        string
		criteria    Criteria
		expectedIDs []int64
	}{
		{
			name:        "no criteria - all products pass",
			criteria:    Criteria{},
			expectedIDs: []int64{1, 2, 3, 4},
		},
		{
			name:        "empty name is no filter, not match-nothing",
			criteria:    Criteria{Name: "   "},
			expectedIDs: []int64{1, 2, 3, 4},
		},
		{
			name:        "name matches case-insensitive substring",
			criteria:    Criteria{Name: "GADGET"},
			expectedIDs: []int64{3, 4},
		},
		{
			name:        "name substring in the middle",
			criteria:    Criteria{Name: "ducto"},
			expectedIDs: []int64{1, 2},
		},
		{
			name:        "name without matches",
			criteria:    Criteria{Name: "widget"},
			expectedIDs: []int64{},
		},
		{
			// 100, 1000 and 210 all contain "10" as decimal text
			name:        "price matches by decimal-string containment",
			criteria:    Criteria{Price: floatPtr(10)},
			expectedIDs: []int64{1, 3, 4},
		},
		{
			name:        "price exact text is still a substring match",
			criteria:    Criteria{Price: floatPtr(200)},
			expectedIDs: []int64{2},
		},
		{
			name:        "stock matches by decimal-string containment",
			criteria:    Criteria{Stock: floatPtr(0)},
			expectedIDs: []int64{1, 3, 4},
		},
		{
			name:        "criteria are conjunctive",
			criteria:    Criteria{Name: "gadget", Price: floatPtr(10)},
			expectedIDs: []int64{3, 4},
		},
		{
			name:        "conjunction can eliminate everything",
			criteria:    Criteria{Name: "Producto", Stock: floatPtr(10)},
			expectedIDs: []int64{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			products := fixture()

			// when
			filtered := Filter(products, tc.criteria)

			// then
			assert.Equal(t, tc.expectedIDs, ids(filtered), "filtered IDs should match")
			assert.Equal(t, fixture(), products, "input must not be mutated")
		})
	}
}

func Test_Filter_Idempotent(t *testing.T) {
	// given
	criteria := Criteria{Name: "producto", Price: floatPtr(0)}

	// when
	once := Filter(fixture(), criteria)
	twice := Filter(once, criteria)

	// then
	assert.Equal(t, once, twice, "applying the same criteria twice should be a no-op")
}

func Test_Filter_PreservesOrder(t *testing.T) {
	// given
	products := fixture()

	// when
	filtered := Filter(products, Criteria{Price: floatPtr(0)})

	// then: 100, 200, 1000, 210 all contain "0"; order untouched
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(filtered))
}
