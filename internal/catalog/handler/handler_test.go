package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	caterrors "github.com/rlagos/catalog-api/internal/catalog/errors"
	"github.com/rlagos/catalog-api/internal/catalog/metrics"
	"github.com/rlagos/catalog-api/internal/catalog/query"
	"github.com/rlagos/catalog-api/internal/catalog/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProductService is a mock implementation of the ProductService interface
type mockProductService struct {
	page         *query.Page[service.ProductDto]
	product      *service.ProductDto
	products     []service.ProductDto
	message      string
	count        int
	value        float64
	distribution map[int64]int
	points       []metrics.StockPricePoint
	error        error
}

func (m *mockProductService) List(_ context.Context, _ query.Criteria, _, _ int) (*query.Page[service.ProductDto], error) {
	return m.page, m.error
}

func (m *mockProductService) FindByID(_ context.Context, _ int64) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Create(_ context.Context, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) Update(_ context.Context, _ int64, _ service.ProductCreateDto) (*service.ProductDto, error) {
	if m.error != nil {
		return nil, m.error
	}
	return m.product, nil
}

func (m *mockProductService) DeleteByID(_ context.Context, _ int64) (string, error) {
	return m.message, m.error
}

func (m *mockProductService) TotalProducts(_ context.Context, _ query.Criteria) (int, error) {
	return m.count, m.error
}

func (m *mockProductService) TotalRevenue(_ context.Context, _ query.Criteria) (float64, error) {
	return m.value, m.error
}

func (m *mockProductService) AverageStock(_ context.Context, _ query.Criteria) (float64, error) {
	return m.value, m.error
}

func (m *mockProductService) TopExpensive(_ context.Context, _ query.Criteria) ([]service.ProductDto, error) {
	return m.products, m.error
}

func (m *mockProductService) PriceDistribution(_ context.Context, _ query.Criteria) (map[int64]int, error) {
	return m.distribution, m.error
}

func (m *mockProductService) StockVsPrice(_ context.Context, _ query.Criteria) ([]metrics.StockPricePoint, error) {
	return m.points, m.error
}

func newTestHandler(svc service.ProductService) *Handler {
	return NewHandler(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func Test_Handler_FindByID(t *testing.T) {
	testCases := []struct {
		name           string
		pathID         string
		mockService    *mockProductService
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "Success - product found",
			pathID: "1",
			mockService: &mockProductService{
				product: &service.ProductDto{ID: 1, Name: "Producto A", Price: 100, Stock: 20},
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{
				"success": true,
				"message": "Operation successful",
				"code": 200,
				"data": {"id": 1, "name": "Producto A", "price": 100, "stock": 20}
			}`,
		},
		{
			name:           "Error - product not found",
			pathID:         "999",
			mockService:    &mockProductService{error: caterrors.ErrProductNotFound},
			expectedStatus: http.StatusNotFound,
			expectedBody: `{
				"success": false,
				"message": "Product with ID 999 not found",
				"code": 404
			}`,
		},
		{
			name:           "Error - non-numeric ID",
			pathID:         "abc",
			mockService:    &mockProductService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody: `{
				"success": false,
				"message": "id must be a positive number",
				"code": 400
			}`,
		},
		{
			name:           "Error - zero ID",
			pathID:         "0",
			mockService:    &mockProductService{},
			expectedStatus: http.StatusBadRequest,
			expectedBody: `{
				"success": false,
				"message": "id must be a positive number",
				"code": 400
			}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newTestHandler(tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/"+tc.pathID, nil)
			req.SetPathValue("id", tc.pathID)
			rec := httptest.NewRecorder()

			// when
			h.FindByID(rec, req)

			// then
			assert.Equal(t, tc.expectedStatus, rec.Code)
			assert.JSONEq(t, tc.expectedBody, rec.Body.String())
		})
	}
}

func Test_Handler_List(t *testing.T) {
	// given
	next := 2
	mockService := &mockProductService{
		page: &query.Page[service.ProductDto]{
			Items: []service.ProductDto{
				{ID: 1, Name: "Producto A", Price: 100, Stock: 20},
				{ID: 2, Name: "Producto B", Price: 200, Stock: 15},
			},
			TotalItems:  26,
			TotalPages:  13,
			CurrentPage: 1,
			NextPage:    &next,
		},
	}
	h := newTestHandler(mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?limit=2", nil)
	rec := httptest.NewRecorder()

	// when
	h.List(rec, req)

	// then: prevPage is absent on the first page, not null
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Operation successful",
		"code": 200,
		"data": [
			{"id": 1, "name": "Producto A", "price": 100, "stock": 20},
			{"id": 2, "name": "Producto B", "price": 200, "stock": 15}
		],
		"meta": {"totalItems": 26, "totalPages": 13, "currentPage": 1, "nextPage": 2}
	}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "prevPage")
}

func Test_Handler_List_InvalidPagination(t *testing.T) {
	testCases := []struct {
		name  string
		query string
	}{
		{name: "zero page", query: "page=0"},
		{name: "negative limit", query: "limit=-5"},
		{name: "non-numeric page", query: "page=abc"},
		{name: "fractional limit", query: "limit=2.5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newTestHandler(&mockProductService{})
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products?"+tc.query, nil)
			rec := httptest.NewRecorder()

			// when
			h.List(rec, req)

			// then
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.JSONEq(t, `{
				"success": false,
				"message": "pagination parameters must be positive numbers",
				"code": 400
			}`, rec.Body.String())
		})
	}
}

func Test_Handler_List_InvalidNumericFilter(t *testing.T) {
	// given
	h := newTestHandler(&mockProductService{})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?price=cheap", nil)
	rec := httptest.NewRecorder()

	// when
	h.List(rec, req)

	// then
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"message": "price filter must be a number",
		"code": 400
	}`, rec.Body.String())
}

func Test_Handler_Create(t *testing.T) {
	// given
	mockService := &mockProductService{
		product: &service.ProductDto{ID: 27, Name: "Nuevo", Price: 50, Stock: 2},
	}
	h := newTestHandler(mockService)
	body := `{"name": "Nuevo", "price": 50, "stock": 2}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	// when
	h.Create(rec, req)

	// then
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Product created successfully",
		"code": 201,
		"data": {"id": 27, "name": "Nuevo", "price": 50, "stock": 2}
	}`, rec.Body.String())
}

func Test_Handler_Create_ValidationErrors(t *testing.T) {
	// given: zero price and stock count as missing, matching required semantics
	h := newTestHandler(&mockProductService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name": "Nuevo"}`))
	rec := httptest.NewRecorder()

	// when
	h.Create(rec, req)

	// then
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"message": "All fields (name, price, stock) are required",
		"code": 400,
		"errors": {
			"Price": ["failed on rule: required"],
			"Stock": ["failed on rule: required"]
		}
	}`, rec.Body.String())
}

func Test_Handler_Create_MalformedBody(t *testing.T) {
	// given
	h := newTestHandler(&mockProductService{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products", strings.NewReader(`{"name":`))
	rec := httptest.NewRecorder()

	// when
	h.Create(rec, req)

	// then
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"message": "Invalid request body",
		"code": 400
	}`, rec.Body.String())
}

func Test_Handler_Update(t *testing.T) {
	// given
	mockService := &mockProductService{
		product: &service.ProductDto{ID: 1, Name: "Renombrado", Price: 75, Stock: 3},
	}
	h := newTestHandler(mockService)
	body := `{"name": "Renombrado", "price": 75, "stock": 3}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/1", strings.NewReader(body))
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	// when
	h.Update(rec, req)

	// then
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Operation successful",
		"code": 200,
		"data": {"id": 1, "name": "Renombrado", "price": 75, "stock": 3}
	}`, rec.Body.String())
}

func Test_Handler_Update_NotFound(t *testing.T) {
	// given
	h := newTestHandler(&mockProductService{error: caterrors.ErrProductNotFound})
	body := `{"name": "Renombrado", "price": 75, "stock": 3}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/products/999", strings.NewReader(body))
	req.SetPathValue("id", "999")
	rec := httptest.NewRecorder()

	// when
	h.Update(rec, req)

	// then
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"message": "Product with ID 999 not found",
		"code": 404
	}`, rec.Body.String())
}

func Test_Handler_DeleteByID(t *testing.T) {
	// given
	h := newTestHandler(&mockProductService{message: "Product with ID 1 deleted"})
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/products/1", nil)
	req.SetPathValue("id", "1")
	rec := httptest.NewRecorder()

	// when
	h.DeleteByID(rec, req)

	// then: the confirmation message is wrapped like any other payload
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"success": true,
		"message": "Operation successful",
		"code": 200,
		"data": {"message": "Product with ID 1 deleted"}
	}`, rec.Body.String())
}

func Test_Handler_Metrics(t *testing.T) {
	testCases := []struct {
		name         string
		mockService  *mockProductService
		invoke       func(h *Handler, w http.ResponseWriter, r *http.Request)
		expectedData string
	}{
		{
			name:         "total products",
			mockService:  &mockProductService{count: 26},
			invoke:       (*Handler).TotalProducts,
			expectedData: `26`,
		},
		{
			name:         "total revenue",
			mockService:  &mockProductService{value: 10000},
			invoke:       (*Handler).TotalRevenue,
			expectedData: `10000`,
		},
		{
			name:         "average stock",
			mockService:  &mockProductService{value: 1.5},
			invoke:       (*Handler).AverageStock,
			expectedData: `1.5`,
		},
		{
			name: "top expensive products",
			mockService: &mockProductService{
				products: []service.ProductDto{{ID: 26, Name: "Producto Z", Price: 2600, Stock: 0}},
			},
			invoke:       (*Handler).TopExpensive,
			expectedData: `[{"id": 26, "name": "Producto Z", "price": 2600, "stock": 0}]`,
		},
		{
			// int64 bucket keys marshal as strings
			name:         "price distribution",
			mockService:  &mockProductService{distribution: map[int64]int{0: 1, 200: 2}},
			invoke:       (*Handler).PriceDistribution,
			expectedData: `{"0": 1, "200": 2}`,
		},
		{
			name: "stock vs price",
			mockService: &mockProductService{
				points: []metrics.StockPricePoint{{Name: "Producto A", Price: 100, Stock: 20}},
			},
			invoke:       (*Handler).StockVsPrice,
			expectedData: `[{"name": "Producto A", "price": 100, "stock": 20}]`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			h := newTestHandler(tc.mockService)
			req := httptest.NewRequest(http.MethodGet, "/api/v1/products/metrics/"+strings.ReplaceAll(tc.name, " ", "-"), nil)
			rec := httptest.NewRecorder()

			// when
			tc.invoke(h, rec, req)

			// then
			require.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{
				"success": true,
				"message": "Operation successful",
				"code": 200,
				"data": `+tc.expectedData+`
			}`, rec.Body.String())
		})
	}
}

func Test_Handler_Metrics_ServiceError(t *testing.T) {
	// given
	h := newTestHandler(&mockProductService{error: errors.New("store is down")})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/metrics/total-revenue", nil)
	rec := httptest.NewRecorder()

	// when
	h.TotalRevenue(rec, req)

	// then
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{
		"success": false,
		"message": "Failed to compute total revenue",
		"code": 500
	}`, rec.Body.String())
}

func Test_Handler_HealthCheck(t *testing.T) {
	// given
	h := newTestHandler(&mockProductService{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	// when
	h.HealthCheck(rec, req)

	// then
	assert.Equal(t, http.StatusOK, rec.Code)
}
