// Package handler provides the HTTP handlers for catalog operations.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	caterrors "github.com/rlagos/catalog-api/internal/catalog/errors"
	"github.com/rlagos/catalog-api/internal/catalog/query"
	"github.com/rlagos/catalog-api/internal/catalog/service"
	"github.com/rlagos/catalog-api/pkg/web"
)

type Handler struct {
	service  service.ProductService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewHandler creates a new instance of Handler with the provided service.
func NewHandler(service service.ProductService, logger *slog.Logger) *Handler {
	return &Handler{
		service:  service,
		validate: validator.New(),
		logger:   logger.With("component", "rest"),
	}
}

// RegisterRoutes registers the HTTP routes for the catalog service.
func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)

		r.Route("/metrics", func(r chi.Router) {
			r.Get("/total-products", h.TotalProducts)
			r.Get("/total-revenue", h.TotalRevenue)
			r.Get("/average-stock", h.AverageStock)
			r.Get("/top-expensive-products", h.TopExpensive)
			r.Get("/price-distribution", h.PriceDistribution)
			r.Get("/stock-vs-price", h.StockVsPrice)
		})

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.FindByID)
			r.Put("/", h.Update)
			r.Delete("/", h.DeleteByID)
		})
	})

	r.Get("/healthz", h.HealthCheck)
}

// List returns one page of products matching the optional filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	criteria, ok := parseCriteria(w, r, mLogger)
	if !ok {
		return
	}
	page, limit, ok := parsePageRequest(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to list products", "page", page, "limit", limit)
	result, err := h.service.List(r.Context(), criteria, page, limit)
	if err != nil {
		if errors.Is(err, caterrors.ErrInvalidPagination) {
			web.RespondError(w, mLogger, http.StatusBadRequest, caterrors.ErrInvalidPagination.Error())
			return
		}
		mLogger.ErrorContext(r.Context(), "Error retrieving product list", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product page", "count", len(result.Items), "total", result.TotalItems)
	web.Respond(w, mLogger, web.NewPaginated(result.Items, pageMeta(result)))
}

// FindByID retrieves a product by its ID.
func (h *Handler) FindByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to find product by ID", "ID", id)
	found, err := h.service.FindByID(r.Context(), id)
	if err != nil {
		h.respondFailure(w, r, mLogger, err, id, "retrieve")
		return
	}
	mLogger.DebugContext(r.Context(), "Successfully retrieved product", "ID", found.ID, "Name", found.Name)
	web.Respond(w, mLogger, found)
}

// Create handles the creation of a new product.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	productDto, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}

	created, err := h.service.Create(r.Context(), productDto)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error creating product", "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, "Failed to create product")
		return
	}
	mLogger.InfoContext(r.Context(), "Product created successfully", "ID", created.ID, "Name", created.Name)
	web.Respond(w, mLogger, web.NewSuccess(created).
		WithMessage("Product created successfully").
		WithCode(http.StatusCreated))
}

// Update fully replaces a product by its ID.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := parseID(w, r, mLogger)
	if !ok {
		return
	}
	productDto, ok := h.decodeProduct(w, r, mLogger)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), id, productDto)
	if err != nil {
		h.respondFailure(w, r, mLogger, err, id, "update")
		return
	}
	mLogger.InfoContext(r.Context(), "Product updated successfully", "ID", updated.ID, "Name", updated.Name)
	web.Respond(w, mLogger, updated)
}

// DeleteByID deletes a product by its ID.
func (h *Handler) DeleteByID(w http.ResponseWriter, r *http.Request) {
	mLogger := h.loggerWithReqID(r)
	id, ok := parseID(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to delete product", "ID", id)
	message, err := h.service.DeleteByID(r.Context(), id)
	if err != nil {
		h.respondFailure(w, r, mLogger, err, id, "delete")
		return
	}
	mLogger.InfoContext(r.Context(), "Product deleted successfully", "ID", id)
	web.Respond(w, mLogger, map[string]string{"message": message})
}

// TotalProducts returns the number of products matching the filters.
func (h *Handler) TotalProducts(w http.ResponseWriter, r *http.Request) {
	h.respondMetric(w, r, "total products", func(ctx context.Context, criteria query.Criteria) (any, error) {
		return h.service.TotalProducts(ctx, criteria)
	})
}

// TotalRevenue returns the summed price*stock of products matching the filters.
func (h *Handler) TotalRevenue(w http.ResponseWriter, r *http.Request) {
	h.respondMetric(w, r, "total revenue", func(ctx context.Context, criteria query.Criteria) (any, error) {
		return h.service.TotalRevenue(ctx, criteria)
	})
}

// AverageStock returns the mean stock of products matching the filters.
func (h *Handler) AverageStock(w http.ResponseWriter, r *http.Request) {
	h.respondMetric(w, r, "average stock", func(ctx context.Context, criteria query.Criteria) (any, error) {
		return h.service.AverageStock(ctx, criteria)
	})
}

// TopExpensive returns the five most expensive products matching the filters.
func (h *Handler) TopExpensive(w http.ResponseWriter, r *http.Request) {
	h.respondMetric(w, r, "top expensive products", func(ctx context.Context, criteria query.Criteria) (any, error) {
		return h.service.TopExpensive(ctx, criteria)
	})
}

// PriceDistribution returns the price histogram of products matching the filters.
func (h *Handler) PriceDistribution(w http.ResponseWriter, r *http.Request) {
	h.respondMetric(w, r, "price distribution", func(ctx context.Context, criteria query.Criteria) (any, error) {
		return h.service.PriceDistribution(ctx, criteria)
	})
}

// StockVsPrice returns the stock-vs-price projection of products matching the filters.
func (h *Handler) StockVsPrice(w http.ResponseWriter, r *http.Request) {
	h.respondMetric(w, r, "stock vs price", func(ctx context.Context, criteria query.Criteria) (any, error) {
		return h.service.StockVsPrice(ctx, criteria)
	})
}

// HealthCheck is a simple health check endpoint.
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// respondMetric parses the filter criteria, computes one aggregation and
// responds with its raw value; web.Respond wraps it into a Success envelope.
func (h *Handler) respondMetric(w http.ResponseWriter, r *http.Request, name string, compute func(context.Context, query.Criteria) (any, error)) {
	mLogger := h.loggerWithReqID(r)
	criteria, ok := parseCriteria(w, r, mLogger)
	if !ok {
		return
	}

	mLogger.DebugContext(r.Context(), "Received request to compute metric", "metric", name)
	value, err := compute(r.Context(), criteria)
	if err != nil {
		mLogger.ErrorContext(r.Context(), "Error computing metric", "metric", name, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to compute %s", name))
		return
	}
	web.Respond(w, mLogger, value)
}

// respondFailure maps service errors of id-addressed operations onto error envelopes.
func (h *Handler) respondFailure(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger, err error, id int64, operation string) {
	switch {
	case errors.Is(err, caterrors.ErrProductNotFound):
		mLogger.WarnContext(r.Context(), "Product not found", "ID", id, "operation", operation)
		web.RespondError(w, mLogger, http.StatusNotFound, fmt.Sprintf("Product with ID %d not found", id))
	case errors.Is(err, caterrors.ErrInvalidID):
		mLogger.WarnContext(r.Context(), "Invalid product ID", "ID", id, "operation", operation)
		web.RespondError(w, mLogger, http.StatusBadRequest, caterrors.ErrInvalidID.Error())
	default:
		mLogger.ErrorContext(r.Context(), "Unexpected service error", "ID", id, "operation", operation, "error", err)
		web.RespondError(w, mLogger, http.StatusInternalServerError, fmt.Sprintf("Failed to %s product with ID %d", operation, id))
	}
}

// decodeProduct decodes and validates a create/update request body.
// Validation violations are answered as a field -> messages mapping.
func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request, mLogger *slog.Logger) (service.ProductCreateDto, bool) {
	var productDto service.ProductCreateDto
	if err := json.NewDecoder(r.Body).Decode(&productDto); err != nil {
		mLogger.ErrorContext(r.Context(), "Error decoding request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return productDto, false
	}
	if err := h.validate.Struct(productDto); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fieldErrors := make(map[string][]string)
			for _, fieldErr := range validationErrors {
				fieldErrors[fieldErr.Field()] = append(fieldErrors[fieldErr.Field()], "failed on rule: "+fieldErr.Tag())
			}
			mLogger.WarnContext(r.Context(), "Validation errors occurred", "errors", fieldErrors)
			web.Respond(w, mLogger, web.NewError("All fields (name, price, stock) are required", http.StatusBadRequest).
				WithFieldErrors(fieldErrors))
			return productDto, false
		}
		mLogger.ErrorContext(r.Context(), "Error validating request body", "error", err)
		web.RespondError(w, mLogger, http.StatusBadRequest, "Invalid request body")
		return productDto, false
	}
	return productDto, true
}

// parseID extracts and validates the product ID from the request path.
func parseID(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int64, bool) {
	pathValueID := r.PathValue("id")
	id, err := strconv.ParseInt(pathValueID, 10, 64)
	if err != nil || id <= 0 {
		web.RespondError(w, logger, http.StatusBadRequest, caterrors.ErrInvalidID.Error())
		return 0, false
	}
	return id, true
}

// parseCriteria reads the optional name/price/stock filter parameters.
func parseCriteria(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (query.Criteria, bool) {
	criteria := query.Criteria{Name: r.URL.Query().Get("name")}

	price, ok := parseNumericFilter(w, r, logger, "price")
	if !ok {
		return query.Criteria{}, false
	}
	stock, ok := parseNumericFilter(w, r, logger, "stock")
	if !ok {
		return query.Criteria{}, false
	}
	criteria.Price = price
	criteria.Stock = stock
	return criteria, true
}

// parseNumericFilter reads an optional numeric query parameter.
// Returns nil when the parameter is absent.
func parseNumericFilter(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string) (*float64, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		web.RespondError(w, logger, http.StatusBadRequest, fmt.Sprintf("%s filter must be a number", key))
		return nil, false
	}
	return &value, true
}

// parsePageRequest reads page and limit, applying the defaults when absent.
func parsePageRequest(w http.ResponseWriter, r *http.Request, logger *slog.Logger) (int, int, bool) {
	page, ok := parsePositiveInt(w, r, logger, "page", query.DefaultPage)
	if !ok {
		return 0, 0, false
	}
	limit, ok := parsePositiveInt(w, r, logger, "limit", query.DefaultLimit)
	if !ok {
		return 0, 0, false
	}
	return page, limit, true
}

func parsePositiveInt(w http.ResponseWriter, r *http.Request, logger *slog.Logger, key string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		web.RespondError(w, logger, http.StatusBadRequest, caterrors.ErrInvalidPagination.Error())
		return 0, false
	}
	return value, true
}

// pageMeta converts pagination arithmetic into the envelope's meta block.
func pageMeta[T any](page *query.Page[T]) web.PaginationMeta {
	return web.PaginationMeta{
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		NextPage:    page.NextPage,
		PrevPage:    page.PrevPage,
	}
}

// loggerWithReqID creates a logger with the request ID from the context.
func (h *Handler) loggerWithReqID(r *http.Request) *slog.Logger {
	reqID, found := web.GetRequestID(r.Context())
	if !found {
		reqID = "unknown"
	}
	return h.logger.With("request_id", reqID)
}
