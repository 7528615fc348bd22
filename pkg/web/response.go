package web

import "net/http"

// DefaultMessage is the message carried by envelopes that do not set one.
const DefaultMessage = "Operation successful"

// Response is the uniform envelope returned by every endpoint. It is a
// sealed interface with exactly three implementations: SuccessResponse,
// PaginatedResponse and ErrorResponse. Wrap is total over it: a value
// already carrying one of the three shapes passes through unchanged.
type Response interface {
	// StatusCode returns the HTTP status code the envelope should be written with.
	StatusCode() int

	sealedResponse()
}

// SuccessResponse wraps a single result.
type SuccessResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// PaginationMeta is the pagination block of a PaginatedResponse.
// NextPage is absent on the last page, PrevPage on the first.
type PaginationMeta struct {
	TotalItems  int  `json:"totalItems"`
	TotalPages  int  `json:"totalPages"`
	CurrentPage int  `json:"currentPage"`
	NextPage    *int `json:"nextPage,omitempty"`
	PrevPage    *int `json:"prevPage,omitempty"`
}

// PaginatedResponse wraps one page of results plus pagination metadata.
type PaginatedResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Code    int            `json:"code"`
	Data    any            `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

// ErrorResponse wraps a failure. Errors optionally carries per-field
// validation messages.
type ErrorResponse struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Code    int                 `json:"code"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// NewSuccess creates a SuccessResponse with the default message and code 200.
func NewSuccess(data any) *SuccessResponse {
	return &SuccessResponse{
		Success: true,
		Message: DefaultMessage,
		Code:    http.StatusOK,
		Data:    data,
	}
}

// WithMessage overrides the envelope message.
func (r *SuccessResponse) WithMessage(message string) *SuccessResponse {
	r.Message = message
	return r
}

// WithCode overrides the envelope (and HTTP) status code.
func (r *SuccessResponse) WithCode(code int) *SuccessResponse {
	r.Code = code
	return r
}

// WithMeta attaches free-form metadata to the envelope.
func (r *SuccessResponse) WithMeta(meta map[string]any) *SuccessResponse {
	r.Meta = meta
	return r
}

// NewPaginated creates a PaginatedResponse with the default message and code 200.
func NewPaginated(data any, meta PaginationMeta) *PaginatedResponse {
	return &PaginatedResponse{
		Success: true,
		Message: DefaultMessage,
		Code:    http.StatusOK,
		Data:    data,
		Meta:    meta,
	}
}

// NewError creates an ErrorResponse with the given message and status code.
func NewError(message string, code int) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Message: message,
		Code:    code,
	}
}

// WithFieldErrors attaches a field -> violation list mapping.
func (r *ErrorResponse) WithFieldErrors(errors map[string][]string) *ErrorResponse {
	r.Errors = errors
	return r
}

// Wrap turns any value into a Response. Values that are already one of
// the three envelope shapes are returned as-is (identity on shape, never
// content inspection); anything else becomes a default SuccessResponse.
func Wrap(v any) Response {
	if resp, ok := v.(Response); ok {
		return resp
	}
	return NewSuccess(v)
}

func (r *SuccessResponse) StatusCode() int   { return r.Code }
func (r *PaginatedResponse) StatusCode() int { return r.Code }
func (r *ErrorResponse) StatusCode() int     { return r.Code }

func (r *SuccessResponse) sealedResponse()   {}
func (r *PaginatedResponse) sealedResponse() {}
func (r *ErrorResponse) sealedResponse()     {}
