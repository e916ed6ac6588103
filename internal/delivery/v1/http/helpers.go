package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/DRSN-tech/grocery-merchant/internal/delivery/v1/presenter"
	"github.com/DRSN-tech/grocery-merchant/internal/usecase"
	"github.com/DRSN-tech/grocery-merchant/pkg/e"
	"github.com/shopspring/decimal"
)

// SessionHeader — заголовок с идентификатором сессии разговора.
const SessionHeader = "X-Session-ID"

const maxRequestBody = 1 << 20

type ErrorResponse struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, kind, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// ToHTTPResponse сопоставляет ошибку со статусом, видом и сообщением для агента.
// Внутренние ошибки наружу не отдаются.
func ToHTTPResponse(err error) (int, string, string) {
	switch {
	case errors.Is(err, e.ErrNoValidItems):
		return http.StatusUnprocessableEntity, "no_valid_items", presenter.NoValidItems
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, "order_not_found", "Order not found."
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, "product_not_found", "Product not found."
	case errors.Is(err, e.ErrInvalidJSON):
		return http.StatusBadRequest, "invalid_json", "Request body is not valid JSON."
	case errors.Is(err, e.ErrMissingFields):
		return http.StatusBadRequest, "missing_fields", "Required fields are missing."
	case errors.Is(err, e.ErrNoItems):
		return http.StatusBadRequest, "no_items", "No items provided."
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, "invalid_price", "Price must be a non-negative number."
	case errors.Is(err, e.ErrStatusBadRequest):
		return http.StatusBadRequest, "bad_request", "Bad request."
	case errors.Is(err, e.ErrStoreWrite):
		return http.StatusInternalServerError, "store_write_failed", "Failed to place order: the order was not saved."
	default:
		return http.StatusInternalServerError, "internal", e.ErrInternalServerError.Error()
	}
}

func WriteError(w http.ResponseWriter, err error) {
	code, kind, msg := ToHTTPResponse(err)
	WriteSuccess(w, code, NewErrorResponse(code, kind, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// sessionID достает идентификатор сессии из заголовка.
func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(SessionHeader)); id != "" {
		return id
	}
	return usecase.DefaultSessionID
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return e.Wrap(err.Error(), e.ErrInvalidJSON)
	}
	return nil
}

// parsePrice разбирает неотрицательную цену из query-параметра. Пустая строка — nil.
func parsePrice(s string) (*decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, e.Wrap(s, e.ErrInvalidPrice)
	}

	if d.IsNegative() {
		return nil, e.Wrap(s, e.ErrInvalidPrice)
	}

	return &d, nil
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
