package e

import "fmt"

var (
	// Ошибки каталога и заказов
	ErrProductNotFound = fmt.Errorf("product not found")
	ErrNoValidItems    = fmt.Errorf("no valid items in order")
	ErrOrderNotFound   = fmt.Errorf("order not found")
	ErrDuplicateOrder  = fmt.Errorf("order with this id already exists")
	ErrInvalidCatalog  = fmt.Errorf("invalid catalog")

	// Ошибки хранилища заказов
	ErrStoreWrite   = fmt.Errorf("order store write failed")
	ErrStoreCorrupt = fmt.Errorf("order store is corrupted")
	ErrStoreLocked  = fmt.Errorf("order store is locked")

	// Ошибки кэша
	ErrCacheMiss = fmt.Errorf("cache miss")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")
	ErrUnsupportedCatalog   = fmt.Errorf("unsupported catalog format")

	// 400 Bad Request
	ErrStatusBadRequest = fmt.Errorf("bad request")
	ErrInvalidPrice     = fmt.Errorf("invalid price")
	ErrInvalidJSON      = fmt.Errorf("invalid json body")
	ErrMissingFields    = fmt.Errorf("missing required fields")
	ErrNoItems          = fmt.Errorf("no items provided")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
