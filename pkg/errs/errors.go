package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotFound       = http.StatusNotFound
	ErrBadGateway           = http.StatusBadGateway
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrClient             = errors.New("Bad request")
	ErrNotFound           = errors.New("Resource not found")
	ErrInvalidQuantity    = errors.New("Quantity must be at least 1")
	ErrCatalogUnavailable = errors.New("Product catalog is unavailable")
)

var errorMap = map[error]int{
	ErrInternalServer:     ErrStatusInternalServer,
	ErrClient:             ErrStatusClient,
	ErrNotFound:           ErrStatusNotFound,
	ErrInvalidQuantity:    ErrStatusClient,
	ErrCatalogUnavailable: ErrBadGateway,
}

// GetErrorStatusCode maps err (or any sentinel it wraps) to an HTTP status.
func GetErrorStatusCode(err error) int {
	for sentinel, statusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return statusCode
		}
	}
	return errorMap[ErrInternalServer]
}

// Public returns the sentinel exposed to clients for err. Wrapped details stay in the logs.
func Public(err error) error {
	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return ErrInternalServer
}
