package species

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("plant species not found")
	ErrDuplicate      = errors.New("plant species already exists")
	ErrBlankName      = errors.New("scientific name must be provided")
	ErrInvalidPort    = errors.New("port must be an integer between 1 and 65535")
	ErrInvalidRequest = errors.New("invalid request body")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrBlankName),
		errors.Is(err, ErrInvalidPort),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
