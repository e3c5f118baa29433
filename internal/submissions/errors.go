package submissions

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("identification submission not found")
	ErrInvalidRequest = errors.New("invalid request")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
