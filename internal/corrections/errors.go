package corrections

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("incorrect identification not found")
	ErrSubmissionNotFound = errors.New("identification submission not found")
	ErrSpeciesNotFound    = errors.New("plant species not found")
	ErrOptionNotFound     = errors.New("incorrect species is not an option of this submission")
	ErrDuplicate          = errors.New("incorrect identification already recorded for this submission")
	ErrSameSpecies        = errors.New("correct and incorrect species ids must differ")
	ErrMissingImage       = errors.New("correct species has no image on record")
	ErrInvalidRequest     = errors.New("invalid request body")
)

func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, ErrSubmissionNotFound),
		errors.Is(err, ErrSpeciesNotFound),
		errors.Is(err, ErrOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrSameSpecies),
		errors.Is(err, ErrMissingImage),
		errors.Is(err, ErrInvalidRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
