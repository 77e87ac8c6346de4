package v1

import (
	"errors"
	"net/http"

	"github.com/hauskasse/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errUserParameter = errors.New("the user parameter must be set")
)

// Transaction errors
var (
	errTransactionTypeInvalid = errors.New("the specified transaction type is invalid")
)
