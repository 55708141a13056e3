package apierr

import (
	"errors"
	"net/http"

	"lootcase_backend/internal/model"
)

// Status подбирает HTTP-статус под доменную ошибку
func Status(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidInput),
		errors.Is(err, model.ErrRtuUnreachable):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrCaseUnavailable),
		errors.Is(err, model.ErrItemUnavailable),
		errors.Is(err, model.ErrLedgerUnavailable):
		return http.StatusNotFound
	case errors.Is(err, model.ErrNotEnoughBalance):
		return http.StatusPaymentRequired
	case errors.Is(err, model.ErrSolverInconsistency):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
