package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cedarkey/leasing-service/utils"
)

// pathUUID extracts and parses a UUID path variable.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)[name])
}

// respondServiceError maps domain sentinel errors onto HTTP responses.
// Validation failures are 400, business-rule conflicts 409, missing
// entities 404; anything unrecognized is a 500.
func respondServiceError(w http.ResponseWriter, err error, publicMessage string) {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, publicMessage, nil, err)
	case errors.Is(err, utils.ErrInvalidDateRange),
		errors.Is(err, utils.ErrInvalidFrequency),
		errors.Is(err, utils.ErrInvalidStatus):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, err.Error(), nil, err)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, publicMessage, nil, err)
	case errors.Is(err, utils.ErrUnitNotAvailable),
		errors.Is(err, utils.ErrOverlappingReservation),
		errors.Is(err, utils.ErrInvalidTransition),
		errors.Is(err, utils.ErrTicketTerminal),
		errors.Is(err, utils.ErrDepositNotIncluded),
		errors.Is(err, utils.ErrReservationNotActive),
		errors.Is(err, utils.ErrActiveReservationExists),
		errors.Is(err, utils.ErrExpenseAlreadyCreated):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, err.Error(), nil, err)
	default:
		utils.Logger.WithError(err).Error(publicMessage)
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, publicMessage, nil, err)
	}
}
