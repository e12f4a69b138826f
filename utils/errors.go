package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide fine-grained
// failure reasons. Controllers match with errors.Is and map to HTTP codes.
var (
	// Validation failures: malformed input, never retried.
	ErrInvalidDateRange = errors.New("invalid_date_range")
	ErrInvalidFrequency = errors.New("invalid_frequency")
	ErrInvalidStatus    = errors.New("invalid_status")

	// Business-rule conflicts: surfaced as 4xx, not retried automatically.
	ErrUnitNotAvailable        = errors.New("unit_not_available")
	ErrOverlappingReservation  = errors.New("overlapping_reservation")
	ErrInvalidTransition       = errors.New("invalid_transition")
	ErrTicketTerminal          = errors.New("ticket_terminal")
	ErrDepositNotIncluded      = errors.New("deposit_not_included")
	ErrReservationNotActive    = errors.New("reservation_not_active")
	ErrActiveReservationExists = errors.New("active_reservation_exists")
	ErrExpenseAlreadyCreated   = errors.New("expense_already_created")

	// Missing entities.
	ErrNotFound = errors.New("not_found")

	// Concurrency conflicts.
	ErrRowVersionConflict = errors.New("row_version_conflict")
	ErrNoRowsUpdated      = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
