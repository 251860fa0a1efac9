package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// ErrConflict indicates a concurrent modification was detected; the caller
// should re-fetch and retry.
var ErrConflict = errors.New("resource was modified concurrently")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrIllegalTransition indicates the requested pipeline event is not legal
// from the application's current status/stage pair.
var ErrIllegalTransition = errors.New("illegal pipeline transition")

// ErrDuplicateSlot indicates an availability slot with the same owner,
// application, date and time window already exists.
var ErrDuplicateSlot = errors.New("availability slot already exists")

// ErrStaleState indicates a slot edit arrived after the application advanced
// past the stage the slot was submitted in.
var ErrStaleState = errors.New("application has advanced past this slot's stage")

// ErrRoundAlreadyOpen indicates a non-cancelled interview round is still open
// for the application.
var ErrRoundAlreadyOpen = errors.New("an interview round is already open")

// ErrRoundImmutable indicates an attempt to modify a completed round.
var ErrRoundImmutable = errors.New("completed interview rounds are immutable")

// ErrSlotTaken indicates another caller already booked an interview for the
// same application and instant. Recoverable: re-fetch suggestions and retry.
var ErrSlotTaken = errors.New("another interviewer already booked this slot")

// ErrMissingLocation indicates an interview invitation without a location.
var ErrMissingLocation = errors.New("interview location is required")

// ErrInvalidRating indicates a rating outside the 1..5 range.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ErrNotInOfferStage indicates an offer operation on an application that has
// not reached the offer stage.
var ErrNotInOfferStage = errors.New("application is not in offer stage")

// AppError carries an HTTP-ish status code alongside a message and wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches errors.Is(err, ErrNotFound).
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}
