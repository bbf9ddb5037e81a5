package errs

import (
	"errors"
	"fmt"
)

// Machine-readable codes attached to validation failures so clients can
// branch without matching message text.
const (
	CodeEmptyOrder             = "empty_order"
	CodeDishUnavailable        = "dish_unavailable"
	CodeInvalidDeliveryType    = "invalid_delivery_type"
	CodeMissingDeliveryDetails = "missing_delivery_details"
	CodeMissingPaymentRef      = "missing_payment_reference"
	CodeInvalidStatus          = "invalid_status"
	CodeInvalidTransition      = "invalid_transition"
	CodeCannotCancelAtStage    = "cannot_cancel_at_stage"
	CodeInvalidMinutes         = "invalid_minutes"
	CodeBadRequest             = "bad_request"
)

// ValidationError marks malformed or inadmissible input. Maps to 400.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(code, format string, args ...interface{}) error {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError marks a missing referenced resource. Maps to 404.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error { return &NotFoundError{Resource: resource} }

// ForbiddenError marks an actor acting outside its authorization. Maps to 403.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func Forbidden(format string, args ...interface{}) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a lost concurrent-update race. Maps to 409.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

func IsForbidden(err error) bool {
	var f *ForbiddenError
	return errors.As(err, &f)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// ValidationCode returns the code of a validation error, or "".
func ValidationCode(err error) string {
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Code
	}
	return ""
}
